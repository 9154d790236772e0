package models

import "github.com/m04kA/AiroFix-BookingService/internal/domain"

// EngineerResponse ответ с данными инженера
type EngineerResponse struct {
	Phone       string `json:"phone"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	ServiceType string `json:"serviceType"`
	Notes       string `json:"notes"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   int64  `json:"createdAt,omitempty"`
	UpdatedAt   int64  `json:"updatedAt,omitempty"`
}

// EngineerListResponse список инженеров
type EngineerListResponse struct {
	Engineers []EngineerResponse `json:"engineers"`
}

// FromDomainEngineer конвертирует domain.Engineer в EngineerResponse
func FromDomainEngineer(e *domain.Engineer) *EngineerResponse {
	return &EngineerResponse{
		Phone:       e.Phone,
		Name:        e.Name,
		Location:    e.Location,
		ServiceType: e.ServiceType,
		Notes:       e.Notes,
		IsActive:    e.Active,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// FromDomainEngineerList конвертирует список инженеров
func FromDomainEngineerList(engineers []*domain.Engineer) []EngineerResponse {
	result := make([]EngineerResponse, 0, len(engineers))
	for _, e := range engineers {
		result = append(result, *FromDomainEngineer(e))
	}
	return result
}
