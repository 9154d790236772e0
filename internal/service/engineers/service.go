package engineers

import (
	"context"
	"errors"
	"fmt"

	engineerRepo "github.com/m04kA/AiroFix-BookingService/internal/infra/storage/engineer"
	"github.com/m04kA/AiroFix-BookingService/internal/service/engineers/models"
	"github.com/m04kA/AiroFix-BookingService/pkg/phone"
)

// Service справочник инженеров для назначения на бронирования
type Service struct {
	engineerRepo EngineerRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса инженеров
func NewService(engineerRepo EngineerRepository, logger Logger) *Service {
	return &Service{
		engineerRepo: engineerRepo,
		logger:       logger,
	}
}

// List возвращает инженеров по имени; includeInactive добавляет отключенных
func (s *Service) List(ctx context.Context, includeInactive bool) (*models.EngineerListResponse, error) {
	s.logger.Info("List: fetching engineers, includeInactive=%t", includeInactive)

	engineers, err := s.engineerRepo.List(ctx, !includeInactive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return &models.EngineerListResponse{Engineers: models.FromDomainEngineerList(engineers)}, nil
}

// GetByPhone получает инженера по телефону в любом формате
func (s *Service) GetByPhone(ctx context.Context, rawPhone string) (*models.EngineerResponse, error) {
	if !phone.IsValid(rawPhone) {
		s.logger.Warn("GetByPhone: invalid phone %q", rawPhone)
		return nil, fmt.Errorf("%w: phone must contain at least %d digits", ErrInvalidInput, phone.Length)
	}
	normalized := phone.Normalize(rawPhone)

	engineer, err := s.engineerRepo.GetByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, engineerRepo.ErrEngineerNotFound) {
			s.logger.Warn("GetByPhone: engineer phone=%s not found", normalized)
			return nil, ErrEngineerNotFound
		}
		s.logger.Error("GetByPhone: repository error for phone=%s: %v", normalized, err)
		return nil, fmt.Errorf("%w: GetByPhone - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEngineer(engineer), nil
}
