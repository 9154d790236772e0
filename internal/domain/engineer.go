package domain

// Engineer represents a field technician
// Бронирования ссылаются на инженера только по нормализованному телефону
type Engineer struct {
	Phone       string // нормализованный, 10 цифр
	Name        string
	Location    string
	ServiceType string // ac | electrician | both
	Notes       string
	Active      bool
	CreatedAt   int64
	UpdatedAt   int64
}

// ResolveActive сводит исторические флаги is_active и enabled к одному значению
// Приоритет у is_active; если не задан ни один флаг, инженер считается активным
func ResolveActive(isActive, enabled *bool) bool {
	if isActive != nil {
		return *isActive
	}
	if enabled != nil {
		return *enabled
	}
	return true
}
