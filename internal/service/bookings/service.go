package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/AiroFix-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/AiroFix-BookingService/internal/service/bookings/models"
	"github.com/m04kA/AiroFix-BookingService/pkg/phone"
)

// Config ограничения сервиса бронирований
type Config struct {
	DefaultListLimit int
	MaxListLimit     int
	CancelWindow     time.Duration
}

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	idGenerator  IDGenerator
	cfg          Config
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	timeProvider TimeProvider,
	idGenerator IDGenerator,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.CancelWindow <= 0 {
		cfg.CancelWindow = domain.DefaultCancelWindow
	}
	if cfg.DefaultListLimit <= 0 {
		cfg.DefaultListLimit = 50
	}
	if cfg.MaxListLimit < cfg.DefaultListLimit {
		cfg.MaxListLimit = cfg.DefaultListLimit
	}

	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		idGenerator:  idGenerator,
		cfg:          cfg,
		logger:       logger,
	}
}

// Create создает бронирование в статусе pending и возвращает его id
func (s *Service) Create(ctx context.Context, req *models.CreateBookingRequest) (string, error) {
	s.logger.Info("Create: creating booking for customer=%q, service=%q/%q/%q",
		req.CustomerName, req.ServiceType, req.CategoryName, req.ItemName)

	booking, err := req.ToDomainBooking()
	if err != nil {
		s.logger.Warn("Create: invalid request: %v", err)
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.logger.Error("Create: failed to generate booking id: %v", err)
		return "", fmt.Errorf("%w: Create - id generation: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now().UnixMilli()
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		s.logger.Error("Create: repository error for booking id=%s: %v", id, err)
		return "", fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created booking id=%s", id)
	return id, nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	booking, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// ListRecent возвращает последние бронирования, новые первыми
// limit <= 0 заменяется значением по умолчанию, слишком большой limit ограничивается
func (s *Service) ListRecent(ctx context.Context, limit int) (*models.BookingListResponse, error) {
	switch {
	case limit <= 0:
		limit = s.cfg.DefaultListLimit
	case limit > s.cfg.MaxListLimit:
		limit = s.cfg.MaxListLimit
	}

	s.logger.Info("ListRecent: fetching bookings, limit=%d", limit)

	bookings, err := s.bookingRepo.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("ListRecent: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRecent - repository error: %v", ErrInternal, err)
	}

	return &models.BookingListResponse{Bookings: models.FromDomainBookingList(bookings)}, nil
}

// ListByPhone ищет бронирования клиента по телефону
// Сначала по нормализованному полю, затем по старому полю phone; при совпадении id побеждает первый
func (s *Service) ListByPhone(ctx context.Context, rawPhone string) (*models.PhoneBookingsResponse, error) {
	normalized := phone.Normalize(rawPhone)
	if len(normalized) < phone.Length {
		s.logger.Warn("ListByPhone: phone %q has less than %d digits", rawPhone, phone.Length)
		return nil, fmt.Errorf("%w: phone must contain at least %d digits", ErrInvalidInput, phone.Length)
	}

	s.logger.Info("ListByPhone: fetching bookings for phone=%s", normalized)

	current, err := s.bookingRepo.ListByUserPhone(ctx, normalized)
	if err != nil {
		s.logger.Error("ListByPhone: repository error on user_phone=%s: %v", normalized, err)
		return nil, fmt.Errorf("%w: ListByPhone - repository error: %v", ErrInternal, err)
	}

	legacy, err := s.bookingRepo.ListByLegacyPhone(ctx, normalized)
	if err != nil {
		s.logger.Error("ListByPhone: repository error on phone=%s: %v", normalized, err)
		return nil, fmt.Errorf("%w: ListByPhone - repository error: %v", ErrInternal, err)
	}

	merged := mergeByID(current, legacy)

	s.logger.Info("ListByPhone: found %d bookings for phone=%s (%d current, %d legacy)",
		len(merged), normalized, len(current), len(legacy))

	return &models.PhoneBookingsResponse{
		Phone:    normalized,
		Bookings: models.FromDomainBookingList(merged),
	}, nil
}

// UpdateSingle применяет частичное обновление и возвращает актуальное бронирование
// Смена статуса у завершенного или отмененного бронирования запрещена
func (s *Service) UpdateSingle(ctx context.Context, id string, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateSingle: updating booking id=%s", id)

	patch, err := req.ToDomainPatch()
	if err != nil {
		s.logger.Warn("UpdateSingle: invalid patch for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if patch.IsEmpty() {
		s.logger.Warn("UpdateSingle: no fields to update for booking id=%s", id)
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	booking, err := s.load(ctx, "UpdateSingle", id)
	if err != nil {
		return nil, err
	}

	if status, ok := patch.Status.Get(); ok && booking.Status.IsTerminal() && !status.Equal(booking.Status) {
		s.logger.Warn("UpdateSingle: booking id=%s is %s, status change to %s rejected", id, booking.Status, status)
		return nil, fmt.Errorf("%w: booking is %s", ErrInvalidTransition, booking.Status)
	}

	if err := s.bookingRepo.Update(ctx, id, patch, s.timeProvider.Now().UnixMilli()); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateSingle: booking id=%s disappeared during update", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateSingle: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateSingle - repository error: %v", ErrInternal, err)
	}

	updated, err := s.load(ctx, "UpdateSingle", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateSingle: successfully updated booking id=%s", id)
	return models.FromDomainBooking(updated), nil
}

// UpdateBulkStatus выставляет статус набору бронирований одним запросом
// Несуществующие id пропускаются без ошибки
func (s *Service) UpdateBulkStatus(ctx context.Context, ids []string, status string) (*models.BulkUpdateResponse, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		s.logger.Warn("UpdateBulkStatus: empty status")
		return nil, fmt.Errorf("%w: status is required", ErrInvalidInput)
	}

	unique := uniqueIDs(ids)
	if len(unique) == 0 {
		s.logger.Warn("UpdateBulkStatus: no booking ids")
		return nil, fmt.Errorf("%w: ids must not be empty", ErrInvalidInput)
	}

	s.logger.Info("UpdateBulkStatus: setting status=%s for %d bookings", status, len(unique))

	updated, err := s.bookingRepo.UpdateStatusBulk(ctx, unique, domain.BookingStatus(status), s.timeProvider.Now().UnixMilli())
	if err != nil {
		s.logger.Error("UpdateBulkStatus: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateBulkStatus - repository error: %v", ErrInternal, err)
	}

	if updated < int64(len(unique)) {
		s.logger.Warn("UpdateBulkStatus: %d of %d bookings not found", int64(len(unique))-updated, len(unique))
	}

	return &models.BulkUpdateResponse{Requested: len(unique), Updated: updated}, nil
}

// Cancel отменяет бронирование по запросу клиента
// Отмена возможна не позднее чем за окно отмены до начала слота; ровно на границе разрешена
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s", id)

	reason, err := normalizeReason(req.Reason)
	if err != nil {
		s.logger.Warn("Cancel: invalid reason for booking id=%s: %v", id, err)
		return nil, err
	}

	booking, err := s.load(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s is already %s", id, booking.Status)
		return nil, fmt.Errorf("%w: booking is %s", ErrInvalidTransition, booking.Status)
	}

	now := s.timeProvider.Now().UnixMilli()

	if start, ok := booking.SlotStart(); ok && start-now < s.cfg.CancelWindow.Milliseconds() {
		s.logger.Warn("Cancel: booking id=%s starts at %d, now %d, inside %s window",
			id, start, now, s.cfg.CancelWindow)
		return nil, &TooCloseToSlotError{SlotStart: start, Now: now, Window: s.cfg.CancelWindow}
	}

	cancellation := domain.Cancellation{
		Status:      domain.StatusCancelledByCustomer,
		CancelledAt: now,
		CancelledBy: domain.CancelledByCustomer,
		Reason:      reason,
	}

	if err := s.bookingRepo.MarkCancelled(ctx, id, cancellation); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// статус сменился между чтением и записью
			s.logger.Warn("Cancel: booking id=%s changed status concurrently", id)
			return nil, fmt.Errorf("%w: booking status changed", ErrInvalidTransition)
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", id)
	return &models.CancelBookingResponse{
		BookingID: id,
		NewStatus: string(domain.StatusCancelledByCustomer),
	}, nil
}

func (s *Service) load(ctx context.Context, op, id string) (*domain.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		s.logger.Warn("%s: empty booking id", op)
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return booking, nil
}

func normalizeReason(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	reason := strings.TrimSpace(*raw)
	if reason == "" {
		return nil, nil
	}
	if len([]rune(reason)) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason longer than %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return &reason, nil
}

// mergeByID объединяет выборки, сохраняя первое вхождение каждого id, и сортирует по createdAt
func mergeByID(lists ...[]*domain.Booking) []*domain.Booking {
	seen := make(map[string]struct{})
	merged := make([]*domain.Booking, 0)

	for _, list := range lists {
		for _, b := range list {
			if _, ok := seen[b.ID]; ok {
				continue
			}
			seen[b.ID] = struct{}{}
			merged = append(merged, b)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt > merged[j].CreatedAt
	})

	return merged
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
