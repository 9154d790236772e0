package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
	"github.com/m04kA/AiroFix-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/AiroFix-BookingService/pkg/types"
)

const tableBookings = "bookings"

// bookingColumns порядок колонок должен совпадать с scanBooking
var bookingColumns = []string{
	"id",
	"customer_name",
	"phone",
	"user_phone",
	"email",
	"service_type",
	"category_name",
	"item_name",
	"approx_price",
	"booking_date",
	"slot",
	"start_ts",
	"scheduled_at",
	"address_line1",
	"address_line2",
	"city",
	"pincode",
	"notes",
	"source",
	"status",
	"assigned_engineer",
	"payment_gateway",
	"payment_order_id",
	"payment_link",
	"payment_status",
	"payment_preference",
	"payment_last_status",
	"payment_last_order_id",
	"payment_checked_at",
	"created_at",
	"updated_at",
	"cancelled_at",
	"cancelled_by",
	"cancellation_reason",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование
// Телефон пишется в обе колонки: phone как ввел клиент, user_phone в нормализованном виде
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"customer_name",
			"phone",
			"user_phone",
			"email",
			"service_type",
			"category_name",
			"item_name",
			"approx_price",
			"booking_date",
			"slot",
			"start_ts",
			"scheduled_at",
			"address_line1",
			"address_line2",
			"city",
			"pincode",
			"notes",
			"source",
			"status",
			"assigned_engineer",
			"payment_status",
			"payment_preference",
			"created_at",
			"updated_at",
		).
		Values(
			booking.ID,
			booking.CustomerName,
			booking.Phone,
			booking.NormalizedPhone(),
			booking.Email,
			booking.ServiceType,
			booking.CategoryName,
			booking.ItemName,
			booking.ApproxPrice,
			booking.Date,
			booking.Slot,
			booking.StartTs,
			booking.ScheduledAt,
			booking.AddressLine1,
			booking.AddressLine2,
			booking.City,
			booking.Pincode,
			booking.Notes,
			booking.Source,
			booking.Status,
			booking.AssignedEngineer,
			booking.PaymentStatus,
			booking.PaymentPreference,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListRecent возвращает последние limit бронирований, новые первыми
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRecent - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListRecent", query, args)
}

// ListByUserPhone ищет бронирования по нормализованному телефону (колонка user_phone)
func (r *Repository) ListByUserPhone(ctx context.Context, normalizedPhone string) ([]*domain.Booking, error) {
	return r.listByPhoneColumn(ctx, "ListByUserPhone", "user_phone", normalizedPhone)
}

// ListByLegacyPhone ищет бронирования по историческому полю phone
// Старые записи хранили здесь уже нормализованный номер, поэтому сравнение точное
func (r *Repository) ListByLegacyPhone(ctx context.Context, normalizedPhone string) ([]*domain.Booking, error) {
	return r.listByPhoneColumn(ctx, "ListByLegacyPhone", "phone", normalizedPhone)
}

func (r *Repository) listByPhoneColumn(ctx context.Context, op, column, value string) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{column: value}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	return r.query(ctx, op, query, args)
}

// ListPendingPayments бронирования с открытой ссылкой Cashfree, ожидающие оплаты
func (r *Repository) ListPendingPayments(ctx context.Context, filter domain.PendingPaymentsFilter) ([]*domain.Booking, error) {
	builder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"payment_gateway": domain.PaymentGatewayCashfree}).
		Where(squirrel.Eq{"payment_status": domain.PaymentStatusPending}).
		Where(squirrel.NotEq{"payment_order_id": nil}).
		Where(squirrel.GtOrEq{"created_at": filter.CreatedAfter}).
		OrderBy("created_at DESC")

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingPayments - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListPendingPayments", query, args)
}

// Update применяет частичное обновление
// Изменяются только заданные поля патча и updated_at
func (r *Repository) Update(ctx context.Context, id string, patch domain.BookingPatch, updatedAt int64) error {
	builder := psqlbuilder.Update(tableBookings)

	builder = setIf(builder, "status", patch.Status)
	builder = setIf(builder, "assigned_engineer", patch.AssignedEngineer)
	builder = setIf(builder, "payment_preference", patch.PaymentPreference)
	builder = setIf(builder, "payment_status", patch.PaymentStatus)
	builder = setIf(builder, "customer_name", patch.CustomerName)
	builder = setIf(builder, "email", patch.Email)
	builder = setIf(builder, "service_type", patch.ServiceType)
	builder = setIf(builder, "category_name", patch.CategoryName)
	builder = setIf(builder, "item_name", patch.ItemName)
	builder = setIf(builder, "approx_price", patch.ApproxPrice)
	builder = setIf(builder, "booking_date", patch.Date)
	builder = setIf(builder, "slot", patch.Slot)
	builder = setIf(builder, "start_ts", patch.StartTs)
	builder = setIf(builder, "scheduled_at", patch.ScheduledAt)
	builder = setIf(builder, "address_line1", patch.AddressLine1)
	builder = setIf(builder, "address_line2", patch.AddressLine2)
	builder = setIf(builder, "city", patch.City)
	builder = setIf(builder, "pincode", patch.Pincode)
	builder = setIf(builder, "notes", patch.Notes)

	// Телефон хранится в двух колонках, обновляем обе
	if patch.Phone.Set {
		b := domain.Booking{Phone: patch.Phone.Value}
		builder = builder.
			Set("phone", b.Phone).
			Set("user_phone", b.NormalizedPhone())
	}

	query, args, err := builder.
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, "Update", query, args)
}

// UpdateStatusBulk выставляет статус всем бронированиям из списка одним запросом
// Отсутствующие id пропускаются без ошибки, возвращается число обновленных строк
func (r *Repository) UpdateStatusBulk(ctx context.Context, ids []string, status domain.BookingStatus, updatedAt int64) (int64, error) {
	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", status).
		Set("updated_at", updatedAt).
		Where("id = ANY(?)", pq.Array(ids)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: UpdateStatusBulk - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateStatusBulk - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateStatusBulk - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// MarkCancelled отменяет бронирование, если оно еще не завершено и не отменено
// Условие повторяет проверку сервиса, чтобы параллельное изменение статуса не было перезаписано
func (r *Repository) MarkCancelled(ctx context.Context, id string, c domain.Cancellation) error {
	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", c.Status).
		Set("cancelled_at", c.CancelledAt).
		Set("cancelled_by", c.CancelledBy).
		Set("cancellation_reason", c.Reason).
		Set("updated_at", c.CancelledAt).
		Where(squirrel.Eq{"id": id}).
		Where("NOT (lower(status) = ANY(?) OR lower(status) LIKE ?)",
			pq.Array([]string{string(domain.StatusCompleted), string(domain.StatusCancelled)}),
			`cancelled\_%`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkCancelled - build update query: %v", ErrBuildQuery, err)
	}

	err = r.execSingle(ctx, "MarkCancelled", query, args)
	if errors.Is(err, ErrBookingNotFound) {
		return ErrStatusConflict
	}
	return err
}

// SavePaymentLink сохраняет созданную платежную ссылку
func (r *Repository) SavePaymentLink(ctx context.Context, id string, link domain.PaymentLinkRecord, updatedAt int64) error {
	query, args, err := psqlbuilder.Update(tableBookings).
		Set("payment_gateway", link.Gateway).
		Set("payment_order_id", link.LinkID).
		Set("payment_link", link.LinkURL).
		Set("payment_status", link.Status).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SavePaymentLink - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, "SavePaymentLink", query, args)
}

// SavePaymentCheck сохраняет результат сверки оплаты со шлюзом
// updated_at не меняется: сверка не является изменением бронирования
func (r *Repository) SavePaymentCheck(ctx context.Context, id string, check domain.PaymentCheck) error {
	query, args, err := psqlbuilder.Update(tableBookings).
		Set("payment_status", check.Status).
		Set("payment_last_status", check.LastStatus).
		Set("payment_last_order_id", check.LastOrderID).
		Set("payment_checked_at", check.CheckedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SavePaymentCheck - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, "SavePaymentCheck", query, args)
}

// execSingle выполняет UPDATE одной записи и возвращает ErrBookingNotFound, если строка не изменена
func (r *Repository) execSingle(ctx context.Context, op, query string, args []interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в доменную модель
// Историческая колонка phone может быть пустой у записей, созданных после миграции схемы
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b         domain.Booking
		userPhone string
	)

	err := row.Scan(
		&b.ID,
		&b.CustomerName,
		&b.Phone,
		&userPhone,
		&b.Email,
		&b.ServiceType,
		&b.CategoryName,
		&b.ItemName,
		&b.ApproxPrice,
		&b.Date,
		&b.Slot,
		&b.StartTs,
		&b.ScheduledAt,
		&b.AddressLine1,
		&b.AddressLine2,
		&b.City,
		&b.Pincode,
		&b.Notes,
		&b.Source,
		&b.Status,
		&b.AssignedEngineer,
		&b.PaymentGateway,
		&b.PaymentOrderID,
		&b.PaymentLink,
		&b.PaymentStatus,
		&b.PaymentPreference,
		&b.PaymentLastStatus,
		&b.PaymentLastOrderID,
		&b.PaymentCheckedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.CancelledAt,
		&b.CancelledBy,
		&b.CancellationReason,
	)
	if err != nil {
		return nil, err
	}

	if b.Phone == "" {
		b.Phone = userPhone
	}

	return &b, nil
}

// setIf добавляет колонку в UPDATE, только если поле патча задано
func setIf[T any](b squirrel.UpdateBuilder, column string, v types.Optional[T]) squirrel.UpdateBuilder {
	if value, ok := v.Get(); ok {
		return b.Set(column, value)
	}
	return b
}
