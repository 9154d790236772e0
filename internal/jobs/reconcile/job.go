package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
	"github.com/m04kA/AiroFix-BookingService/internal/usecase/verify_payment"
)

// ErrInvalidSchedule возвращается при некорректном cron-выражении
var ErrInvalidSchedule = errors.New("reconcile: invalid schedule")

// Config параметры фоновой сверки оплат
type Config struct {
	Schedule   string        // cron-выражение, 5 полей
	Lookback   time.Duration // сверяются брони, созданные не раньше now-Lookback
	BatchSize  int
	RunTimeout time.Duration // ограничение на один проход
}

// Result итог одного прохода
type Result struct {
	Checked int
	Changed int
	Failed  int
}

// Job периодически перепроверяет брони с неоплаченной ссылкой Cashfree
// Клиент может закрыть вкладку до возврата на сайт, и тогда статус обновит только эта задача
type Job struct {
	cron         *cron.Cron
	bookingRepo  BookingRepository
	verifier     PaymentVerifier
	timeProvider TimeProvider
	cfg          Config
	logger       Logger
}

// NewJob создает задачу сверки; запуск по расписанию через Start
func NewJob(bookingRepo BookingRepository, verifier PaymentVerifier, cfg Config, logger Logger) *Job {
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 5 * time.Minute
	}

	cronLog := &cronLogger{logger: logger}

	return &Job{
		cron: cron.New(
			cron.WithLogger(cronLog),
			// следующий проход пропускается, пока не закончился предыдущий
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		bookingRepo:  bookingRepo,
		verifier:     verifier,
		timeProvider: &RealTimeProvider{},
		cfg:          cfg,
		logger:       logger,
	}
}

// Start регистрирует задачу и запускает планировщик
func (j *Job) Start() error {
	if _, err := j.cron.AddFunc(j.cfg.Schedule, j.run); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, j.cfg.Schedule, err)
	}

	j.cron.Start()
	j.logger.Info("Reconcile: scheduled with %q, lookback=%s, batch=%d", j.cfg.Schedule, j.cfg.Lookback, j.cfg.BatchSize)
	return nil
}

// Stop останавливает планировщик и ждет завершения текущего прохода
func (j *Job) Stop(ctx context.Context) error {
	stopped := j.cron.Stop()

	select {
	case <-stopped.Done():
		j.logger.Info("Reconcile: stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *Job) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.cfg.RunTimeout)
	defer cancel()

	if _, err := j.RunOnce(ctx); err != nil {
		j.logger.Error("Reconcile: run failed: %v", err)
	}
}

// RunOnce выполняет один проход сверки
// Ошибка сверки отдельной брони не прерывает проход
func (j *Job) RunOnce(ctx context.Context) (Result, error) {
	start := j.timeProvider.Now()

	filter := domain.PendingPaymentsFilter{
		CreatedAfter: start.Add(-j.cfg.Lookback).UnixMilli(),
		Limit:        j.cfg.BatchSize,
	}

	bookings, err := j.bookingRepo.ListPendingPayments(ctx, filter)
	if err != nil {
		return Result{}, fmt.Errorf("list pending payments: %w", err)
	}

	var result Result
	for _, b := range bookings {
		if ctx.Err() != nil {
			j.logger.Warn("Reconcile: interrupted after %d of %d bookings: %v", result.Checked+result.Failed, len(bookings), ctx.Err())
			break
		}

		resp, err := j.verifier.Execute(ctx, &verify_payment.Request{BookingID: b.ID})
		if err != nil {
			result.Failed++
			j.logger.Warn("Reconcile: booking id=%s: %v", b.ID, err)
			continue
		}

		result.Checked++
		if resp.Changed {
			result.Changed++
		}
	}

	j.logger.Info("Reconcile: checked=%d changed=%d failed=%d in %s",
		result.Checked, result.Changed, result.Failed, j.timeProvider.Now().Sub(start))

	return result, nil
}

// cronLogger адаптер логгера сервиса к cron.Logger
type cronLogger struct {
	logger Logger
}

// Info служебные сообщения планировщика на каждый тик не пишем
func (l *cronLogger) Info(string, ...interface{}) {}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("Reconcile: cron %s: %v%s", msg, err, formatKeys(keysAndValues))
}

func formatKeys(keysAndValues []interface{}) string {
	if len(keysAndValues) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return b.String()
}
