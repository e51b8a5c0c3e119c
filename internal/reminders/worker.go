package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	runTimeout = time.Minute

	// Дедуп-ключ живет дольше суток: повторный прогон того же дня
	// (рестарт, вторая реплика) не продублирует напоминание
	dedupTTL = 48 * time.Hour
)

// Worker ежедневно рассылает напоминания о завтрашних визитах.
// Расписание задается cron-выражением из конфигурации
type Worker struct {
	cron        *cron.Cron
	bookingRepo BookingRepository
	notifier    Notifier
	dedup       Deduplicator
	logger      Logger
	schedule    string
}

// NewWorker создает новый воркер напоминаний
func NewWorker(
	bookingRepo BookingRepository,
	notifier Notifier,
	dedup Deduplicator,
	schedule string,
	logger Logger,
) *Worker {
	return &Worker{
		cron:        cron.New(),
		bookingRepo: bookingRepo,
		notifier:    notifier,
		dedup:       dedup,
		logger:      logger,
		schedule:    schedule,
	}
}

// Start регистрирует задание и запускает планировщик
func (w *Worker) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.run); err != nil {
		return fmt.Errorf("reminders: invalid cron schedule %q: %w", w.schedule, err)
	}
	w.cron.Start()
	w.logger.Info("reminders: worker started, schedule=%q", w.schedule)
	return nil
}

// Stop останавливает планировщик и дожидается текущего прогона
func (w *Worker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.logger.Info("reminders: worker stopped")
}

func (w *Worker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	tomorrow := time.Now().AddDate(0, 0, 1)

	bookings, err := w.bookingRepo.GetConfirmedByDate(ctx, tomorrow)
	if err != nil {
		w.logger.Error("reminders: failed to load bookings for %s: %v",
			tomorrow.Format("2006-01-02"), err)
		return
	}

	w.logger.Info("reminders: %d confirmed bookings for %s",
		len(bookings), tomorrow.Format("2006-01-02"))

	for _, booking := range bookings {
		key := fmt.Sprintf("reminder:%d:%s", booking.ID, booking.BookingDate.Format("2006-01-02"))

		fresh, err := w.dedup.MarkOnce(ctx, key, dedupTTL)
		if err != nil {
			w.logger.Error("reminders: dedup check failed for booking=%d: %v", booking.ID, err)
			continue
		}
		if !fresh {
			continue
		}

		w.notifier.SendReminder(ctx, booking)
	}
}
