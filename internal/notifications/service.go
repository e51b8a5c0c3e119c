package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/barberbook/booking-service/internal/domain"
)

// Service рассылает уведомления клиентам по доступным каналам (LINE, email).
// Все отправки best-effort: сбой канала логируется и не возвращается
// наверх - судьба бронирования не зависит от доставки уведомления.
type Service struct {
	line    LineClient
	email   EmailSender
	metrics Metrics
	logger  Logger
}

// NewService создает новый сервис уведомлений.
// line и email могут быть nil - канал просто выключен.
func NewService(line LineClient, email EmailSender, metrics Metrics, logger Logger) *Service {
	return &Service{
		line:    line,
		email:   email,
		metrics: metrics,
		logger:  logger,
	}
}

// BookingCreated уведомляет клиента о созданном бронировании
func (s *Service) BookingCreated(ctx context.Context, booking *domain.Booking) {
	text := fmt.Sprintf("Your booking is confirmed: %s with %s on %s at %s.",
		booking.ServiceName, booking.StaffName,
		booking.BookingDate.Format(domain.DateFormat), booking.StartTime)

	s.fanOut(ctx, booking, "Booking confirmed", text)
}

// BookingRescheduled уведомляет клиента о переносе бронирования
func (s *Service) BookingRescheduled(ctx context.Context, booking *domain.Booking) {
	text := fmt.Sprintf("Your booking was moved: %s with %s, now on %s at %s.",
		booking.ServiceName, booking.StaffName,
		booking.BookingDate.Format(domain.DateFormat), booking.StartTime)

	s.fanOut(ctx, booking, "Booking rescheduled", text)
}

// BookingCancelled уведомляет клиента об отмене бронирования
func (s *Service) BookingCancelled(ctx context.Context, booking *domain.Booking, reason string) {
	text := fmt.Sprintf("Your booking on %s at %s was cancelled.",
		booking.BookingDate.Format(domain.DateFormat), booking.StartTime)
	if reason != "" {
		text += " Reason: " + reason
	}

	s.fanOut(ctx, booking, "Booking cancelled", text)
}

// SendReminder отправляет напоминание о завтрашнем визите.
// В отличие от событийных уведомлений пишет метрики по каналам:
// доставляемость напоминаний - отдельный SLO.
func (s *Service) SendReminder(ctx context.Context, booking *domain.Booking) {
	text := fmt.Sprintf("Reminder: %s with %s tomorrow, %s at %s.",
		booking.ServiceName, booking.StaffName,
		booking.BookingDate.Format(domain.DateFormat), booking.StartTime)

	eventID := uuid.NewString()

	if s.line != nil && booking.CustomerLineID != nil {
		if err := s.line.PushTextWithGracefulDegradation(ctx, *booking.CustomerLineID, text); err != nil {
			s.logger.Warn("notifications: reminder line push failed: event=%s booking=%d: %v", eventID, booking.ID, err)
			s.metrics.IncReminderSent("line", "failed")
		} else {
			s.metrics.IncReminderSent("line", "sent")
		}
	}

	if s.email != nil && booking.CustomerEmail != nil {
		if err := s.email.Send(*booking.CustomerEmail, "Booking reminder", text); err != nil {
			s.logger.Warn("notifications: reminder email failed: event=%s booking=%d: %v", eventID, booking.ID, err)
			s.metrics.IncReminderSent("email", "failed")
		} else {
			s.metrics.IncReminderSent("email", "sent")
		}
	}
}

// fanOut рассылает событие по всем каналам, на которые подписан клиент
func (s *Service) fanOut(ctx context.Context, booking *domain.Booking, subject, text string) {
	eventID := uuid.NewString()
	s.logger.Info("notifications: event=%s booking=%d subject=%q", eventID, booking.ID, subject)

	if s.line != nil && booking.CustomerLineID != nil {
		if err := s.line.PushTextWithGracefulDegradation(ctx, *booking.CustomerLineID, text); err != nil {
			s.logger.Warn("notifications: line push failed: event=%s booking=%d: %v", eventID, booking.ID, err)
		}
	}

	if s.email != nil && booking.CustomerEmail != nil {
		if err := s.email.Send(*booking.CustomerEmail, subject, text); err != nil {
			s.logger.Warn("notifications: email failed: event=%s booking=%d: %v", eventID, booking.ID, err)
		}
	}
}
