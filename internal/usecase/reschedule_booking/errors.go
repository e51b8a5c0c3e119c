package reschedule_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrPermissionDenied возвращается при попытке перенести чужое бронирование
	ErrPermissionDenied = errors.New("reschedule_booking: permission denied")

	// ErrCannotReschedule возвращается для отмененных и завершенных бронирований
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrInvalidDate возвращается при новой дате в прошлом
	ErrInvalidDate = errors.New("reschedule_booking: invalid booking date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
