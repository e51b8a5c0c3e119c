package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrTooLateToBook возвращается при попытке забронировать уже прошедшее сегодня время
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
