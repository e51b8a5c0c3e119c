package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrStaffNotFound возвращается, когда запрошенный мастер не найден
	ErrStaffNotFound = errors.New("get_available_slots: staff not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
