package scheduling

import "errors"

var (
	// ErrInternal внутренняя ошибка (база данных, построение запроса)
	ErrInternal = errors.New("scheduling: internal error")

	// ErrInvalidInterval запрошенный интервал некорректен (start >= end)
	ErrInvalidInterval = errors.New("scheduling: invalid time interval")
)
