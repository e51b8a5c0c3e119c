package scheduling

import (
	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/types"
)

// SlotTimes перечисляет времена начала слотов для окна работы: решетка
// open + k*step, в которую услуга длительностью durationMin еще помещается
// целиком (конец слота может совпадать с закрытием). Чистая функция без
// обращений к хранилищу.
//
// Для nil-окна (закрытый день) и неположительных аргументов возвращает
// пустой срез.
func SlotTimes(window *domain.DayWindow, durationMin, stepMin int) []types.TimeString {
	if window == nil || durationMin <= 0 {
		return nil
	}
	if stepMin <= 0 {
		stepMin = domain.DefaultSlotStepMinutes
	}

	open, err := window.Open.Minutes()
	if err != nil {
		return nil
	}
	closeMin, err := window.Close.Minutes()
	if err != nil {
		return nil
	}

	var slots []types.TimeString
	for t := open; t+durationMin <= closeMin; t += stepMin {
		st, err := types.FromMinutes(t)
		if err != nil {
			// недостижимо для t внутри валидного окна
			return slots
		}
		slots = append(slots, st)
	}
	return slots
}
