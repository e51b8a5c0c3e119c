package scheduling

// Engine отвечает на вопросы доступности: когда магазин открыт, свободен ли
// мастер, кого назначить и что предложить взамен занятого интервала.
// Engine только читает; запись бронирований остается за usecase-слоем,
// который оборачивает проверку и вставку в одну транзакцию.
type Engine struct {
	hoursRepo   HoursRepository
	staffRepo   StaffRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewEngine создает новый Engine
func NewEngine(
	hoursRepo HoursRepository,
	staffRepo StaffRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Engine {
	return &Engine{
		hoursRepo:   hoursRepo,
		staffRepo:   staffRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}
