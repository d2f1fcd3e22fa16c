package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	Date        string // Дата в формате YYYY-MM-DD
	EventTypeID int64  // ID типа события
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date            time.Time          // Дата, на которую запрашивались слоты
	EventTypeID     int64              // ID типа события
	DayOfWeek       domain.DayOfWeek   // День недели даты
	DurationMinutes int                // Длительность встречи
	Slots           []types.TimeString // Время начала свободных слотов по возрастанию
}
