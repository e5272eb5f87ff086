package get_available_slots

import (
	"time"

	"github.com/lex4u/BSM-SchedulingService/internal/scheduling"
)

// Request модель запроса на получение сетки слотов
type Request struct {
	StaffID   int64     // ID мастера
	ServiceID int64     // ID услуги (определяет длительность слота)
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа с сеткой слотов на день.
// Недоступные слоты не выбрасываются, а помечаются Available=false.
type Response struct {
	Date      time.Time         // Дата, на которую запрашивались слоты
	StaffID   int64             // ID мастера
	ServiceID int64             // ID услуги
	Slots     []scheduling.Slot // Сетка слотов с тегами доступности
}
