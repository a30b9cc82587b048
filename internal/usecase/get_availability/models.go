package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

// Request окно запроса занятости: дата начала и количество дней
type Request struct {
	Start time.Time
	Days  int
}

// Response занятое время в окне [Range.Start, Range.End)
type Response struct {
	Range     domain.Interval
	Blackouts []*domain.BlackoutPeriod
	Confirmed []*domain.BookingRequest
}
