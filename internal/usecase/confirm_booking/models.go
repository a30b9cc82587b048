package confirm_booking

import "github.com/m04kA/SMC-ConsultingBooking/internal/domain"

// Request модель запроса на подтверждение заявки
type Request struct {
	PublicID   string
	ApprovedBy string  // subject сотрудника
	MeetingURL *string // опционально, абсолютный http(s) URL
	AdminNotes *string // опционально
}

// Response подтвержденная заявка и созданный для нее слот
type Response struct {
	Booking *domain.BookingRequest
	Slot    *domain.BookingSlot
}

// Options политика подтверждения
type Options struct {
	// EnforceBlackouts запрещает подтверждать время внутри периода блокировки
	EnforceBlackouts bool
}

// Исходы подтверждения для метрик
const (
	resultConfirmed    = "confirmed"
	resultOverlap      = "overlap"
	resultBlackout     = "blackout"
	resultInvalidState = "invalid_state"
	resultNotFound     = "not_found"
	resultInvalidInput = "invalid_input"
	resultError        = "error"
)
