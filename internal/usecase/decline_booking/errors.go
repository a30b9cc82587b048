package decline_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("decline_booking: booking request not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("decline_booking: internal error")
)
