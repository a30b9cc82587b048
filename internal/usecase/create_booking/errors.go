package create_booking

import "errors"

var (
	// ErrPublicIDCollision возвращается, когда все попытки подобрать свободный public_id исчерпаны
	ErrPublicIDCollision = errors.New("create_booking: could not allocate a unique public id")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
