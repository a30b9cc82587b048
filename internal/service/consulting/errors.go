package consulting

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или скрыта от клиента
	ErrServiceNotFound = errors.New("consulting service not found")

	// ErrDuplicateSlug возвращается, когда slug уже занят
	ErrDuplicateSlug = errors.New("consulting service with this slug already exists")

	// ErrServiceInUse возвращается при удалении услуги, на которую ссылаются заявки
	ErrServiceInUse = errors.New("consulting service is referenced by booking requests")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
