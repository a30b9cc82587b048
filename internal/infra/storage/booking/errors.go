package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("booking.repository: booking request not found")

	// ErrDuplicatePublicID возвращается при коллизии public_id
	ErrDuplicatePublicID = errors.New("booking.repository: duplicate public id")

	// ErrServiceNotFound возвращается, когда заявка ссылается на несуществующую услугу
	ErrServiceNotFound = errors.New("booking.repository: referenced service not found")

	// ErrNotInTransaction возвращается, когда блокирующее чтение вызвано вне транзакции
	ErrNotInTransaction = errors.New("booking.repository: locking read requires a transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
