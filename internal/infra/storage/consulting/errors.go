package consulting

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("consulting.repository: service not found")

	// ErrDuplicateSlug возвращается при попытке создать услугу с занятым slug
	ErrDuplicateSlug = errors.New("consulting.repository: duplicate service slug")

	// ErrServiceInUse возвращается при удалении услуги, на которую ссылаются заявки
	ErrServiceInUse = errors.New("consulting.repository: service is referenced by booking requests")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("consulting.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("consulting.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("consulting.repository: failed to scan row")
)
