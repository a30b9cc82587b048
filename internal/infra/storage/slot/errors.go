package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotExists возвращается, когда у заявки уже есть слот
	ErrSlotExists = errors.New("slot.repository: booking request already has a slot")

	// ErrOverlap возвращается, когда ограничение базы отклонило пересекающийся активный слот
	ErrOverlap = errors.New("slot.repository: active slot overlaps")

	// ErrInvalidInterval возвращается, когда начало слота не раньше конца
	ErrInvalidInterval = errors.New("slot.repository: slot start must be before end")

	// ErrNotInTransaction возвращается, когда блокировка запрошена вне транзакции
	ErrNotInTransaction = errors.New("slot.repository: schedule lock requires a transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
