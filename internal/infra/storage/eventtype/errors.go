package eventtype

import "errors"

var (
	// ErrEventTypeNotFound возвращается, когда тип события не найден
	ErrEventTypeNotFound = errors.New("eventtype.repository: event type not found")

	// ErrDuplicateSlug возвращается при нарушении уникальности slug
	ErrDuplicateSlug = errors.New("eventtype.repository: slug already exists")

	// ErrEventTypeInUse возвращается при удалении типа события, на который ссылаются встречи,
	// и при изменении длительности, пока у типа есть запланированные встречи
	ErrEventTypeInUse = errors.New("eventtype.repository: event type is referenced by meetings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("eventtype.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("eventtype.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("eventtype.repository: failed to scan row")
)
