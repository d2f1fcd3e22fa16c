package meeting

import "errors"

var (
	// ErrMeetingNotFound возвращается, когда встреча не найдена
	ErrMeetingNotFound = errors.New("meeting.repository: meeting not found")

	// ErrSlotTaken возвращается, когда уникальный индекс по (дата, время) запланированных встреч уже занят
	ErrSlotTaken = errors.New("meeting.repository: slot already taken")

	// ErrConcurrentWrite возвращается, когда PostgreSQL отменил сериализуемую транзакцию
	ErrConcurrentWrite = errors.New("meeting.repository: concurrent write detected")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("meeting.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("meeting.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("meeting.repository: failed to scan row")
)
