package eventtypes

import "errors"

var (
	// ErrEventTypeNotFound возвращается, когда тип события не найден
	ErrEventTypeNotFound = errors.New("event type not found")

	// ErrDuplicateSlug возвращается, когда slug уже занят другим типом события
	ErrDuplicateSlug = errors.New("event type with this slug already exists")

	// ErrEventTypeInUse возвращается при удалении типа события, на который ссылаются встречи,
	// и при изменении длительности типа с запланированными встречами
	ErrEventTypeInUse = errors.New("event type is used by meetings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
