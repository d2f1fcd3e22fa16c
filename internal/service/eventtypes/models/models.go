package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// EventTypeRequest запрос на создание или полную замену типа события
type EventTypeRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	Slug            string `json:"slug" validate:"required,max=255,slug"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,min=1,max=1440"`
	Description     string `json:"description" validate:"max=2000"`
}

// Normalize обрезает пробелы по краям строковых полей
func (r *EventTypeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.TrimSpace(r.Slug)
	r.Description = strings.TrimSpace(r.Description)
}

// ToDomain конвертирует request в domain модель
func (r *EventTypeRequest) ToDomain() *domain.EventType {
	return &domain.EventType{
		Name:            r.Name,
		Slug:            r.Slug,
		DurationMinutes: r.DurationMinutes,
		Description:     r.Description,
	}
}

// Response модели

// EventTypeResponse ответ с данными типа события
type EventTypeResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	DurationMinutes int       `json:"durationMinutes"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// EventTypeListResponse ответ со списком типов событий
type EventTypeListResponse struct {
	EventTypes []EventTypeResponse `json:"eventTypes"`
}

// FromDomainEventType конвертирует domain модель в DTO
func FromDomainEventType(e *domain.EventType) *EventTypeResponse {
	if e == nil {
		return nil
	}
	return &EventTypeResponse{
		ID:              e.ID,
		Name:            e.Name,
		Slug:            e.Slug,
		DurationMinutes: e.DurationMinutes,
		Description:     e.Description,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// FromDomainEventTypeList конвертирует список domain моделей в DTO
func FromDomainEventTypeList(list []*domain.EventType) *EventTypeListResponse {
	result := make([]EventTypeResponse, 0, len(list))
	for _, e := range list {
		if resp := FromDomainEventType(e); resp != nil {
			result = append(result, *resp)
		}
	}
	return &EventTypeListResponse{EventTypes: result}
}
