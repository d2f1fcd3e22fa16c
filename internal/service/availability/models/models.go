package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// UpsertAvailabilityRequest запрос на создание или замену окна для дня недели
type UpsertAvailabilityRequest struct {
	DayOfWeek string `json:"dayOfWeek" validate:"required"` // "Monday", регистр не важен
	StartTime string `json:"startTime" validate:"required"` // "09:00" или "09:00:00"
	EndTime   string `json:"endTime" validate:"required"`
	Timezone  string `json:"timezone" validate:"max=64"` // по умолчанию UTC
}

// Response модели

// AvailabilityResponse ответ с окном доступности
type AvailabilityResponse struct {
	ID        int64     `json:"id"`
	DayOfWeek string    `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AvailabilityListResponse ответ с недельным расписанием
type AvailabilityListResponse struct {
	Availability []AvailabilityResponse `json:"availability"`
}

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *AvailabilityResponse {
	if w == nil {
		return nil
	}
	return &AvailabilityResponse{
		ID:        w.ID,
		DayOfWeek: string(w.DayOfWeek),
		StartTime: w.StartTime.String(),
		EndTime:   w.EndTime.String(),
		Timezone:  w.Timezone,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(list []*domain.AvailabilityWindow) *AvailabilityListResponse {
	result := make([]AvailabilityResponse, 0, len(list))
	for _, w := range list {
		if resp := FromDomainWindow(w); resp != nil {
			result = append(result, *resp)
		}
	}
	return &AvailabilityListResponse{Availability: result}
}
