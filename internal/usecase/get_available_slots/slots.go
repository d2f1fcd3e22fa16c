package get_available_slots

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// generateCandidates генерирует начала слотов start + k*duration внутри окна
// Последний слот должен закончиться не позже конца окна
func generateCandidates(window domain.Interval, duration int) []int {
	candidates := make([]int, 0)
	if duration <= 0 {
		return candidates
	}

	for start := window.Start; start+duration <= window.End; start += duration {
		candidates = append(candidates, start)
	}

	return candidates
}

// busyIntervals переводит запланированные встречи в интервалы занятости
// Встречи с некорректным временем пропускаются
func busyIntervals(meetings []*domain.Meeting) []domain.Interval {
	busy := make([]domain.Interval, 0, len(meetings))
	for _, meeting := range meetings {
		if !meeting.IsScheduled() {
			continue
		}
		interval, err := meeting.Interval()
		if err != nil {
			continue
		}
		busy = append(busy, interval)
	}
	return busy
}

// freeSlots оставляет кандидатов, не пересекающихся ни с одной встречей
// Касание границ (конец встречи = начало слота) пересечением не считается
//
// Примеры при длительности 30:
// - слот 10:00-10:30, встреча 10:00-10:30 → занят
// - слот 09:30-10:00, встреча 10:00-10:30 → свободен
// - слот 10:30-11:00, встреча 10:15-10:45 → занят
func freeSlots(candidates []int, duration int, busy []domain.Interval) ([]types.TimeString, error) {
	result := make([]types.TimeString, 0, len(candidates))

	for _, start := range candidates {
		slot := domain.NewInterval(start, duration)

		taken := false
		for _, b := range busy {
			if slot.Overlaps(b) {
				taken = true
				break
			}
		}
		if taken {
			continue
		}

		ts, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			return nil, err
		}
		result = append(result, ts)
	}

	return result, nil
}
