package meeting

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func TestScheduledByDateQuery(t *testing.T) {
	query, args, err := scheduledByDateQuery(monday, false).ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "SELECT m.id, m.event_type_id"), query)
	assert.Contains(t, query, "FROM meetings m JOIN event_types e ON m.event_type_id = e.id")
	assert.Contains(t, query, "m.meeting_date = $1")
	assert.Contains(t, query, "m.status = $2")
	assert.True(t, strings.HasSuffix(query, "ORDER BY m.meeting_time ASC"), query)
	assert.NotContains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{"2026-10-19", domain.StatusScheduled}, args)
}

func TestScheduledByDateQueryLocksMeetingRows(t *testing.T) {
	query, _, err := scheduledByDateQuery(monday, true).ToSql()
	require.NoError(t, err)

	// блокируются только строки встреч, event_types остается доступной
	assert.True(t, strings.HasSuffix(query, "ORDER BY m.meeting_time ASC FOR UPDATE OF m"), query)
}

func TestListQueryScopes(t *testing.T) {
	tests := []struct {
		name     string
		scope    domain.MeetingScope
		contains []string
		absent   []string
		order    string
		args     []interface{}
	}{
		{
			name:     "upcoming includes today",
			scope:    domain.ScopeUpcoming,
			contains: []string{"m.status = $1", "m.meeting_date >= $2"},
			absent:   []string{"m.meeting_date <"},
			order:    "ORDER BY m.meeting_date ASC, m.meeting_time ASC",
			args:     []interface{}{domain.StatusScheduled, "2026-10-14"},
		},
		{
			name:     "past excludes today",
			scope:    domain.ScopePast,
			contains: []string{"m.status = $1", "m.meeting_date < $2"},
			absent:   []string{"m.meeting_date >="},
			order:    "ORDER BY m.meeting_date DESC, m.meeting_time DESC",
			args:     []interface{}{domain.StatusScheduled, "2026-10-14"},
		},
		{
			name:   "all includes cancelled",
			scope:  domain.ScopeAll,
			absent: []string{"m.status", "m.meeting_date"},
			order:  "ORDER BY m.meeting_date DESC, m.meeting_time DESC",
		},
		{
			name:     "scheduled",
			scope:    domain.ScopeScheduled,
			contains: []string{"m.status = $1"},
			absent:   []string{"m.meeting_date"},
			order:    "ORDER BY m.meeting_date DESC, m.meeting_time DESC",
			args:     []interface{}{domain.StatusScheduled},
		},
	}

	today := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := listQuery(domain.MeetingsFilter{Scope: tt.scope, Today: today}).ToSql()
			require.NoError(t, err)

			for _, s := range tt.contains {
				assert.Contains(t, query, s)
			}
			// условия ищем только после FROM, в списке колонок те же имена
			conditions := strings.SplitN(strings.SplitN(query, " FROM ", 2)[1], "ORDER BY", 2)[0]
			for _, s := range tt.absent {
				assert.NotContains(t, conditions, s)
			}
			assert.True(t, strings.HasSuffix(query, tt.order), query)
			if tt.args == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.args, args)
			}
		})
	}
}

func TestClassifyWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "unique violation", err: &pq.Error{Code: "23505"}, want: ErrSlotTaken},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), want: ErrSlotTaken},
		{name: "serialization failure", err: &pq.Error{Code: "40001"}, want: ErrConcurrentWrite},
		{name: "deadlock", err: &pq.Error{Code: "40P01"}, want: ErrConcurrentWrite},
		{name: "foreign key violation", err: &pq.Error{Code: "23503"}, want: ErrExecQuery},
		{name: "not a postgres error", err: errors.New("connection reset"), want: ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyWriteError("Create - execute insert", tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
