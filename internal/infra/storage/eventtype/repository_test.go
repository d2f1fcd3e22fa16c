package eventtype

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func TestScheduledMeetingsExistQuery(t *testing.T) {
	query, args, err := scheduledMeetingsExistQuery(7).ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "SELECT EXISTS ( SELECT 1 FROM meetings"), query)
	assert.Contains(t, query, "event_type_id = $1")
	assert.Contains(t, query, "status = $2")
	assert.True(t, strings.HasSuffix(query, ")"), query)
	assert.Equal(t, []interface{}{int64(7), domain.StatusScheduled}, args)
}
