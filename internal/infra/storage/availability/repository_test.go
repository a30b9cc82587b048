package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

func TestBlackoutsInRangeQuery(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	interval := domain.Interval{Start: start, End: start.AddDate(0, 0, 14)}

	query, args, err := blackoutsInRangeQuery(interval).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, start_at, end_at, reason, created_by, created_at FROM blackout_periods "+
			"WHERE start_at < $1 AND end_at > $2 ORDER BY start_at",
		query)
	assert.Equal(t, []interface{}{interval.End, interval.Start}, args)
}
