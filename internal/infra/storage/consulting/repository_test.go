package consulting

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

func TestListQuery(t *testing.T) {
	query, args, err := listQuery(Filter{}).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY name, id")
	assert.Empty(t, args)

	status := domain.ServicePublished
	query, args, err = listQuery(Filter{Status: &status}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE status = $1")
	assert.Equal(t, []interface{}{domain.ServicePublished}, args)
}

func TestArrays(t *testing.T) {
	assert.Nil(t, stringArray(nil))
	assert.Nil(t, intArray([]int{}))
	assert.Nil(t, modeArray(nil))

	assert.Equal(t, pq.Int64Array{30, 60}, intArray([]int{30, 60}))
	assert.Equal(t, pq.StringArray{"ZOOM", "TEAMS"}, modeArray([]domain.MeetingMode{domain.MeetingZoom, domain.MeetingTeams}))
}
