package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "booking_requests_public_id_key"})

	assert.Equal(t, UniqueViolation, Code(err))
	assert.True(t, Is(err, UniqueViolation))
	assert.False(t, Is(err, ForeignKeyViolation))
	assert.Equal(t, "booking_requests_public_id_key", Constraint(err))

	assert.Equal(t, "", Code(errors.New("plain")))
	assert.False(t, Is(nil, UniqueViolation))
}
