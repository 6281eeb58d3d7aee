package dbmodels

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBaseModelBeforeCreate(t *testing.T) {
	t.Run(`generates id`, func(t *testing.T) {
		m := BaseModel{}
		require.NoError(t, m.BeforeCreate(nil))
		_, err := uuid.Parse(m.ID)
		require.NoError(t, err)
	})

	t.Run(`keeps preset id`, func(t *testing.T) {
		m := BaseModel{ID: "preset"}
		require.NoError(t, m.BeforeCreate(nil))
		require.Equal(t, "preset", m.ID)
	})
}
