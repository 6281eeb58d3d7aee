package apperrors

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAppErrors(t *testing.T) {
	t.Run(`status mapping check`, func(t *testing.T) {
		require.Equal(t, fiber.StatusBadRequest, StatusCode(Validation("comments are required")))
		require.Equal(t, fiber.StatusUnauthorized, StatusCode(Unauthenticated("token expired")))
		require.Equal(t, fiber.StatusForbidden, StatusCode(Forbidden("not your department")))
		require.Equal(t, fiber.StatusNotFound, StatusCode(NotFound("application not found")))
		require.Equal(t, fiber.StatusConflict, StatusCode(Conflict("already decided")))
		require.Equal(t, fiber.StatusInternalServerError, StatusCode(errors.New("connection refused")))
	})

	t.Run(`wrapped error keeps kind and message`, func(t *testing.T) {
		err := errors.Wrap(Conflict("application %v is %v", "42", "approved"), "hr review")
		require.True(t, Is(err, KindConflict))
		require.Equal(t, "application 42 is approved", Message(err))
	})

	t.Run(`internal message hidden`, func(t *testing.T) {
		err := errors.New("pq: relation does not exist")
		require.Equal(t, KindInternal, KindOf(err))
		require.Equal(t, "internal server error", Message(err))
		require.False(t, Is(nil, KindInternal))
	})
}
