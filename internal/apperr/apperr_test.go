package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fiber.StatusBadRequest, KindBadRequest.Status())
	assert.Equal(t, fiber.StatusUnauthorized, KindUnauthorized.Status())
	assert.Equal(t, fiber.StatusForbidden, KindForbidden.Status())
	assert.Equal(t, fiber.StatusNotFound, KindNotFound.Status())
	assert.Equal(t, fiber.StatusConflict, KindConflict.Status())
	assert.Equal(t, fiber.StatusBadGateway, KindUpstream.Status())
	assert.Equal(t, fiber.StatusInternalServerError, KindInternal.Status())
}

func TestKindOfWrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("handler: %w", NotFound("profession not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsKind(err, KindNotFound))

	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestUpstreamKeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := Upstream("database error", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "database error")
}
