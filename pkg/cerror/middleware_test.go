//go:build unit

package cerror

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestMiddleware(t *testing.T) {
	t.Run("custom error should serialize status and details", func(t *testing.T) {
		app := fiber.New(fiber.Config{
			ErrorHandler: Middleware,
		})
		app.Get("/", func(ctx *fiber.Ctx) error {
			return NewError(fiber.StatusConflict, "user already exists").
				SetSeverity(zapcore.WarnLevel).
				SetDetails(map[string]string{
					"email": "duplicate",
				})
		})

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var parsedBody map[string]interface{}
		err = json.Unmarshal(body, &parsedBody)
		require.NoError(t, err)

		assert.Equal(t, "user already exists", parsedBody["error"])
		assert.NotEmpty(t, parsedBody["details"])
	})

	t.Run("unanticipated error should collapse to generic 500", func(t *testing.T) {
		app := fiber.New(fiber.Config{
			ErrorHandler: Middleware,
		})
		app.Get("/", func(ctx *fiber.Ctx) error {
			return errors.New("database exploded")
		})

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var parsedBody map[string]interface{}
		err = json.Unmarshal(body, &parsedBody)
		require.NoError(t, err)

		assert.Equal(t, "internal server error", parsedBody["error"])
		assert.NotContains(t, parsedBody["error"], "database")
	})
}
