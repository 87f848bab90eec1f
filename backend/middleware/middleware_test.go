package middleware

import (
	"bytes"
	"log"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebonlee/stepup-cloud/backend/utils"
)

func TestBearerToken(t *testing.T) {
	cases := map[string]struct {
		header string
		token  string
		ok     bool
	}{
		"valid":       {"Bearer abc.def", "abc.def", true},
		"lower case":  {"bearer abc", "abc", true},
		"empty":       {"", "", false},
		"no token":    {"Bearer ", "", false},
		"blank token": {"Bearer    ", "", false},
		"basic":       {"Basic dXNlcg==", "", false},
		"raw token":   {"abc.def", "", false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			token, ok := bearerToken(tc.header)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.token, token)
		})
	}
}

func TestLoggingMiddlewareJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(LoggingMiddleware(logger, utils.LoggerConfig{Format: "json"}))
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/teapot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	var entry requestLog
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "GET", entry.Method)
	assert.Equal(t, "/teapot", entry.Path)
	assert.Equal(t, fiber.StatusTeapot, entry.Status)
	assert.NotEmpty(t, entry.RequestID)
}
