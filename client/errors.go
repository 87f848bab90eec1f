package client

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// NetworkError means no usable reply arrived: the server was unreachable, the request
// timed out, or the body could not be decoded.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Timeout() {
		return fmt.Sprintf("%s %s: request timed out: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: cannot reach server: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, fasthttp.ErrTimeout) ||
		errors.Is(e.Err, fasthttp.ErrDialTimeout) ||
		errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// APIError is a reply with status 400 or above. Message is the server's "error" field.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d: %s (%s)", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server. The client has already
// dropped its token by then.
func IsUnauthorized(err error) bool {
	return hasStatus(err, fiber.StatusUnauthorized)
}

// IsForbidden reports a rejected (expired, revoked or foreign) token.
func IsForbidden(err error) bool {
	return hasStatus(err, fiber.StatusForbidden)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
