package faceapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	perr "liveness/internal/platform/errors"
)

// StatusError carries a non-2xx response from the Face API or the website
type StatusError struct {
	Status int
	Body   string
}

// Error interface
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.Status)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Body)
}

// HTTPStatus interface
func (e *StatusError) HTTPStatus() int { return e.Status }

// StatusOf returns the HTTP status behind err, zero when err did not come from a response
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

func isTransient(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func codeForStatus(status int) perr.ErrorCode {
	switch status {
	case http.StatusNotFound:
		return perr.ErrorCodeNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return perr.ErrorCodeInvalidArgument
	case http.StatusUnauthorized, http.StatusForbidden:
		return perr.ErrorCodeConfiguration
	}
	return perr.ErrorCodeUnknown
}

// retryAfter honours a Retry-After header given in seconds
func retryAfter(h http.Header) time.Duration {
	s := h.Get("Retry-After")
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
