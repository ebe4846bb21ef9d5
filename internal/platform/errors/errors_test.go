package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeMissingReference, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicate, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeDisabled, http.StatusForbidden},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeSessionCreation, http.StatusBadGateway},
		{ErrorCodeURLCreation, http.StatusBadGateway},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeCancelled, 499},
		{ErrorCodeConfiguration, http.StatusInternalServerError},
		{ErrorCodeStorage, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	if got := ErrorCodeSessionCreation.String(); got != "session_creation" {
		t.Fatalf("String() = %q", got)
	}
	if got := ErrorCode(9999).String(); got != "code(9999)" {
		t.Fatalf("String() unknown = %q", got)
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	// New / Newf
	e1 := New(ErrorCodeValidation, "bad stuff")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json %d", 12)
	if got := e2.Error(); got != "bad json 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	// Wrap / Wrapf / Unwrap
	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeStorage, "write failed")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	if CodeOf(e3) != ErrorCodeStorage {
		t.Fatalf("CodeOf(Wrap) = %v", CodeOf(e3))
	}
	e4 := Wrapf(src, ErrorCodeSessionCreation, "nope %s", "here")
	// Error() includes message + ": " + orig
	if want := "nope here: root"; e4.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e4.Error(), want)
	}
	if got, _ := As(e4); got.Message() != "nope here" {
		t.Fatalf("Message() = %q", got.Message())
	}

	// As
	if got, ok := As(e4); !ok || got.Code() != ErrorCodeSessionCreation {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	// WithField (copy-on-write) and WithOp
	e5 := Wrap(src, ErrorCodeValidation, "oops")
	e6 := WithField(e5, "sessionId")
	e7 := WithOp(e6, "getLivenessResult")
	if fe, ok := As(e6); !ok || fe.Field() != "sessionId" {
		t.Fatalf("WithField failed")
	}
	if oe, ok := As(e7); !ok || oe.Op() != "getLivenessResult" {
		t.Fatalf("WithOp failed")
	}
	// original unchanged
	if fe0, _ := As(e5); fe0.Field() != "" || fe0.Op() != "" {
		t.Fatalf("copy-on-write mutated original")
	}
	if WithField(src, "x") != src || WithOp(src, "x") != src {
		t.Fatalf("mutators should pass foreign errors through")
	}

	// Wire / WireFrom
	w := (&Error{code: ErrorCodeDisabled, msg: "nope", field: "tool"}).ToWire()
	if w.Code != ErrorCodeDisabled || w.Message != "nope" || w.Field != "tool" {
		t.Fatalf("ToWire mismatch: %+v", w)
	}
	if wf := WireFrom(nil); wf != (Wire{}) {
		t.Fatalf("WireFrom(nil) expected zero, got %+v", wf)
	}
	if wf := WireFrom(src); wf.Code != ErrorCodeUnknown || wf.Message != "root" {
		t.Fatalf("WireFrom(foreign) mismatch: %+v", wf)
	}
	// WireFrom for our error uses only e.msg (not "msg: orig")
	if wf := WireFrom(e4); wf.Code != ErrorCodeSessionCreation || wf.Message != "nope here" {
		t.Fatalf("WireFrom(ours) mismatch: %+v", wf)
	}

	// HTTP and HTTPStatus
	if st, _ := HTTP(nil); st != http.StatusOK {
		t.Fatalf("HTTP(nil) status = %d", st)
	}
	if st, wire := HTTP(NotFoundf("tool %q", "x")); st != http.StatusNotFound || wire.Code != ErrorCodeNotFound {
		t.Fatalf("HTTP(notfound) = %d %+v", st, wire)
	}
	if st := HTTPStatus(e3); st != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus mismatch")
	}

	// Helpers (sugar) and IsCode
	if !IsCode(NotFoundf("x"), ErrorCodeNotFound) ||
		!IsCode(InvalidArgf("x"), ErrorCodeInvalidArgument) ||
		!IsCode(Validationf("x"), ErrorCodeValidation) ||
		!IsCode(Disabledf("x"), ErrorCodeDisabled) ||
		!IsCode(Duplicatef("x"), ErrorCodeDuplicate) ||
		!IsCode(Configurationf("x"), ErrorCodeConfiguration) ||
		!IsCode(JSONErrf("x"), ErrorCodeJSON) ||
		!IsCode(PanicErrf("x"), ErrorCodePanic) ||
		!IsCode(Unavailablef("x"), ErrorCodeUnavailable) ||
		!IsCode(Internalf("x"), ErrorCodeUnknown) {
		t.Fatalf("sugar helpers code mismatch")
	}

	// WrapIf
	if WrapIf(nil, ErrorCodeStorage, "ignored") != nil {
		t.Fatalf("WrapIf(nil) should return nil")
	}
	if WrapIf(src, ErrorCodeStorage, "disk") == nil {
		t.Fatalf("WrapIf(non-nil) should wrap")
	}

	// Root traversal
	deep := fmt.Errorf("level2: %w", fmt.Errorf("level1: %w", src))
	if got := Root(deep); got == nil || got.Error() != "root" {
		t.Fatalf("Root() failed, got %v", got)
	}

	if !IsCode(ErrNotFound, ErrorCodeNotFound) {
		t.Fatalf("ErrNotFound code mismatch")
	}
}

func TestIsMatchesSentinelsByCode(t *testing.T) {
	timeout := New(ErrorCodeTimeout, "")
	err := fmt.Errorf("poll: %w", Newf(ErrorCodeTimeout, "session %s timed out", "abc"))
	if !stderrs.Is(err, timeout) {
		t.Fatalf("errors.Is should match by code when sentinel message is empty")
	}
	if stderrs.Is(err, New(ErrorCodeCancelled, "")) {
		t.Fatalf("errors.Is matched a different code")
	}
	if stderrs.Is(err, New(ErrorCodeTimeout, "other message")) {
		t.Fatalf("errors.Is should compare messages when the sentinel carries one")
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{Unavailablef("503"), true},
		{New(ErrorCodeTooManyRequests, "429"), true},
		{New(ErrorCodeSessionCreation, "no id"), false},
		{stderrs.New("foreign"), false},
		{nil, false},
	}
	for _, c := range cases {
		if got := Retryable(c.err); got != c.want {
			t.Fatalf("Retryable(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}
