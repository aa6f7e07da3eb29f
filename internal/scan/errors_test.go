package scan

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Wrapping(t *testing.T) {
	cause := errors.New("socket busy")
	err := newDaemonInitError(cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is() should find the wrapped cause")
	}
	if !strings.Contains(err.Error(), "daemon init failed") || !strings.Contains(err.Error(), "socket busy") {
		t.Errorf("Error() = %q, missing kind or cause", err.Error())
	}
}

func TestError_BrowseIncludesCategory(t *testing.T) {
	err := newBrowseError(CategoryBluesound, errors.New("no interface"))
	if !strings.Contains(err.Error(), CategoryBluesound) {
		t.Errorf("Error() = %q, want category included", err.Error())
	}
}

func TestErrorKindPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"init error matches", newDaemonInitError(errors.New("x")), IsDaemonInitError, true},
		{"shutdown error matches", newDaemonShutdownError(errors.New("x")), IsDaemonShutdownError, true},
		{"browse error matches", newBrowseError("_musc._tcp", errors.New("x")), IsBrowseError, true},
		{"init is not shutdown", newDaemonInitError(errors.New("x")), IsDaemonShutdownError, false},
		{"plain error matches nothing", errors.New("x"), IsDaemonInitError, false},
		{"wrapped error still matches", fmt.Errorf("outer: %w", newDaemonInitError(errors.New("x"))), IsDaemonInitError, true},
		{"nil matches nothing", nil, IsBrowseError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	if got := ErrorKind(99).String(); got != "ErrorKind(99)" {
		t.Errorf("unknown kind String() = %q", got)
	}
	if got := ErrKindNotification.String(); got != "notification delivery failed" {
		t.Errorf("ErrKindNotification.String() = %q", got)
	}
}
