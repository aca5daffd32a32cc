package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
)

func TestHTTPStatus(t *testing.T) {
	errMissing := apperr.NotFound("loan not found")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "Validation", err: apperr.InvalidField("amount", "must be positive"), want: http.StatusBadRequest},
		{name: "Integrity", err: apperr.Integrity("category in use"), want: http.StatusBadRequest},
		{name: "NotFound", err: errMissing, want: http.StatusNotFound},
		{name: "WrappedNotFound", err: fmt.Errorf("getting loan: %w", errMissing), want: http.StatusNotFound},
		{name: "Conflict", err: apperr.Conflict("duplicate plan"), want: http.StatusConflict},
		{name: "Plain", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.HTTPStatus(tt.err))
		})
	}
}

func TestSentinelIdentity(t *testing.T) {
	errMissing := apperr.NotFound("account not found")
	wrapped := fmt.Errorf("loading account: %w", errMissing)

	assert.True(t, errors.Is(wrapped, errMissing))
	assert.True(t, apperr.Is(wrapped, apperr.KindNotFound))
	assert.False(t, apperr.Is(nil, apperr.KindNotFound))
}

func TestError_Message(t *testing.T) {
	err := apperr.Validation("invalid input",
		apperr.Field("amount", "must be positive"),
		apperr.Field("kind", "must match category"),
	)

	assert.Equal(t, "invalid input (amount: must be positive; kind: must match category)", err.Error())
	assert.Len(t, err.Fields, 2)
}
