package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finanzas/internal/auth"
)

func newVerifier(t *testing.T, secret string) *auth.Verifier {
	t.Helper()

	v, err := auth.NewVerifier(secret, []string{" Ana@Example.com ", "luis@example.com"})
	require.NoError(t, err)

	return v
}

func TestNewVerifier(t *testing.T) {
	_, err := auth.NewVerifier("", []string{"ana@example.com"})
	assert.Error(t, err)

	_, err = auth.NewVerifier("s3cret", []string{" "})
	assert.Error(t, err)
}

func TestVerifier_IssueAndVerify(t *testing.T) {
	v := newVerifier(t, "s3cret")

	token, err := v.Issue("ana@example.com", "Ana", time.Hour)
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.Name)

	_, err = v.Issue("eve@example.com", "", time.Hour)
	assert.ErrorIs(t, err, auth.ErrNotWhitelisted)
}

func TestVerifier_Verify(t *testing.T) {
	v := newVerifier(t, "s3cret")

	other := newVerifier(t, "other")
	foreign, err := other.Issue("ana@example.com", "", time.Hour)
	require.NoError(t, err)

	expired, err := v.Issue("ana@example.com", "", -time.Minute)
	require.NoError(t, err)

	// Signed correctly, but for an email later removed from the list.
	narrower, err := auth.NewVerifier("s3cret", []string{"luis@example.com"})
	require.NoError(t, err)

	ana, err := v.Issue("ana@example.com", "", time.Hour)
	require.NoError(t, err)

	_, err = v.Verify(foreign)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = v.Verify(expired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = v.Verify("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = narrower.Verify(ana)
	assert.ErrorIs(t, err, auth.ErrNotWhitelisted)
}

func TestMiddleware(t *testing.T) {
	v := newVerifier(t, "s3cret")

	token, err := v.Issue("luis@example.com", "", time.Hour)
	require.NoError(t, err)

	narrower, err := auth.NewVerifier("s3cret", []string{"ana@example.com"})
	require.NoError(t, err)

	type testCase struct {
		name     string
		verifier *auth.Verifier
		header   string
		want     int
	}

	tests := []testCase{
		{name: "Valid", verifier: v, header: "Bearer " + token, want: http.StatusOK},
		{name: "LowercaseScheme", verifier: v, header: "bearer " + token, want: http.StatusOK},
		{name: "Missing", verifier: v, want: http.StatusUnauthorized},
		{name: "WrongScheme", verifier: v, header: "Basic abc", want: http.StatusUnauthorized},
		{name: "Garbage", verifier: v, header: "Bearer abc", want: http.StatusUnauthorized},
		{name: "NotWhitelisted", verifier: narrower, header: "Bearer " + token, want: http.StatusForbidden},
		{name: "Disabled", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.verifier != nil {
					c, ok := auth.ClaimsFromContext(r.Context())
					require.True(t, ok)
					assert.Equal(t, "luis@example.com", c.Email)
				}

				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			auth.Middleware(tt.verifier)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
