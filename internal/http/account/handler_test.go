package account_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finanzas/internal/account"
	accounthttp "github.com/MrJamesThe3rd/finanzas/internal/http/account"
)

type body struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Error          string          `json:"error"`
	Fields         []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
}

func serve(t *testing.T, repo *account.MockRepository, method, target, payload string) (*httptest.ResponseRecorder, body) {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/api/accounts", accounthttp.NewHandler(account.NewService(repo, nil)).Routes)

	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var b body
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	}

	return rec, b
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		payload    string
		setupMock  func(m *account.MockRepository)
		wantStatus int
		wantFields []string
	}

	tests := []testCase{
		{
			name:    "Created",
			payload: `{"name":"BCP","kind":"bank","initial_balance":"1500.50"}`,
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *account.Account) error {
						a.ID = 4
						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MissingFields",
			payload:    `{"currency":"EUR"}`,
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"name", "kind", "currency"},
		},
		{
			name:       "UnknownField",
			payload:    `{"name":"BCP","kind":"bank","colour":"red"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "EmptyBody",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := account.NewMockRepository(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec, b := serve(t, repo, http.MethodPost, "/api/accounts", tt.payload)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, int64(4), b.ID)
				assert.Equal(t, "PEN", b.Currency)
				assert.Equal(t, "1500.5", b.CurrentBalance.String())

				return
			}

			assert.NotEmpty(t, b.Error)

			if tt.wantFields != nil {
				var got []string
				for _, f := range b.Fields {
					got = append(got, f.Field)
				}

				assert.Equal(t, tt.wantFields, got)
			}
		})
	}
}

func TestHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := account.NewMockRepository(ctrl)

	repo.EXPECT().GetAccount(gomock.Any(), int64(9)).Return(nil, account.ErrNotFound)

	rec, b := serve(t, repo, http.MethodGet, "/api/accounts/9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "account not found", b.Error)

	rec, _ = serve(t, repo, http.MethodGet, "/api/accounts/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
