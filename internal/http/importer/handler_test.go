package importer_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	importhttp "github.com/MrJamesThe3rd/finanzas/internal/http/importer"
	"github.com/MrJamesThe3rd/finanzas/internal/importer"
)

type recorder struct{ imported, conflicts int }

func (r *recorder) ImportRows(imported, conflicts int) {
	r.imported += imported
	r.conflicts += conflicts
}

func upload(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/excel", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestHandler_Import_Rejects(t *testing.T) {
	type testCase struct {
		name    string
		req     func(t *testing.T) *http.Request
		wantMsg string
	}

	tests := []testCase{
		{
			name: "NotMultipart",
			req: func(*testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/excel", strings.NewReader(`{}`))
			},
			wantMsg: "multipart",
		},
		{
			name:    "MissingFile",
			req:     func(t *testing.T) *http.Request { return upload(t, "", nil, nil) },
			wantMsg: "is required",
		},
		{
			name:    "UnsupportedFormat",
			req:     func(t *testing.T) *http.Request { return upload(t, "estado.pdf", []byte("%PDF"), nil) },
			wantMsg: ".xlsx or .csv",
		},
		{
			name: "BadAccount",
			req: func(t *testing.T) *http.Request {
				return upload(t, "a.csv", []byte("x"), map[string]string{"account_id": "uno"})
			},
			wantMsg: "must be an integer",
		},
		{
			name: "TooLarge",
			req: func(t *testing.T) *http.Request {
				return upload(t, "big.csv", bytes.Repeat([]byte("a"), 2<<20), nil)
			},
			wantMsg: "at most 1 MB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := importer.NewService(
				importer.NewMockCategories(ctrl),
				importer.NewMockAccounts(ctrl),
				importer.NewMockTransactions(ctrl),
			)

			rec := &recorder{}
			r := chi.NewRouter()
			importhttp.NewHandler(svc, 1, rec).Routes(r)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, tt.req(t))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
			assert.Zero(t, rec.imported)
		})
	}
}
