package statement_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statementHandler "github.com/MrJamesThe3rd/ledger/internal/http/statement"
	"github.com/MrJamesThe3rd/ledger/internal/statement"
	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

const card = `date,name,amount,category,account,transaction_id,pending
2024-03-04,Coffee,4.75,Food and Drink,Card,d,false
2024-03-05,Payroll,-2500.00,,Checking,c,false
`

func multipartBody(t *testing.T, field, name, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if field != "" {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestHandler_Upload(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		content    string
		singleFile bool
		wantStatus int
	}{
		{name: "stored", field: "file", content: card, wantStatus: http.StatusCreated},
		{name: "missing file", wantStatus: http.StatusBadRequest},
		{name: "unknown layout", field: "file", content: "a,b\n1,2\n", wantStatus: http.StatusUnprocessableEntity},
		{name: "single file source", field: "file", content: card, singleFile: true, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := dir

			if tt.singleFile {
				path = filepath.Join(dir, "only.csv")
				require.NoError(t, os.WriteFile(path, []byte(card), 0o600))
			}

			src := statement.NewSource(path)
			txs := transaction.NewService(src, time.Hour)

			r := chi.NewRouter()
			r.Route("/statements", statementHandler.NewHandler(src, txs).Routes)

			body, contentType := multipartBody(t, tt.field, "card.csv", tt.content)
			req := httptest.NewRequest(http.MethodPost, "/statements/", body)
			req.Header.Set("Content-Type", contentType)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus != http.StatusCreated {
				return
			}

			var resp struct {
				File         string `json:"file"`
				Profile      string `json:"profile"`
				Transactions int    `json:"transactions"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "plaid", resp.Profile)
			assert.Equal(t, 2, resp.Transactions)
			assert.FileExists(t, filepath.Join(dir, resp.File))

			got, err := txs.List(context.Background(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)
			assert.Len(t, got, 2)
		})
	}
}
