package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, CodeValidation, "bad", []string{"x"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "bad", got["error"])
	assert.Equal(t, CodeValidation, got["code"])
	assert.Equal(t, []any{"x"}, got["details"])
}

func TestWriteError_OmitsEmptyDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusUnauthorized, CodeUnauthorized, "no", nil)
	assert.NotContains(t, rec.Body.String(), "details")
}

func TestReadJSON(t *testing.T) {
	type body struct {
		Type string `json:"type"`
	}
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{"ok", `{"type":"CREDIT"}`, ""},
		{"empty", ``, "body is empty"},
		{"unknown field", `{"type":"CREDIT","extra":1}`, "unknown field"},
		{"trailing object", `{"type":"CREDIT"}{"type":"DEBIT"}`, "single JSON object"},
		{"not json", `type=CREDIT`, "malformed body"},
		{"too large", `{"type":"` + strings.Repeat("a", MaxBodyBytes) + `"}`, "exceeds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.in))
			var dst body
			err := ReadJSON(httptest.NewRecorder(), req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "CREDIT", dst.Type)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
