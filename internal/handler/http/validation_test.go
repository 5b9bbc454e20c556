package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputValidation(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "normal request",
			target:       "/api/news/search?q=golang",
			expectedCode: http.StatusOK,
		},
		{
			name:         "path at limit",
			target:       "/" + strings.Repeat("a", MaxPathLength-1),
			expectedCode: http.StatusOK,
		},
		{
			name:         "path too long",
			target:       "/" + strings.Repeat("a", MaxPathLength),
			expectedCode: http.StatusRequestURITooLong,
			expectedErr:  "URI too long",
		},
		{
			name:         "query at limit",
			target:       "/api/news/search?q=" + strings.Repeat("a", MaxQueryLength-2),
			expectedCode: http.StatusOK,
		},
		{
			name:         "query too long",
			target:       "/api/news/search?q=" + strings.Repeat("a", MaxQueryLength),
			expectedCode: http.StatusRequestURITooLong,
			expectedErr:  "Query string too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := InputValidation()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedErr == "" {
				assert.True(t, called)
				return
			}
			assert.False(t, called)
			var body map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.expectedErr, body["error"])
		})
	}
}
