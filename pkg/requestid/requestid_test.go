package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recipebox/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		inbound string
		reuse   bool
	}{
		{name: "generated when missing", inbound: "", reuse: false},
		{name: "reused when valid", inbound: "abc-123_X", reuse: true},
		{name: "replaced when invalid chars", inbound: "bad id!", reuse: false},
		{name: "replaced when too long", inbound: strings.Repeat("a", 129), reuse: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = requestid.FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.inbound != "" {
				req.Header.Set(requestid.Header, tt.inbound)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, seen, rec.Header().Get(requestid.Header))
			if tt.reuse {
				assert.Equal(t, tt.inbound, seen)
			} else {
				_, err := uuid.Parse(seen)
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	ex := requestid.LoggerExtractor()

	_, ok := ex(context.Background())
	assert.False(t, ok)

	attr, ok := ex(requestid.WithContext(context.Background(), "r-1"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "r-1", attr.Value.String())
}
