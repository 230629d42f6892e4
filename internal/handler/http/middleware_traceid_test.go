package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTraceHandler() *Handler {
	return &Handler{logger: logger.Nop(), traceIDs: utils.NewUUIDGenerator()}
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name           string
		requestTraceID string
	}{
		{name: "trace id from request header is reused", requestTraceID: "my-custom-trace-id"},
		{name: "uuid from request header is reused", requestTraceID: "550e8400-e29b-41d4-a716-446655440000"},
		{name: "missing header gets a generated uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTraceHandler()
			var ctxLogger *logger.Logger

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxLogger = logger.FromRequest(r)
				w.WriteHeader(http.StatusTeapot)
			})

			req := httptest.NewRequest(http.MethodGet, "/courses", nil)
			if tt.requestTraceID != "" {
				req.Header.Set(traceIDHeader, tt.requestTraceID)
			}
			rec := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusTeapot, rec.Code)
			require.NotNil(t, ctxLogger)

			got := rec.Header().Get(traceIDHeader)
			require.NotEmpty(t, got)
			if tt.requestTraceID != "" {
				assert.Equal(t, tt.requestTraceID, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithTraceID_GeneratesUniqueIDs(t *testing.T) {
	h := newTraceHandler()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		rec := httptest.NewRecorder()
		h.withTraceID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(traceIDHeader)
		_, dup := seen[id]
		require.False(t, dup, "duplicate trace id %s", id)
		seen[id] = struct{}{}
	}
}
