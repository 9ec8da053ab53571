package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cloud-events-sync/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestRequestLog_LogsStatusAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Info, Output: &buf})

	h := chimw.RequestID(RequestLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	line := buf.String()
	for _, want := range []string{"status=418", "path=/events", "method=GET", "request_id="} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, "request_id= ") {
		t.Fatalf("expected non-empty request id in %q", line)
	}
}
