package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gigfrog/backend/pkg/ctxutil"
)

func TestRequestID_Generated(t *testing.T) {
	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxutil.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RequestID(handler).ServeHTTP(rec, req)

	if got == "" {
		t.Error("expected a generated request id in context")
	}
	if rec.Header().Get("X-Request-Id") != got {
		t.Errorf("response header %q does not match context id %q", rec.Header().Get("X-Request-Id"), got)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxutil.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "upstream-id")
	rec := httptest.NewRecorder()

	RequestID(handler).ServeHTTP(rec, req)

	if got != "upstream-id" {
		t.Errorf("request id = %q, want upstream-id", got)
	}
}
