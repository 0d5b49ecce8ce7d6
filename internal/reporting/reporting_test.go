package reporting

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestInitWithoutDSN(t *testing.T) {
	if err := Init("", "test"); err != nil {
		t.Errorf("Init(\"\") error = %v, want nil", err)
	}
}

func TestInitInvalidDSN(t *testing.T) {
	if err := Init("not a dsn", "test"); err == nil {
		t.Error("Init() error = nil, want error for invalid DSN")
	}
}

func TestCaptureErrorWithoutClient(t *testing.T) {
	// Must not panic when reporting is disabled.
	CaptureError(context.Background(), errors.New("boom"))
	CaptureError(context.Background(), nil)
	Flush(10 * time.Millisecond)
}

func TestMiddlewarePassesThrough(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}
