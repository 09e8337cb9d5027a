package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHttpStatusRecorder_CapturesStatus(t *testing.T) {
	inner := httptest.NewRecorder()
	rec := &HttpStatusRecorder{ResponseWriter: inner, Status: 200}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/query", nil))

	if rec.Status != http.StatusNotFound {
		t.Errorf("Expected recorded status 404, got %d", rec.Status)
	}
	if inner.Code != http.StatusNotFound {
		t.Errorf("Expected inner status 404, got %d", inner.Code)
	}
}

func TestHttpStatusRecorder_DefaultsTo200(t *testing.T) {
	inner := httptest.NewRecorder()
	rec := &HttpStatusRecorder{ResponseWriter: inner, Status: 200}

	// handler writes a body without an explicit WriteHeader
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Status != http.StatusOK {
		t.Errorf("Expected default status 200, got %d", rec.Status)
	}
}
