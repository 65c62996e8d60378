package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestLogger_WritesEntry(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusTeapot, "short and stout")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	if entry["method"] != "GET" || entry["uri"] != "/ping" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry["status"] != float64(http.StatusTeapot) || entry["level"] != "warn" {
		t.Fatalf("unexpected status or level: %+v", entry)
	}
}
