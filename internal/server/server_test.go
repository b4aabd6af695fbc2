package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func newTestServer() Options {
	resolver := services.NewAnalysisResolver(nil, nil, 15*time.Second)
	return Options{
		MaxFileSize:    10 * 1024 * 1024,
		AnalyzeHandler: handlers.NewAnalyzeHandler(resolver, services.NewPDFInspector(), 10*1024*1024),
		HealthHandler:  handlers.NewHealthHandler(false),
	}
}

func TestRoutes(t *testing.T) {
	app := New(newTestServer())

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "root", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/api/health", wantStatus: http.StatusOK},
		{name: "analyze wrong method", method: http.MethodPut, path: "/api/analyze", wantStatus: http.StatusMethodNotAllowed},
		{name: "analyze without file", method: http.MethodPost, path: "/api/analyze", wantStatus: http.StatusBadRequest},
		{name: "unknown route", method: http.MethodGet, path: "/api/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil), -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestCustomErrorHandler(t *testing.T) {
	app := New(newTestServer())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var body models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != http.StatusNotFound || body.Error == "" {
		t.Errorf("error body = %+v, want 404 with message", body)
	}
}

func TestCORSExposesAnalysisID(t *testing.T) {
	app := New(newTestServer())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Expose-Headers"); got != "X-Analysis-ID" {
		t.Errorf("Access-Control-Expose-Headers = %q", got)
	}
}
