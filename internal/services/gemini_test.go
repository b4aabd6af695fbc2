package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeGeminiServer struct {
	mu       sync.Mutex
	paths    []string
	bodies   []map[string]any
	response func(path string) (int, string)
}

func (f *fakeGeminiServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var decoded map[string]any
	_ = json.Unmarshal(body, &decoded)

	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.bodies = append(f.bodies, decoded)
	f.mu.Unlock()

	status, payload := f.response(r.URL.Path)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, payload)
}

func textResponse(text string) string {
	payload, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	})
	return string(payload)
}

func newTestGemini(t *testing.T, fake *fakeGeminiServer) TextGenerator {
	t.Helper()

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	gen, err := NewGeminiService(context.Background(), GeminiOptions{
		APIKey:          "test-key",
		BaseURL:         srv.URL + "/",
		Temperature:     0.1,
		MaxOutputTokens: 2000,
	})
	if err != nil {
		t.Fatalf("NewGeminiService() error = %v", err)
	}
	return gen
}

func TestGeminiService_GenerateText(t *testing.T) {
	fake := &fakeGeminiServer{response: func(string) (int, string) {
		return http.StatusOK, textResponse(`{"overallScore": 88}`)
	}}
	gen := newTestGemini(t, fake)

	text, err := gen.GenerateText(context.Background(), "gemini-2.0-flash", "analyze")
	if err != nil {
		t.Fatalf("GenerateText() error = %v", err)
	}
	if text != `{"overallScore": 88}` {
		t.Errorf("GenerateText() = %q", text)
	}

	if len(fake.paths) != 1 || !strings.HasSuffix(fake.paths[0], "/v1/models/gemini-2.0-flash:generateContent") {
		t.Errorf("paths = %v, want v1 generateContent for the model", fake.paths)
	}

	cfg, ok := fake.bodies[0]["generationConfig"].(map[string]any)
	if !ok {
		t.Fatalf("request has no generationConfig: %v", fake.bodies[0])
	}
	if temp, _ := cfg["temperature"].(float64); temp < 0.09 || temp > 0.11 {
		t.Errorf("temperature = %v, want 0.1", cfg["temperature"])
	}
	if tokens, _ := cfg["maxOutputTokens"].(float64); tokens != 2000 {
		t.Errorf("maxOutputTokens = %v, want 2000", cfg["maxOutputTokens"])
	}
}

func TestGeminiService_APIErrorIsTransportFailure(t *testing.T) {
	fake := &fakeGeminiServer{response: func(string) (int, string) {
		return http.StatusNotFound, `{"error": {"code": 404, "message": "model not found", "status": "NOT_FOUND"}}`
	}}
	gen := newTestGemini(t, fake)

	if _, err := gen.GenerateText(context.Background(), "gemini-pro", "analyze"); err == nil {
		t.Fatal("GenerateText() error = nil, want API error")
	}
}

func TestGeminiService_ResolverFallsBackAcrossModels(t *testing.T) {
	fake := &fakeGeminiServer{response: func(path string) (int, string) {
		if strings.Contains(path, "gemini-2.0-flash:") {
			return http.StatusNotFound, `{"error": {"code": 404, "message": "model retired", "status": "NOT_FOUND"}}`
		}
		return http.StatusOK, textResponse("Result:\n" + `{"overallScore": 70, "aiAnalysis": "Looks fine."}`)
	}}
	gen := newTestGemini(t, fake)

	resolver := NewAnalysisResolver(gen, []string{"gemini-2.0-flash", "gemini-2.5-flash", "gemini-pro"}, 5*time.Second)
	got := resolver.Resolve(context.Background(), "resume.pdf")

	if got.OverallScore != 70 || got.ATSScore != 65 || got.AIAnalysis != "Looks fine." {
		t.Errorf("Resolve() = %+v", got)
	}
	if len(fake.paths) != 2 {
		t.Errorf("upstream calls = %v, want 2", fake.paths)
	}
}

func TestNewLimiter(t *testing.T) {
	tests := []struct {
		name      string
		qps       float64
		wantBurst int
	}{
		{name: "unlimited", qps: 0, wantBurst: 1},
		{name: "fractional", qps: 0.5, wantBurst: 1},
		{name: "several per second", qps: 3, wantBurst: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newLimiter(tt.qps).Burst(); got != tt.wantBurst {
				t.Errorf("Burst() = %d, want %d", got, tt.wantBurst)
			}
		})
	}
}
