package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
	"google.golang.org/genai"
)

type capturedRequest struct {
	path   string
	apiKey string
	body   map[string]any
}

func newGeminiServer(t *testing.T, status int, respBody string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.path = r.URL.Path
			captured.apiKey = r.Header.Get("x-goog-api-key")
			bodyBytes, err := io.ReadAll(r.Body)
			if err != nil {
				t.Errorf("read request body: %v", err)
			}
			if err := json.Unmarshal(bodyBytes, &captured.body); err != nil {
				t.Errorf("unmarshal request body: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientGenerateTextRequest(t *testing.T) {
	respBody := `{"candidates":[{"content":{"role":"model","parts":[{"text":"Stay hydrated. "},{"text":"Follow your prescription."}]}}]}`
	var captured capturedRequest
	srv := newGeminiServer(t, http.StatusOK, respBody, &captured)

	client, err := NewClient("test-key",
		WithBaseURL(srv.URL),
		WithModel("gemini-test"),
		WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	temp := 0.7
	text, err := client.GenerateText(context.Background(), "tip for Paracetamol", GenerateOptions{MaxOutputTokens: 100, Temperature: &temp})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if captured.path != "/v1beta/models/gemini-test:generateContent" {
		t.Fatalf("unexpected path %q", captured.path)
	}
	if captured.apiKey != "test-key" {
		t.Fatalf("api key header missing")
	}

	contents, _ := captured.body["contents"].([]any)
	if len(contents) != 1 {
		t.Fatalf("expected one content entry, got %v", captured.body["contents"])
	}
	parts, _ := contents[0].(map[string]any)["parts"].([]any)
	if len(parts) != 1 || parts[0].(map[string]any)["text"] != "tip for Paracetamol" {
		t.Fatalf("unexpected parts %v", parts)
	}

	genCfg, ok := captured.body["generationConfig"].(map[string]any)
	if !ok {
		t.Fatalf("expected generationConfig, got %v", captured.body)
	}
	if genCfg["maxOutputTokens"] != float64(100) {
		t.Fatalf("expected 100 tokens, got %v", genCfg["maxOutputTokens"])
	}
	if temp, ok := genCfg["temperature"].(float64); !ok || temp < 0.69 || temp > 0.71 {
		t.Fatalf("expected temperature 0.7, got %v", genCfg["temperature"])
	}
	if text != "Stay hydrated. Follow your prescription." {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestClientGenerateTextOmitsEmptyConfig(t *testing.T) {
	var captured capturedRequest
	srv := newGeminiServer(t, http.StatusOK, `{"candidates":[]}`, &captured)

	client, err := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	text, err := client.GenerateText(context.Background(), "alternatives", GenerateOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text without candidates, got %q", text)
	}
	if _, ok := captured.body["generationConfig"]; ok {
		t.Fatalf("generationConfig should be omitted when unset")
	}
}

func TestClientGenerateTextNonOK(t *testing.T) {
	srv := newGeminiServer(t, http.StatusTooManyRequests,
		`{"error":{"code":429,"message":"quota exhausted","status":"RESOURCE_EXHAUSTED"}}`, nil)

	client, err := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.GenerateText(context.Background(), "prompt", GenerateOptions{})
	if err == nil {
		t.Fatalf("expected error for non-200 response")
	}
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected wrapped api error, got %v", errors.Unwrap(err))
	}
	if apiErr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", apiErr.Code)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("  "); err == nil {
		t.Fatalf("expected error for blank api key")
	}
	client, err := NewClient("k")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", client.Model())
	}
}

func TestClientRejectsBlankPrompt(t *testing.T) {
	client, err := NewClient("k")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.GenerateText(context.Background(), " ", GenerateOptions{}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
