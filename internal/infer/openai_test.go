package infer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeServer answers both the chat and the legacy completion endpoint
// and records which one was hit.
func fakeServer(t *testing.T, paths *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*paths = append(*paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/chat/completions":
			json.NewEncoder(w).Encode(map[string]any{
				"id":     "chatcmpl-1",
				"object": "chat.completion",
				"model":  "neko",
				"choices": []map[string]any{
					{"index": 0, "message": map[string]any{"role": "assistant", "content": "こんにちは"}},
				},
			})
		case "/completions":
			json.NewEncoder(w).Encode(map[string]any{
				"id":     "cmpl-1",
				"object": "text_completion",
				"model":  "neko",
				"choices": []map[string]any{
					{"index": 0, "text": " こんにちは "},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestOpenAIGenerateChat(t *testing.T) {
	var paths []string
	srv := fakeServer(t, &paths)
	defer srv.Close()

	e := NewOpenAIEngine(srv.URL, "", "neko")
	p := Params{MaxNewTokens: 64, TopP: 1.0, ChatTemplate: true}

	got, err := e.Generate(context.Background(), "Hello", p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "こんにちは" {
		t.Errorf("Generate = %q", got)
	}
	if len(paths) != 1 || paths[0] != "/chat/completions" {
		t.Errorf("paths = %v, want one call to /chat/completions", paths)
	}
}

func TestOpenAIGenerateRawPrompt(t *testing.T) {
	var paths []string
	srv := fakeServer(t, &paths)
	defer srv.Close()

	e := NewOpenAIEngine(srv.URL, "", "neko")
	p := Params{MaxNewTokens: 64, TopP: 1.0, ChatTemplate: false}

	got, err := e.Generate(context.Background(), "raw prompt", p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "こんにちは" {
		t.Errorf("Generate = %q (output should be whitespace-trimmed)", got)
	}
	if len(paths) != 1 || paths[0] != "/completions" {
		t.Errorf("paths = %v, want one call to /completions", paths)
	}
}

func TestOpenAIIsAvailable(t *testing.T) {
	if err := NewOpenAIEngine("", "", "m").IsAvailable(); err == nil {
		t.Error("expected error for missing base URL")
	}
	if err := NewOpenAIEngine("http://localhost:8080/v1", "", "m").IsAvailable(); err != nil {
		t.Errorf("IsAvailable failed: %v", err)
	}
}
