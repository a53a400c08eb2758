package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaClientAsk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		var payload struct {
			Model  string `json:"model"`
			System string `json:"system"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload.Model != "qwen3-vl:8b" {
			t.Fatalf("expected model qwen3-vl:8b, got %s", payload.Model)
		}
		if payload.System != SystemInstruction {
			t.Fatalf("unexpected system prompt: %s", payload.System)
		}
		if payload.Prompt != "How do I clear memory?" {
			t.Fatalf("unexpected prompt: %s", payload.Prompt)
		}
		if payload.Stream {
			t.Fatal("expected streaming to be disabled")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":"Press SHIFT then AC.","done":true}`))
	}))
	defer server.Close()

	client := &ollamaClient{
		host:   server.URL,
		model:  "qwen3-vl:8b",
		client: server.Client(),
	}

	result, err := client.Ask(context.Background(), "How do I clear memory?")
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if result != "Press SHIFT then AC." {
		t.Fatalf("unexpected answer: %s", result)
	}
}

func TestOllamaClientAskIncludesManualExcerpt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if !strings.Contains(payload.Prompt, "Amortization mode computes interest portions.") {
			t.Fatalf("prompt missing manual excerpt: %s", payload.Prompt)
		}
		if strings.Contains(payload.Prompt, "Batteries") {
			t.Fatalf("prompt carried unrelated manual text: %s", payload.Prompt)
		}
		if !strings.HasSuffix(payload.Prompt, "Question: What does amortization mode show?") {
			t.Fatalf("prompt missing question: %s", payload.Prompt)
		}
		w.Write([]byte(`{"response":"Interest and principal.","done":true}`))
	}))
	defer server.Close()

	client := &ollamaClient{
		host:   server.URL,
		model:  "m",
		manual: "Batteries last two years. Amortization mode computes interest portions.",
		client: server.Client(),
	}
	if _, err := client.Ask(context.Background(), "What does amortization mode show?"); err != nil {
		t.Fatalf("ask failed: %v", err)
	}
}

func TestOllamaClientSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := &ollamaClient{host: server.URL, model: "missing", client: server.Client()}
	_, err := client.Ask(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "model not found") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOllamaClientRejectsEmptyQuestion(t *testing.T) {
	client := &ollamaClient{host: "http://127.0.0.1:0", model: "m", client: http.DefaultClient}
	if _, err := client.Ask(context.Background(), "   "); err != errEmptyQuestion {
		t.Fatalf("expected empty question error, got %v", err)
	}
}
