package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiClientAsk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-2.5-flash:generateContent" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "secret" {
			t.Fatalf("expected api key header, got %q", got)
		}
		if r.URL.RawQuery != "" {
			t.Fatalf("expected no query string, got %q", r.URL.RawQuery)
		}
		var payload struct {
			SystemInstruction geminiContent   `json:"systemInstruction"`
			Contents          []geminiContent `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if len(payload.SystemInstruction.Parts) != 1 || payload.SystemInstruction.Parts[0].Text != SystemInstruction {
			t.Fatalf("unexpected system instruction: %+v", payload.SystemInstruction)
		}
		if len(payload.Contents) != 1 || payload.Contents[0].Role != "user" {
			t.Fatalf("unexpected contents: %+v", payload.Contents)
		}
		if payload.Contents[0].Parts[0].Text != "What is CMPD?" {
			t.Fatalf("unexpected question: %s", payload.Contents[0].Parts[0].Text)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Compound "},{"text":"interest mode."}]}}]}`))
	}))
	defer server.Close()

	client, err := New(Config{Provider: "gemini", Endpoint: server.URL + "/", APIKey: "secret", HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.Name() != "Gemini (gemini-2.5-flash)" {
		t.Fatalf("unexpected name: %s", client.Name())
	}
	answer, err := client.Ask(context.Background(), "What is CMPD?")
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if answer != "Compound interest mode." {
		t.Fatalf("unexpected answer: %q", answer)
	}
}

func TestGeminiClientRequiresKey(t *testing.T) {
	client, err := New(Config{})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Ask(context.Background(), "hello")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected missing key error, got %v", err)
	}
	if err.Error() != "API key is not set" {
		t.Fatalf("unexpected message: %s", err)
	}
}

func TestGeminiClientNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := &geminiClient{apiKey: "k", model: "m", base: server.URL, client: server.Client()}
	if _, err := client.Ask(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestGeminiClientTransportErrorOmitsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client, err := New(Config{Provider: ProviderGemini, APIKey: "SECRET-KEY-123", Endpoint: endpoint})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Ask(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected connection error")
	}
	if strings.Contains(err.Error(), "SECRET-KEY-123") {
		t.Fatalf("api key leaked in error text: %v", err)
	}
}
