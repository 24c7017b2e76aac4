package mymemory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
)

func newTestTranslator(t *testing.T, handler http.HandlerFunc) repositories.TranslationProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewTranslatorMyMemory(Config{BaseURL: server.URL, Timeout: time.Second, Email: "ops@example.com"})
}

func TestTranslate(t *testing.T) {
	translator := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get" {
			t.Errorf("path = %q, want /get", r.URL.Path)
		}
		if got := r.URL.Query().Get("langpair"); got != "en|de" {
			t.Errorf("langpair = %q, want en|de", got)
		}
		if got := r.URL.Query().Get("de"); got != "ops@example.com" {
			t.Errorf("de = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responseData":{"translatedText":"Hallo Welt"},"responseStatus":200}`))
	})

	result, err := translator.Translate(context.Background(), "Hello world", "en", "de")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.Text != "Hallo Welt" || result.Provider != ProviderName {
		t.Errorf("Translate() = %+v", result)
	}
}

func TestTranslateErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "quota in body",
			status:     http.StatusOK,
			body:       `{"responseData":{"translatedText":""},"responseStatus":"429","responseDetails":"DAILY QUOTA EXCEEDED"}`,
			wantStatus: http.StatusTooManyRequests,
			wantMsg:    "DAILY QUOTA EXCEEDED",
		},
		{
			name:       "http error",
			status:     http.StatusServiceUnavailable,
			body:       `not json`,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "Service Unavailable",
		},
		{
			name:       "empty translation",
			status:     http.StatusOK,
			body:       `{"responseData":{"translatedText":"  "},"responseStatus":200}`,
			wantStatus: 0,
			wantMsg:    "Empty response from translation service",
		},
		{
			name:       "garbage body",
			status:     http.StatusOK,
			body:       `<html>`,
			wantStatus: 0,
			wantMsg:    "Invalid response from translation service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translator := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := translator.Translate(context.Background(), "hi", "en", "de")
			var upstream *repositories.UpstreamError
			if !errors.As(err, &upstream) {
				t.Fatalf("Translate() error = %v, want UpstreamError", err)
			}
			if upstream.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", upstream.StatusCode, tt.wantStatus)
			}
			if upstream.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", upstream.Message, tt.wantMsg)
			}
		})
	}
}

func TestTranslateTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	translator := NewTranslatorMyMemory(Config{BaseURL: server.URL, Timeout: 20 * time.Millisecond})
	_, err := translator.Translate(context.Background(), "hi", "en", "de")

	var upstream *repositories.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Translate() error = %v, want UpstreamError", err)
	}
	if upstream.Message != "Translation service timed out" {
		t.Errorf("Message = %q", upstream.Message)
	}
}
