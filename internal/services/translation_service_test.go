package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
)

func TestTranslationService_Translate(t *testing.T) {
	stub := &stubTranslator{}
	env := newTestEnv(t, withTranslator(stub))
	ctx := context.Background()

	resp, err := env.services.Translation().Translate(ctx, &TranslateRequest{Text: "  Good morning ", Source: "en", Target: "de"})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if resp.Target.Lang != "de" || resp.Source.Lang != "en" {
		t.Errorf("langs = %s -> %s", resp.Source.Lang, resp.Target.Lang)
	}
	if resp.Source.Text != "Good morning" || resp.Target.Text != "[de] Good morning" {
		t.Errorf("texts = %q -> %q", resp.Source.Text, resp.Target.Text)
	}
	if resp.Provider != "MyMemory" {
		t.Errorf("provider = %q", resp.Provider)
	}
}

func TestTranslationService_Validation(t *testing.T) {
	stub := &stubTranslator{}
	env := newTestEnv(t, withTranslator(stub))
	ctx := context.Background()

	tests := []struct {
		name  string
		req   TranslateRequest
		field string
	}{
		{name: "missing text", req: TranslateRequest{Text: "   ", Source: "en", Target: "de"}, field: "q"},
		{name: "bad code", req: TranslateRequest{Text: "hi", Source: "english", Target: "de"}, field: "source"},
		{name: "same language", req: TranslateRequest{Text: "hi", Source: "EN", Target: "en"}, field: "target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.services.Translation().Translate(ctx, &tt.req)
			wantFieldError(t, err, tt.field)
		})
	}

	if stub.calls != 0 {
		t.Errorf("provider called %d times for invalid input", stub.calls)
	}
}

func TestTranslationService_UpstreamError(t *testing.T) {
	upstream := &repositories.UpstreamError{Provider: "MyMemory", StatusCode: http.StatusTooManyRequests, Message: "QUOTA EXCEEDED"}
	env := newTestEnv(t, withTranslator(&stubTranslator{err: upstream}))

	_, err := env.services.Translation().Translate(context.Background(), &TranslateRequest{Text: "hi", Source: "en", Target: "fr"})

	var got *repositories.UpstreamError
	if !errors.As(err, &got) || got.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("Translate() error = %v, want the upstream error", err)
	}
}
