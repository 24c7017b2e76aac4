package repositories

import (
	"context"
	"fmt"
)

// Translation is a provider's answer for one text.
type Translation struct {
	Text     string
	Provider string
}

// TranslationProvider calls an external machine translation service.
type TranslationProvider interface {
	Translate(ctx context.Context, text, source, target string) (*Translation, error)
}

// UpstreamError carries a provider failure as the provider reported it.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
}
