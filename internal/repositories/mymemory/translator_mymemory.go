package mymemory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
)

const ProviderName = "MyMemory"

// Config holds the settings for the MyMemory client
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Email raises the anonymous daily quota when set.
	Email string
}

type TranslatorMyMemory struct {
	baseURL    string
	email      string
	httpClient *http.Client
}

func NewTranslatorMyMemory(config Config) repositories.TranslationProvider {
	return &TranslatorMyMemory{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		email:      config.Email,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

type apiResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus  flexibleStatus `json:"responseStatus"`
	ResponseDetails string         `json:"responseDetails"`
}

// flexibleStatus accepts the status as either a number or a quoted number.
type flexibleStatus int

func (s *flexibleStatus) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), "\"")
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid responseStatus %q: %w", raw, err)
	}
	*s = flexibleStatus(n)
	return nil
}

func (t *TranslatorMyMemory) Translate(ctx context.Context, text, source, target string) (*repositories.Translation, error) {
	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", source+"|"+target)
	if t.email != "" {
		params.Set("de", t.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/get?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build translation request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		message := "Translation service unavailable"
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			message = "Translation service timed out"
		}
		return nil, &repositories.UpstreamError{Provider: ProviderName, Message: message}
	}
	defer resp.Body.Close()

	var payload apiResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

	if resp.StatusCode >= http.StatusBadRequest {
		message := payload.ResponseDetails
		if decodeErr != nil || message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &repositories.UpstreamError{Provider: ProviderName, StatusCode: resp.StatusCode, Message: message}
	}
	if decodeErr != nil {
		return nil, &repositories.UpstreamError{Provider: ProviderName, Message: "Invalid response from translation service"}
	}

	// the API reports quota and language errors in the body with HTTP 200
	if status := int(payload.ResponseStatus); status != 0 && status != http.StatusOK {
		message := payload.ResponseDetails
		if message == "" {
			message = payload.ResponseData.TranslatedText
		}
		code := 0
		if status >= 400 && status <= 599 {
			code = status
		}
		return nil, &repositories.UpstreamError{Provider: ProviderName, StatusCode: code, Message: message}
	}

	text = strings.TrimSpace(payload.ResponseData.TranslatedText)
	if text == "" {
		return nil, &repositories.UpstreamError{Provider: ProviderName, Message: "Empty response from translation service"}
	}

	return &repositories.Translation{
		Text:     text,
		Provider: ProviderName,
	}, nil
}

func isTimeout(err error) bool {
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}
