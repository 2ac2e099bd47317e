// Package gemini is a minimal client for the Gemini generateContent API,
// scoped to audio transcription requests.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const transcribePrompt = `Generate a transcript of the speech. Do not include any other text.
Respond with a single JSON object: {"text": "<transcript>", "language": "<ISO 639-1 code of the spoken language>"}.`

const translateInstruction = `If the speech is not in English, translate the transcript to grammatically correct English.`

// Client talks to the Gemini transcription endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Request describes one transcription call.
type Request struct {
	Audio     []byte
	MIMEType  string
	Model     string
	APIKey    string
	Language  string // optional hint for the spoken language
	Translate bool   // translate non-English speech to English
}

// Result is a decoded transcription response.
type Result struct {
	Text     string
	Language string
}

// RequestError reports a request the client rejected before sending it.
// Rotating credentials or models cannot correct it.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string { return e.Reason }

// InvalidRequest marks the error as not rotation-correctable.
func (e *RequestError) InvalidRequest() bool { return true }

// StatusError is a typed provider error carrying the HTTP status and the
// provider-reported status string, used upstream to classify failures.
type StatusError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini API returned status %d (%s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini API returned status %d: %s", e.StatusCode, e.Message)
}

// HTTPStatus returns the HTTP status code of the failed request.
func (e *StatusError) HTTPStatus() int { return e.StatusCode }

// ProviderStatus returns the provider-reported status string, such as
// RESOURCE_EXHAUSTED or INVALID_ARGUMENT.
func (e *StatusError) ProviderStatus() string { return e.Status }

// NewClient creates a Gemini client with a request timeout suited to
// uploading short audio clips.
func NewClient() *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"response_mime_type,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// transcriptPayload is the JSON object the prompt asks the model to emit.
type transcriptPayload struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Transcribe sends the audio to the selected model and decodes the
// transcript. Non-2xx responses come back as *StatusError.
func (c *Client) Transcribe(ctx context.Context, req Request) (*Result, error) {
	if req.APIKey == "" {
		return nil, &RequestError{Reason: "gemini API key is required"}
	}
	if req.Model == "" {
		return nil, &RequestError{Reason: "gemini model is required"}
	}
	if len(req.Audio) == 0 {
		return nil, &RequestError{Reason: "audio payload is empty"}
	}

	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = "audio/wav"
	}

	prompt := transcribePrompt
	if req.Translate {
		prompt += "\n" + translateInstruction
	}
	if req.Language != "" {
		prompt += fmt.Sprintf("\nThe speaker is most likely speaking %s.", req.Language)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MIMEType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(req.Audio),
				}},
			},
		}},
		GenerationConfig: &generationConfig{ResponseMIMEType: "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", req.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			statusErr.Status = apiErr.Error.Status
			statusErr.Message = apiErr.Error.Message
		} else {
			statusErr.Message = strings.TrimSpace(string(respBody))
		}
		return nil, statusErr
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(result.Candidates) == 0 {
		return nil, fmt.Errorf("gemini API returned no candidates")
	}

	var text strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}

	return decodeTranscript(text.String()), nil
}

// decodeTranscript parses the model's JSON payload, falling back to the
// raw text when the model ignored the response format.
func decodeTranscript(raw string) *Result {
	raw = strings.TrimSpace(raw)

	var payload transcriptPayload
	if err := json.Unmarshal([]byte(raw), &payload); err == nil && payload.Text != "" {
		return &Result{
			Text:     strings.TrimSpace(payload.Text),
			Language: strings.ToLower(strings.TrimSpace(payload.Language)),
		}
	}

	return &Result{Text: raw}
}
