package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/carescene/carescene/internal/config"
	"github.com/carescene/carescene/internal/domain"
)

// OpenAIService is the HTTP client for the generation collaborator:
// image generation plus the chat-completions endpoint used by the LLM
// elicitor. Failures are mapped onto the three domain error kinds so
// callers can decide whether a retry makes sense.
type OpenAIService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	imageModel   string
	imageSize    string
	imageQuality string
}

func NewOpenAIService(cfg *config.Config) *OpenAIService {
	return &OpenAIService{
		apiKey:       cfg.OpenAIKey,
		baseURL:      strings.TrimSuffix(cfg.OpenAIURL, "/"),
		httpClient:   &http.Client{Timeout: config.RequestTimeout},
		imageModel:   cfg.ImageModel,
		imageSize:    cfg.ImageSize,
		imageQuality: cfg.ImageQuality,
	}
}

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateImage requests one image for the prompt and returns its URL.
// Error kinds: domain.ErrContentPolicy (policy rejection, do not retry),
// domain.ErrBadRequest (malformed request, do not retry),
// domain.ErrServiceUnavailable (transient, manual retry allowed).
func (s *OpenAIService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(imageRequest{
		Model:   s.imageModel,
		Prompt:  prompt,
		N:       config.ImagesPerRequest,
		Size:    s.imageSize,
		Quality: s.imageQuality,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrServiceUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, body)
	}

	var imgResp imageResponse
	if err := json.Unmarshal(body, &imgResp); err != nil {
		return "", fmt.Errorf("%w: parse response: %v", domain.ErrServiceUnavailable, err)
	}
	if len(imgResp.Data) == 0 || imgResp.Data[0].URL == "" {
		return "", fmt.Errorf("%w: empty image response", domain.ErrServiceUnavailable)
	}

	return imgResp.Data[0].URL, nil
}

// classifyStatus maps a non-200 response onto a domain error kind,
// keeping the upstream message for user-facing detail.
func classifyStatus(status int, body []byte) error {
	var apiErr apiError
	_ = json.Unmarshal(body, &apiErr)
	msg := apiErr.Error.Message
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch {
	case status == http.StatusTooManyRequests || status >= 500:
		return fmt.Errorf("%w: %s", domain.ErrServiceUnavailable, msg)
	case apiErr.Error.Code == "content_policy_violation" ||
		strings.Contains(strings.ToLower(msg), "content policy"):
		return fmt.Errorf("%w: %s", domain.ErrContentPolicy, msg)
	default:
		return fmt.Errorf("%w: %s", domain.ErrBadRequest, msg)
	}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat issues a completion request and returns the assistant message.
func (s *OpenAIService) Chat(ctx context.Context, model string, messages []ChatMessage) (string, error) {
	payload, err := json.Marshal(chatRequest{Model: model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, body)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty chat response")
	}
	return chatResp.Choices[0].Message.Content, nil
}
