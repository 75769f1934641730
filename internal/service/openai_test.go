package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carescene/carescene/internal/config"
	"github.com/carescene/carescene/internal/domain"
)

func testClient(ts *httptest.Server) *OpenAIService {
	return NewOpenAIService(&config.Config{
		OpenAIKey:    "test-key",
		OpenAIURL:    ts.URL,
		ImageModel:   "dall-e-3",
		ImageSize:    "1024x1024",
		ImageQuality: "standard",
	})
}

func TestGenerateImageReturnsURL(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"url":"https://images.example.com/abc.png"}]}`))
	}))
	defer ts.Close()

	url, err := testClient(ts).GenerateImage(context.Background(), "a prompt")
	if err != nil {
		t.Fatalf("GenerateImage failed: %v", err)
	}
	if url != "https://images.example.com/abc.png" {
		t.Fatalf("url = %q", url)
	}
}

func TestGenerateImageErrorKinds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{
			name:   "content policy violation",
			status: http.StatusBadRequest,
			body:   `{"error":{"code":"content_policy_violation","message":"Your request was rejected by our safety system."}}`,
			want:   domain.ErrContentPolicy,
		},
		{
			name:   "plain bad request",
			status: http.StatusBadRequest,
			body:   `{"error":{"code":"invalid_size","message":"invalid size parameter"}}`,
			want:   domain.ErrBadRequest,
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"invalid api key"}}`,
			want:   domain.ErrBadRequest,
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"message":"rate limit"}}`,
			want:   domain.ErrServiceUnavailable,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   ``,
			want:   domain.ErrServiceUnavailable,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			_, err := testClient(ts).GenerateImage(context.Background(), "a prompt")
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestGenerateImageEmptyResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer ts.Close()

	_, err := testClient(ts).GenerateImage(context.Background(), "a prompt")
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("error = %v, want ErrServiceUnavailable", err)
	}
}

func TestChatReturnsAssistantMessage(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"hello there"}}]}`))
	}))
	defer ts.Close()

	got, err := testClient(ts).Chat(context.Background(), "gpt-4o-mini", []ChatMessage{
		{Role: "user", Content: "hi"},
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if got != "hello there" {
		t.Fatalf("content = %q", got)
	}
}
