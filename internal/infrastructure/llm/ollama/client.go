package ollama

import (
	"context"
	"encoding/base64"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jmittelstaedt/faxsort/internal/infrastructure/resilience"
)

type Config struct {
	BaseURL string
	Model   string

	// Timeout bounds a single chat call. Local vision inference on CPU can
	// legitimately take minutes.
	Timeout time.Duration

	// KeepAlive asks the server to unload the model shortly after the call,
	// so cross-call model state is not reused.
	KeepAlive string

	// Temperature biases toward deterministic extraction over completion.
	Temperature float64
	NumCtx      int
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:11434"
	}
	if c.Timeout <= 0 {
		c.Timeout = 180 * time.Second
	}
	if c.KeepAlive == "" {
		c.KeepAlive = "5s"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.1
	}
	if c.NumCtx <= 0 {
		c.NumCtx = 4096 // enough for image tokens plus the analysis
	}
	return c
}

// Client talks to an Ollama chat endpoint with vision-capable models.
type Client struct {
	baseURL    string
	cfg        Config
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(cfg Config, executor *resilience.Executor) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		executor:   executor,
	}
}

type chatMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type chatRequest struct {
	Model     string         `json:"model"`
	Messages  []chatMessage  `json:"messages"`
	Stream    bool           `json:"stream"`
	Options   map[string]any `json:"options"`
	KeepAlive string         `json:"keep_alive"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// AnalyzeImage sends one PNG page image to the vision model and returns the
// raw assistant text. Each call carries a fresh correlation id in both
// prompts so the model treats it as independent of any previous document.
func (c *Client) AnalyzeImage(ctx context.Context, pngImage []byte, ownIdentity string) (string, error) {
	requestID := newCorrelationID()
	payload := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: buildSystemPrompt(requestID, ownIdentity),
			},
			{
				Role:    "user",
				Content: buildUserPrompt(requestID, ownIdentity),
				Images:  []string{base64.StdEncoding.EncodeToString(pngImage)},
			},
		},
		Stream: false,
		Options: map[string]any{
			"temperature": c.cfg.Temperature,
			"num_ctx":     c.cfg.NumCtx,
		},
		KeepAlive: c.cfg.KeepAlive,
	}

	var response chatResponse
	err := c.execute(ctx, "chat", func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/api/chat", payload, &response, "chat")
	})
	if err != nil {
		return "", wrapTemporaryIfNeeded("chat", err)
	}
	return strings.TrimSpace(response.Message.Content), nil
}

// ListModels returns the model identifiers the endpoint serves, sorted.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	var response struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := c.getJSON(ctx, "/api/tags", &response, "tags"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(response.Models))
	for _, m := range response.Models {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (c *Client) execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	if c.executor == nil {
		return fn(ctx)
	}
	return c.executor.Execute(ctx, operation, fn, classifyTransportError)
}

func newCorrelationID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
