// Package llm generates natural language commentary for deck analyses
// using a local Ollama instance, with template fallbacks when no model
// is available.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// OllamaConfig configures the Ollama client.
type OllamaConfig struct {
	// BaseURL is the Ollama API endpoint.
	BaseURL string

	// Model is the model name to use.
	Model string

	// RequestTimeout is the timeout for status requests.
	RequestTimeout time.Duration

	// InferenceTimeout is the timeout for generation requests.
	InferenceTimeout time.Duration
}

// DefaultOllamaConfig returns sensible defaults.
func DefaultOllamaConfig() *OllamaConfig {
	return &OllamaConfig{
		BaseURL:          "http://localhost:11434",
		Model:            "llama3.2",
		RequestTimeout:   10 * time.Second,
		InferenceTimeout: 120 * time.Second,
	}
}

// OllamaClient provides access to the Ollama API.
type OllamaClient struct {
	config     *OllamaConfig
	httpClient *http.Client

	mu         sync.RWMutex
	available  bool
	modelReady bool
	lastCheck  time.Time
}

// OllamaStatus reports whether Ollama is reachable and the model loaded.
type OllamaStatus struct {
	Available  bool   `json:"available"`
	Version    string `json:"version,omitempty"`
	ModelReady bool   `json:"model_ready"`
	ModelName  string `json:"model_name"`
	Error      string `json:"error,omitempty"`
}

// GenerateRequest is the request body for generation.
type GenerateRequest struct {
	Model   string           `json:"model"`
	Prompt  string           `json:"prompt"`
	System  string           `json:"system,omitempty"`
	Stream  bool             `json:"stream"`
	Options *GenerateOptions `json:"options,omitempty"`
}

// GenerateOptions are optional parameters for generation.
type GenerateOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// GenerateResponse is the response from generation.
type GenerateResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

type versionResponse struct {
	Version string `json:"version"`
}

type listModelsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewOllamaClient creates a new Ollama client.
func NewOllamaClient(config *OllamaConfig) *OllamaClient {
	if config == nil {
		config = DefaultOllamaConfig()
	}

	return &OllamaClient{
		config: config,
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
	}
}

// CheckAvailability checks whether Ollama is running and the configured
// model is loaded.
func (c *OllamaClient) CheckAvailability(ctx context.Context) *OllamaStatus {
	status := &OllamaStatus{
		ModelName: c.config.Model,
	}

	version, err := c.getVersion(ctx)
	if err != nil {
		status.Error = fmt.Sprintf("Ollama not available: %v", err)
		c.setAvailability(false, false)
		return status
	}

	status.Available = true
	status.Version = version

	models, err := c.listModels(ctx)
	if err != nil {
		status.Error = fmt.Sprintf("Failed to list models: %v", err)
		c.setAvailability(true, false)
		return status
	}

	base := strings.Split(c.config.Model, ":")[0]
	for _, name := range models {
		if strings.HasPrefix(name, base) {
			status.ModelReady = true
			break
		}
	}

	c.setAvailability(status.Available, status.ModelReady)
	return status
}

// IsAvailable returns whether Ollama is currently usable.
func (c *OllamaClient) IsAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.available && c.modelReady
}

// GenerateWithSystem generates text with a system prompt.
func (c *OllamaClient) GenerateWithSystem(ctx context.Context, system, prompt string, options *GenerateOptions) (*GenerateResponse, error) {
	if !c.IsAvailable() {
		status := c.CheckAvailability(ctx)
		if !status.Available || !status.ModelReady {
			return nil, fmt.Errorf("ollama not available: %s", status.Error)
		}
	}

	req := &GenerateRequest{
		Model:   c.config.Model,
		System:  system,
		Prompt:  prompt,
		Stream:  false,
		Options: options,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// Generation takes far longer than status checks.
	client := &http.Client{Timeout: c.config.InferenceTimeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generate request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("generate failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &genResp, nil
}

func (c *OllamaClient) getVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/version", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("version check failed with status %d", resp.StatusCode)
	}

	var version versionResponse
	if err := json.NewDecoder(resp.Body).Decode(&version); err != nil {
		return "", err
	}

	return version.Version, nil
}

func (c *OllamaClient) listModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list models failed with status %d", resp.StatusCode)
	}

	var models listModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(models.Models))
	for _, m := range models.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

func (c *OllamaClient) setAvailability(available, modelReady bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.available = available
	c.modelReady = modelReady
	c.lastCheck = time.Now()
}

// GetModel returns the configured model name.
func (c *OllamaClient) GetModel() string {
	return c.config.Model
}
