package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ollamaServer(t *testing.T, modelName string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/version", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"version": "0.5.0"})
	})
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{{"name": modelName}},
		})
	})
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		_ = json.NewEncoder(w).Encode(GenerateResponse{
			Model:    req.Model,
			Response: "Generated text.",
			Done:     true,
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig(baseURL string) *OllamaConfig {
	config := DefaultOllamaConfig()
	config.BaseURL = baseURL
	return config
}

func TestCheckAvailability_ModelReady(t *testing.T) {
	server := ollamaServer(t, "llama3.2:latest")
	client := NewOllamaClient(testConfig(server.URL))

	status := client.CheckAvailability(context.Background())

	assert.True(t, status.Available)
	assert.Equal(t, "0.5.0", status.Version)
	assert.True(t, status.ModelReady, "model tag matches on base name")
	assert.True(t, client.IsAvailable())
}

func TestCheckAvailability_ModelMissing(t *testing.T) {
	server := ollamaServer(t, "mistral:latest")
	client := NewOllamaClient(testConfig(server.URL))

	status := client.CheckAvailability(context.Background())

	assert.True(t, status.Available)
	assert.False(t, status.ModelReady)
	assert.False(t, client.IsAvailable())
}

func TestCheckAvailability_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewOllamaClient(testConfig(server.URL))

	status := client.CheckAvailability(context.Background())

	assert.False(t, status.Available)
	assert.NotEmpty(t, status.Error)
}

func TestGetModel(t *testing.T) {
	client := NewOllamaClient(testConfig("http://localhost:11434"))

	assert.Equal(t, "llama3.2", client.GetModel())
}

func TestGenerateWithSystem(t *testing.T) {
	server := ollamaServer(t, "llama3.2:latest")
	client := NewOllamaClient(testConfig(server.URL))

	resp, err := client.GenerateWithSystem(context.Background(), "system", "prompt", nil)

	require.NoError(t, err)
	assert.Equal(t, "Generated text.", resp.Response)
	assert.True(t, resp.Done)
}

func TestGenerateWithSystem_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewOllamaClient(testConfig(server.URL))

	_, err := client.GenerateWithSystem(context.Background(), "system", "prompt", nil)

	assert.Error(t, err)
}
