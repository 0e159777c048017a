package embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-3-small", req.Model)
		assert.Equal(t, "hello", req.Input)

		_ = json.NewEncoder(w).Encode(embeddingResponse{
			Data: []struct {
				Embedding []float32 `json:"embedding"`
			}{{Embedding: []float32{0.1, 0.2, 0.3}}},
		})
	}))
	defer srv.Close()

	client, err := NewHTTPClient(HTTPConfig{
		Provider:  ProviderOpenAI,
		Model:     "text-embedding-3-small",
		BaseURL:   srv.URL,
		Dimension: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, client.Dimension())

	vec, err := client.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestHTTPClient_Embed_FatalStatusDoesNotRetry(t *testing.T) {
	attempts := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(HTTPConfig{Provider: ProviderOpenAI, Model: "m", BaseURL: srv.URL, Dimension: 3})
	require.NoError(t, err)

	_, err = client.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestNewHTTPClient_RequiresBaseURLForUnknownDefault(t *testing.T) {
	_, err := NewHTTPClient(HTTPConfig{Provider: ProviderAzure, Model: "m"})
	assert.Error(t, err)
}
