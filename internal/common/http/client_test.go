package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_URL(t *testing.T) {
	tests := []struct {
		base, endpoint, want string
	}{
		{"", "/meta", "/meta"},
		{"http://backend:5000", "/meta", "http://backend:5000/meta"},
		{"http://backend:5000/", "meta", "http://backend:5000/meta"},
		{"http://backend:5000", "https://other/check", "https://other/check"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewClient(tt.base, time.Second).URL(tt.endpoint))
	}
}

func TestClient_PostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(90), body["N"])

		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid input"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	resp, err := client.PostJSON(context.Background(), "/api/predict_crop", map[string]interface{}{"N": 90})
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out map[string]string
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, "invalid input", out["error"])
}

func TestClient_GetJSON_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, 50*time.Millisecond)
	_, err := client.GetJSON(context.Background(), "/meta")
	assert.Error(t, err)
}

func TestResponse_DecodeInvalid(t *testing.T) {
	resp := &Response{StatusCode: 200, Body: []byte("<html>")}
	var out map[string]interface{}
	assert.Error(t, resp.Decode(&out))
}
