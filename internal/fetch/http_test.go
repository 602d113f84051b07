package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("Accept-Language"), "de-DE")
		w.Write([]byte("<html>hello</html>"))
	}))
	defer srv.Close()

	body, err := NewClient(0).FetchText(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "<html>hello</html>", body)
}

func TestFetchText_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient(0).FetchText(context.Background(), srv.URL, nil)
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "status", fe.Kind)
	assert.Equal(t, http.StatusForbidden, fe.Status)
}

func TestFetchText_TimeoutKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewClient(20 * time.Millisecond).FetchText(context.Background(), srv.URL, nil)
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "timeout", fe.Kind)
}

func TestFetchJSON_PostAndDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "engineer", req["searchText"])

		json.NewEncoder(w).Encode(map[string]any{"total": 42})
	}))
	defer srv.Close()

	var out struct {
		Total int `json:"total"`
	}
	err := NewClient(0).FetchJSON(context.Background(), http.MethodPost, srv.URL,
		map[string]string{"searchText": "engineer"}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, 42, out.Total)
}

func TestFetchJSON_MalformedBodyIsNetworkKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<!doctype html>not json"))
	}))
	defer srv.Close()

	var out map[string]any
	err := NewClient(0).FetchJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, &out)
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "network", fe.Kind)
}

func TestFetchText_HeaderOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	_, err := NewClient(0).FetchText(context.Background(), srv.URL, map[string]string{
		"Accept": "application/json",
	})
	require.NoError(t, err)
}
