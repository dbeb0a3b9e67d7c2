package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/artefact/buzz-dashboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStorage_Retrieve(t *testing.T) {
	store := NewFSStorage(fstest.MapFS{
		"comments.json": &fstest.MapFile{Data: []byte(`[]`)},
	}, "embedded")

	data, err := store.Retrieve(context.Background(), "comments.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Equal(t, "embedded", store.Name())

	_, err = store.Retrieve(context.Background(), "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Retrieve(context.Background(), "../etc/passwd")
	assert.Error(t, err)
}

func TestFSStorage_CancelledContext(t *testing.T) {
	store := NewFSStorage(fstest.MapFS{}, "embedded")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Retrieve(ctx, "comments.json")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDirStorage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comments.json"), []byte(`[{"user":"Alice"}]`), 0644))

	store, err := NewDirStorage(dir)
	require.NoError(t, err)
	assert.Equal(t, "file", store.Name())

	data, err := store.Retrieve(context.Background(), "comments.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alice")

	_, err = NewDirStorage(filepath.Join(dir, "comments.json"))
	assert.Error(t, err)

	_, err = NewDirStorage(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

func TestHTTPStorage_Retrieve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/comments.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		case "/broken.json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	store, err := NewHTTPStorage(server.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, "http", store.Name())

	data, err := store.Retrieve(context.Background(), "/comments.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = store.Retrieve(context.Background(), "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Retrieve(context.Background(), "broken.json")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewHTTPStorage_RequiresBaseURL(t *testing.T) {
	_, err := NewHTTPStorage("")
	assert.Error(t, err)
}

func TestNewAzureStorage_Validation(t *testing.T) {
	_, err := NewAzureStorage("", "fixtures")
	assert.Error(t, err)

	_, err = NewAzureStorage("account", "")
	assert.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		cfg      config.Config
		expected string
		wantErr  bool
	}{
		{"Default is embedded", config.Config{}, "embedded", false},
		{"Embedded", config.Config{FixtureSource: "embedded"}, "embedded", false},
		{"Local directory", config.Config{FixtureSource: "file", FixtureDir: dir}, "file", false},
		{"HTTP", config.Config{FixtureSource: "http", FixtureBaseURL: "http://localhost:3000"}, "http", false},
		{"HTTP without base URL", config.Config{FixtureSource: "http"}, "", true},
		{"Missing directory", config.Config{FixtureSource: "file", FixtureDir: filepath.Join(dir, "nope")}, "", true},
		{"Unknown source", config.Config{FixtureSource: "ftp"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := FromConfig(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, store)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, store.Name())
		})
	}
}

func TestFromConfig_EmbeddedComments(t *testing.T) {
	store, err := FromConfig(&config.Config{})
	require.NoError(t, err)

	data, err := store.Retrieve(context.Background(), "comments.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alice")
}
