package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Boardgames/internal/config"
	"Boardgames/internal/core/media"
)

func TestSetUpLogger(t *testing.T) {
	tests := []struct {
		env       string
		wantJSON  bool
		wantDebug bool
	}{
		{env: config.EnvLocal, wantJSON: false, wantDebug: true},
		{env: config.EnvDev, wantJSON: true, wantDebug: true},
		{env: config.EnvProd, wantJSON: true, wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			logger := setUpLogger(tt.env, &buf)

			assert.Equal(t, tt.wantDebug, logger.Enabled(context.Background(), slog.LevelDebug))

			logger.Info("hello")
			if tt.wantJSON {
				assert.Contains(t, buf.String(), `"msg":"hello"`)
			} else {
				assert.Contains(t, buf.String(), "msg=hello")
			}
		})
	}
}

func TestNewMediaService_LocalFallback(t *testing.T) {
	cfg := &config.Config{
		UploadsDir:   t.TempDir(),
		MediaTimeout: 0,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := newMediaService(cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &media.GuardedService{}, svc)

	asset, err := svc.Upload(context.Background(), bytes.NewBufferString("img"), "brass.png")
	require.NoError(t, err)
	assert.Contains(t, asset.URL, uploadsPrefix+"/")
	assert.NoError(t, svc.Destroy(context.Background(), asset.PublicID))
}

func TestOpenPostStore_Memory(t *testing.T) {
	cfg := &config.Config{StoreDriver: config.StoreMemory}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo, closeStore, err := openPostStore(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer closeStore()

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
