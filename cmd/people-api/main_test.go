package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLoggerLevels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		env      string
		debugOn  bool
		wantJSON bool
	}{
		{env: "dev", debugOn: true},
		{env: "", debugOn: true},
		{env: "staging", debugOn: true, wantJSON: true},
		{env: "prod", debugOn: false, wantJSON: true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			log := setupLogger(tt.env)
			assert.Equal(t, tt.debugOn, log.Enabled(ctx, slog.LevelDebug))
			assert.True(t, log.Enabled(ctx, slog.LevelInfo))

			_, isJSON := log.Handler().(*slog.JSONHandler)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}
