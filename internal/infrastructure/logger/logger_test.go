package logger

import (
	"testing"

	"mediforge/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		level     string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{name: "production json", env: "production", level: "warn", wantLevel: logrus.WarnLevel, wantJSON: true},
		{name: "development text", env: "development", level: "debug", wantLevel: logrus.DebugLevel},
		{name: "unknown level falls back", env: "development", level: "loud", wantLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				App: config.AppConfig{Env: tt.env},
				Log: config.LogConfig{Level: tt.level},
			}

			log := NewLogger(cfg)

			assert.Equal(t, tt.wantLevel, log.GetLevel())
			_, isJSON := log.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}
