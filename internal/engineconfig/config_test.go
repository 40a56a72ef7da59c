package engineconfig

import (
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestDefaultsAreSetWithoutCallingSetup(t *testing.T) {
	assert.True(t, Settings.Search.UseTT)
	assert.True(t, Settings.Search.UseKillers)
	assert.Equal(t, 64, Settings.Search.TTSizeMB)
	assert.Equal(t, 64, Settings.Search.MaxDepth)
	assert.Equal(t, 64, Settings.Search.MaxPly)
}

func TestSetupFallsBackToDefaultsWhenFileMissing(t *testing.T) {
	Setup("/nonexistent/corvid.toml")
	assert.True(t, Settings.Search.UseTT)
}

func TestLogLevelParsesValidLevel(t *testing.T) {
	Settings.Log.Level = "DEBUG"
	assert.Equal(t, logging.DEBUG, LogLevel())
}

func TestLogLevelFallsBackOnGarbage(t *testing.T) {
	Settings.Log.Level = "not-a-level"
	assert.Equal(t, logging.INFO, LogLevel())
}
