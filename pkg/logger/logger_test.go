package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewLevelByEnv(t *testing.T) {
	assert.True(t, New("development").Core().Enabled(zap.DebugLevel))
	assert.False(t, New("production").Core().Enabled(zap.DebugLevel))
	assert.True(t, New("production").Core().Enabled(zap.InfoLevel))
}
