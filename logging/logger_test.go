package logging

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitializeLogLevels(t *testing.T) {
	defer Initialize("verbose")

	levels := map[string]int{
		"silent":  LogLevelSilent,
		"error":   LogLevelError,
		"warn":    LogLevelWarning,
		"verbose": LogLevelVerbose,
		"bogus":   LogLevelVerbose,
	}

	for name, level := range levels {
		Initialize(name)
		assert.Equal(t, level, Level(), "log level %s", name)
	}
}

func TestWarningsAreQueued(t *testing.T) {
	Initialize("silent")
	defer Initialize("verbose")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			LogBuildWarning("Module", "version mismatch")
		}()
	}
	wg.Wait()

	assert.True(t, ShouldProceed())
	assert.Equal(t, 8, DisplayWarnings())
	assert.Equal(t, 0, DisplayWarnings())
}

func TestConfigErrorsStopProgress(t *testing.T) {
	Initialize("silent")
	defer Initialize("verbose")

	assert.True(t, ShouldProceed())
	LogConfigError("Manifest", "missing module name")
	assert.False(t, ShouldProceed())
}
