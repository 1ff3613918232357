package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication(t *testing.T) {
	// Save original environment
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i, c := range env {
				if c == '=' {
					key := env[:i]
					value := env[i+1:]
					if key != "" {
						_ = os.Setenv(key, value) // Ignore error in cleanup
					}
					break
				}
			}
		}
	}()

	t.Run("MissingRequiredConfig", func(t *testing.T) {
		// Clear environment to trigger config error
		os.Clearenv()

		app, err := NewApplication()
		assert.Error(t, err)
		assert.Nil(t, app)
	})

	t.Run("ValidConfiguration", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("EMAIL_SMTP_USERNAME", "test-username"))
		require.NoError(t, os.Setenv("EMAIL_SMTP_PASSWORD", "test-password"))

		// SQLite in-memory keeps the test self-contained
		require.NoError(t, os.Setenv("DB_DRIVER", "sqlite"))
		require.NoError(t, os.Setenv("DB_PATH", ":memory:"))

		app, err := NewApplication()
		require.NoError(t, err)
		require.NotNil(t, app)
		defer func() {
			assert.NoError(t, app.Shutdown())
		}()

		assert.Equal(t, "memory", app.Config().Cache.Type)
		assert.NotNil(t, app.Config())
	})
}
