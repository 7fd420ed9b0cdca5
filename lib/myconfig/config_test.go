package myconfig

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		unset(t, "PORT", "GOOGLE_CLOUD_PROJECT", "SALE_BACKEND_URL", "SMTP_PORT")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "http://localhost:8080", cfg.SaleBackendURL)
		assert.Equal(t, 587, cfg.SMTP.Port)
		assert.False(t, cfg.RunsInCloud())
	})

	t.Run("From environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("GOOGLE_CLOUD_PROJECT", "my-shop")
		t.Setenv("SALE_BACKEND_URL", "https://backoffice.example.com")
		t.Setenv("SMTP_HOST", "smtp.example.com")
		t.Setenv("SMTP_PORT", "2525")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "https://backoffice.example.com", cfg.SaleBackendURL)
		assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
		assert.Equal(t, 2525, cfg.SMTP.Port)
		assert.True(t, cfg.RunsInCloud())
	})

	t.Run("Invalid port number", func(t *testing.T) {
		t.Setenv("SMTP_PORT", "not-a-number")

		_, err := Load()
		assert.Error(t, err)
	})
}

// unset removes the variables for the duration of the test
func unset(t *testing.T, keys ...string) {
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
