package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("MIDTRANS_SERVER_KEY", "SB-Mid-server-test")
		t.Setenv("MIDTRANS_SANDBOX", "true")
		t.Setenv("ADMIN_WHATSAPP", "6285643848251")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "SB-Mid-server-test", cfg.MidtransServerKey)
		assert.True(t, cfg.MidtransSandbox)
		assert.Equal(t, "6285643848251", cfg.AdminWhatsApp)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("REDIS_ADDR", "")
		t.Setenv("PROOF_UPLOAD_DIR", "")

		cfg := LoadConfig()
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, "./uploads/donation_proofs", cfg.ProofUploadDir)
	})
}
