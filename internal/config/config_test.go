package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PAYMENT_FEE_RATE", "")
	t.Setenv("PAYMENT_MIN_AMOUNT", "")
	t.Setenv("PAYMENT_MAX_AMOUNT", "")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "0.15", cfg.Payments.FeeRate.String())
	assert.Equal(t, "0.5", cfg.Payments.MinAmount.String())
	assert.Equal(t, "999999.99", cfg.Payments.MaxAmount.String())
	assert.Equal(t, "usd", cfg.Payments.Currency)
	assert.Equal(t, 4*time.Second, cfg.Services.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Gateway.WebhookTolerance)
	assert.Equal(t, "payments", cfg.DynamoDB.PaymentsTable)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PAYMENT_FEE_RATE", "0.2")
	t.Setenv("PAYMENT_CURRENCY", " BRL ")
	t.Setenv("COLLABORATOR_TIMEOUT", "3s")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")
	t.Setenv("PAYMENTS_TABLE", "ledger")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.2", cfg.Payments.FeeRate.String())
	assert.Equal(t, "brl", cfg.Payments.Currency)
	assert.Equal(t, 3*time.Second, cfg.Services.Timeout)
	assert.True(t, cfg.Gateway.Mock)
	assert.Equal(t, "ledger", cfg.DynamoDB.PaymentsTable)
}

func TestLoad_ZeroFeeRate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PAYMENT_FEE_RATE", "0")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Payments.FeeRate.IsZero())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	content := "payments:\n  max_amount: \"5000\"\nservices:\n  enrollment_url: http://enroll.local\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Payments.MaxAmount.String())
	assert.Equal(t, "http://enroll.local", cfg.Services.EnrollmentURL)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("fee rate not a number", func(t *testing.T) {
		t.Setenv("PAYMENT_FEE_RATE", "abc")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("fee rate above one", func(t *testing.T) {
		t.Setenv("PAYMENT_FEE_RATE", "1.5")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("bounds inverted", func(t *testing.T) {
		t.Setenv("PAYMENT_MIN_AMOUNT", "10")
		t.Setenv("PAYMENT_MAX_AMOUNT", "5")
		_, err := Load("")
		assert.Error(t, err)
	})
}
