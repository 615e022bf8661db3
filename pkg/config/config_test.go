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
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	t.Setenv("PORT", "")

	cfg, err := Load("kyc-api")
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, "kyc-api", cfg.Server.ServiceName)
	assert.Equal(t, 10, cfg.Server.MaxUploadMB)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.False(t, cfg.AWS.HasCredentials())
	assert.False(t, cfg.Aadhaar.IsConfigured())
	assert.Equal(t, 10*time.Second, cfg.Scoring.CallTimeout())
}

func TestLoad_CredentialPairs(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		secret string
		want   bool
	}{
		{"both present", "AKIA", "secret", true},
		{"key only", "AKIA", "", false},
		{"secret only", "", "secret", false},
		{"neither", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AWS_ACCESS_KEY_ID", tt.key)
			t.Setenv("AWS_SECRET_ACCESS_KEY", tt.secret)

			cfg, err := Load("kyc-api")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.AWS.HasCredentials())
		})
	}
}

func TestLoad_DirectCredentialsAreIndependent(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	t.Setenv("AWS_DIRECT_ACCESS_KEY_ID", "AKIA")
	t.Setenv("AWS_DIRECT_SECRET_ACCESS_KEY", "secret")

	cfg, err := Load("kyc-api")
	require.NoError(t, err)
	assert.False(t, cfg.AWS.HasCredentials())
	assert.True(t, cfg.AWSDirect.HasCredentials())
}

func TestLoad_RateLimitDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_VERIFY_LIMIT", "3")

	cfg, err := Load("kyc-api")
	require.NoError(t, err)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, 120, cfg.RateLimit.DefaultLimit)
	assert.Equal(t, 3, cfg.RateLimit.EndpointOverrides[VerifyRoute].Limit)
	assert.Equal(t, 2, cfg.RateLimit.EndpointOverrides[VerifyRoute].Burst)
}

func TestLoad_Secrets(t *testing.T) {
	t.Setenv("SECRETS_DIR", "/mnt/kyc")

	cfg, err := Load("kyc-api")
	require.NoError(t, err)
	assert.Equal(t, "/mnt/kyc", cfg.Secrets.Dir)
	assert.Equal(t, 5*time.Minute, cfg.Secrets.CacheTTL())
}

func TestLoad_RejectsNonPositiveUploadLimit(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "0")

	_, err := Load("kyc-api")
	assert.Error(t, err)
}

func TestServerConfig_MaxUploadBytes(t *testing.T) {
	c := ServerConfig{MaxUploadMB: 10}
	assert.Equal(t, int64(10*1024*1024), c.MaxUploadBytes())
}

func TestScoringConfig_CallTimeout(t *testing.T) {
	assert.Equal(t, 3*time.Second, (&ScoringConfig{ExternalCallTimeout: 3}).CallTimeout())
	assert.Equal(t, 10*time.Second, (&ScoringConfig{ExternalCallTimeout: -1}).CallTimeout())
}

func TestDefaultScoringPolicy_IsValid(t *testing.T) {
	p := DefaultScoringPolicy()
	require.NoError(t, p.Validate())
	assert.Equal(t, 0.40, p.Weights.Document)
	assert.Equal(t, 0.35, p.Weights.Biometric)
	assert.Equal(t, 0.25, p.Weights.Behavioral)
}

func TestLoadPolicy(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	t.Run("empty path returns defaults", func(t *testing.T) {
		p, err := LoadPolicy("")
		require.NoError(t, err)
		assert.Equal(t, DefaultScoringPolicy(), p)
	})

	t.Run("partial override keeps other defaults", func(t *testing.T) {
		path := write("partial.yaml", "recommendation:\n  approved: 92\n  monitoring: 70\n")
		p, err := LoadPolicy(path)
		require.NoError(t, err)
		assert.Equal(t, 92.0, p.Recommendation.Approved)
		assert.Equal(t, 70.0, p.Recommendation.Monitoring)
		assert.Equal(t, 0.40, p.Weights.Document)
	})

	t.Run("weights not totalling one are rejected", func(t *testing.T) {
		path := write("bad.yaml", "weights:\n  document: 0.5\n  biometric: 0.5\n  behavioral: 0.5\n")
		_, err := LoadPolicy(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must total 1.0")
	})

	t.Run("inverted recommendation limits are rejected", func(t *testing.T) {
		path := write("inverted.yaml", "recommendation:\n  approved: 70\n  monitoring: 80\n")
		_, err := LoadPolicy(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPolicy(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := write("broken.yaml", "weights: [1, 2\n")
		_, err := LoadPolicy(path)
		assert.Error(t, err)
	})
}
