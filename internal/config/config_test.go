package config_test

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"prompt-refiner/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points secret lookups at an empty directory and clears secret env vars.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := config.SecretsDir
	config.SecretsDir = dir
	t.Cleanup(func() { config.SecretsDir = prev })

	for _, name := range []string{"AI_API_KEY", "GEMINI_API_KEY", "JWT_SECRET", "PASSWORD_PEPPER", "DB_PASSWORD", "REDIS_PASSWORD", "AI_PROVIDER", "USER_STORE"} {
		// envconfig не подставляет default для заданной пустой переменной
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "gemini-key", cfg.AIAPIKey)
	assert.Equal(t, config.ProviderGemini, cfg.AIProvider)
	assert.Equal(t, config.StoreMemory, cfg.UserStore)
	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, 60*time.Second, cfg.AIRequestTimeout)
	assert.Equal(t, []string{"http://localhost:8000", "http://127.0.0.1:8000"}, cfg.GetAllowedOrigins())
	assert.Len(t, cfg.JWTSecret, 64, "ephemeral secret is 32 random bytes hex-encoded")
}

func TestLoadConfig_MissingAPIKeyFails(t *testing.T) {
	isolate(t)

	_, err := config.LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_API_KEY")
}

func TestLoadConfig_OllamaNeedsNoKey(t *testing.T) {
	isolate(t)
	t.Setenv("AI_PROVIDER", "ollama")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.AIAPIKey)
}

func TestLoadConfig_AnthropicNeedsKey(t *testing.T) {
	isolate(t)
	t.Setenv("AI_PROVIDER", "anthropic")

	_, err := config.LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic")

	t.Setenv("AI_API_KEY", "sk-ant")
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.ProviderAnthropic, cfg.AIProvider)
	assert.Equal(t, 256, cfg.AnalysisCacheSize)
	assert.Equal(t, 10*time.Minute, cfg.AnalysisCacheTTL)
}

func TestLoadConfig_UnknownStoreFails(t *testing.T) {
	isolate(t)
	t.Setenv("AI_API_KEY", "k")
	t.Setenv("USER_STORE", "mongo")

	_, err := config.LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "USER_STORE")
}

func TestLoadConfig_SecretsFromFiles(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ai_api_key"), []byte("file-key\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("file-jwt"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "password_pepper"), []byte("pepper"), 0o600))

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.AIAPIKey)
	assert.Equal(t, "file-jwt", cfg.JWTSecret)
	assert.Equal(t, "pepper", cfg.PasswordPepper)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	isolate(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SERVER_PORT=9090\n"), 0o600))
	t.Setenv("AI_API_KEY", "k")
	// godotenv не перезаписывает уже заданные переменные
	t.Setenv("SERVER_PORT", "")
	require.NoError(t, os.Unsetenv("SERVER_PORT"))

	cfg, err := config.LoadConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
}

func TestReadSecret_EnvWinsOverFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-file"), 0o600))
	t.Setenv("JWT_SECRET", "from-env")

	v, err := config.ReadSecret("jwt_secret")
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)
}

func TestReadSecret_NotFound(t *testing.T) {
	isolate(t)

	_, err := config.ReadSecret("jwt_secret")
	assert.ErrorIs(t, err, config.ErrSecretNotFound)
}

func TestPostgresDSN_EscapesPassword(t *testing.T) {
	cfg := &config.Config{
		DBUser:     "app",
		DBPassword: "p@ss:w/rd?#",
		DBHost:     "db",
		DBPort:     "5432",
		DBName:     "prompt_refiner",
		DBSSLMode:  "disable",
	}

	dsn := cfg.PostgresDSN()
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd%3F%23@db:5432/prompt_refiner?sslmode=disable", dsn)

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	pw, ok := u.User.Password()
	require.True(t, ok)
	assert.Equal(t, "p@ss:w/rd?#", pw)
	assert.Equal(t, "db:5432", u.Host)
}
