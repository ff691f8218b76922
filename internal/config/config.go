package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Supported generation providers.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Supported user store backends.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	ServerPort  string `envconfig:"SERVER_PORT" default:"8000"`

	// Generation provider
	AIProvider          string        `envconfig:"AI_PROVIDER" default:"gemini"`
	AIModel             string        `envconfig:"AI_MODEL"`
	AIBaseURL           string        `envconfig:"AI_BASE_URL"`
	AIRequestTimeout    time.Duration `envconfig:"AI_REQUEST_TIMEOUT" default:"60s"`
	AIRequestsPerSecond float64       `envconfig:"AI_REQUESTS_PER_SECOND" default:"0"` // 0 отключает лимит
	AIBurst             int           `envconfig:"AI_BURST" default:"3"`
	OllamaURL           string        `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	// Секретное поле БЕЗ envconfig тега
	AIAPIKey string

	// Prompt catalog; empty means the embedded catalog
	PromptCatalogFile string `envconfig:"PROMPT_CATALOG_FILE"`

	// Кэш объяснений и подсказок; 0 отключает
	AnalysisCacheSize int           `envconfig:"ANALYSIS_CACHE_SIZE" default:"256"`
	AnalysisCacheTTL  time.Duration `envconfig:"ANALYSIS_CACHE_TTL" default:"10m"`

	// Pages and static assets
	FrontendDir string `envconfig:"FRONTEND_DIR" default:"frontend"`

	// User store
	UserStore     string        `envconfig:"USER_STORE" default:"memory"`
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"postgres"`
	DBName        string        `envconfig:"DB_NAME" default:"prompt_refiner"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_IDLE_TIMEOUT" default:"5m"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	// Секретные поля БЕЗ envconfig тегов
	DBPassword    string
	RedisPassword string

	// JWT Settings
	JWTIssuer string `envconfig:"JWT_ISSUER" default:"prompt-refiner"`
	// Секретные поля БЕЗ envconfig тегов
	JWTSecret      string
	PasswordPepper string

	// Inbound rate limit for /api/register and /api/login, per client IP
	AuthRateLimit  uint          `envconfig:"AUTH_RATE_LIMIT" default:"10"`
	AuthRateWindow time.Duration `envconfig:"AUTH_RATE_WINDOW" default:"1m"`

	// CORS Settings
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:8000,http://127.0.0.1:8000"`
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	origins := strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
	result := origins[:0]
	for _, o := range origins {
		if o != "" {
			result = append(result, o)
		}
	}
	return result
}

// PostgresDSN builds the connection string for the postgres user store.
func (c *Config) PostgresDSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSSLMode}}.Encode(),
	}
	return dsn.String()
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks values envconfig cannot express as tags.
func (c *Config) Validate() error {
	switch c.AIProvider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
		if c.AIAPIKey == "" {
			return fmt.Errorf("AI_API_KEY (or GEMINI_API_KEY) is required for provider %q", c.AIProvider)
		}
	case ProviderOllama:
	default:
		return fmt.Errorf("unsupported AI_PROVIDER %q", c.AIProvider)
	}

	switch c.UserStore {
	case StoreMemory, StoreRedis, StorePostgres:
	default:
		return fmt.Errorf("unsupported USER_STORE %q", c.UserStore)
	}

	if c.AIRequestsPerSecond < 0 {
		return errors.New("AI_REQUESTS_PER_SECOND must not be negative")
	}
	if c.AnalysisCacheSize < 0 {
		return errors.New("ANALYSIS_CACHE_SIZE must not be negative")
	}
	if c.AuthRateLimit == 0 {
		return errors.New("AUTH_RATE_LIMIT must be positive")
	}
	return nil
}

// LoadConfig loads configuration from environment variables and secrets.
// The .env file at envFilePath is optional.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			} else {
				log.Printf("Loaded configuration from %s", envFilePath)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	if err := cfg.loadSecrets(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("Configuration loaded successfully.")
	return &cfg, nil
}

func (c *Config) loadSecrets() error {
	var err error

	c.AIAPIKey, err = readFirstSecret("ai_api_key", "gemini_api_key")
	if err != nil && !errors.Is(err, ErrSecretNotFound) {
		return err
	}

	c.JWTSecret, err = ReadSecret("jwt_secret")
	switch {
	case errors.Is(err, ErrSecretNotFound):
		// Без секрета токены живут не дольше процесса, как и пользователи в памяти
		c.JWTSecret, err = randomSecret()
		if err != nil {
			return err
		}
		log.Println("Warning: JWT_SECRET not set, generated an ephemeral signing key.")
	case err != nil:
		return err
	}

	// Необязательные секреты
	optional := map[string]*string{
		"password_pepper": &c.PasswordPepper,
		"db_password":     &c.DBPassword,
		"redis_password":  &c.RedisPassword,
	}
	for name, dst := range optional {
		v, err := ReadSecret(name)
		if err != nil {
			if errors.Is(err, ErrSecretNotFound) {
				continue
			}
			return err
		}
		*dst = v
	}
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
