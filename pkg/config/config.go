package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/samber/lo"
)

const (
	RecordStoreSupabase = "supabase"
	RecordStorePostgres = "postgres"

	ProviderOpenAI     = "openai"
	ProviderAssemblyAI = "assemblyai"
	ProviderGemini     = "gemini"

	LockNone   = "none"
	LockMemory = "memory"
	LockRedis  = "redis"
)

// Config holds application configuration. It is loaded once at startup and
// treated as read-only afterwards.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Supabase SupabaseConfig
	Redis    RedisConfig
	Lock     LockConfig
	Storage  StorageConfig
	OpenAI   OpenAIConfig
	Assembly AssemblyAIConfig
	Gemini   GeminiConfig
	Pipeline PipelineConfig
	Push     PushConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// DatabaseConfig holds database configuration, used when RecordStore is "postgres"
type DatabaseConfig struct {
	RecordStore string `envconfig:"RECORD_STORE" default:"supabase"`
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"meeting_notes"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// SupabaseConfig holds the PostgREST endpoint of the record store
type SupabaseConfig struct {
	URL        string `envconfig:"SUPABASE_URL"`
	ServiceKey string `envconfig:"SUPABASE_SERVICE_ROLE_KEY"`
	Table      string `envconfig:"SUPABASE_TABLE" default:"meetings"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// LockConfig selects how overlapping requests for one meeting are serialized
type LockConfig struct {
	Backend string        `envconfig:"LOCK_BACKEND" default:"none"`
	TTL     time.Duration `envconfig:"LOCK_TTL" default:"15m"`
}

// StorageConfig holds object storage configuration for the artifact archive
type StorageConfig struct {
	ArchiveEnabled  bool   `envconfig:"ARCHIVE_ENABLED" default:"false"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meeting-notes"`
	Prefix          string `envconfig:"STORAGE_PREFIX" default:"meetings"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// OpenAIConfig holds OpenAI (or OpenAI-compatible) credentials
type OpenAIConfig struct {
	APIKey             string `envconfig:"OPENAI_API_KEY"`
	BaseURL            string `envconfig:"OPENAI_BASE_URL"`
	TranscriptionModel string `envconfig:"WHISPER_MODEL" default:"whisper-1"`
}

// AssemblyAIConfig holds AssemblyAI credentials
type AssemblyAIConfig struct {
	APIKey       string `envconfig:"ASSEMBLYAI_API_KEY"`
	LanguageCode string `envconfig:"ASSEMBLYAI_LANGUAGE_CODE"`
}

// GeminiConfig holds Google Gemini credentials
type GeminiConfig struct {
	APIKey string `envconfig:"GEMINI_API_KEY"`
}

// PipelineConfig holds per-step settings of the processing pipeline
type PipelineConfig struct {
	TranscriptionProvider string        `envconfig:"TRANSCRIPTION_PROVIDER" default:"openai"`
	SummaryProvider       string        `envconfig:"SUMMARY_PROVIDER" default:"openai"`
	SummaryModel          string        `envconfig:"SUMMARY_MODEL"`
	SummaryBaseURL        string        `envconfig:"SUMMARY_BASE_URL"`
	SummaryAPIKey         string        `envconfig:"SUMMARY_API_KEY"`
	AudioFetchTimeout     time.Duration `envconfig:"AUDIO_FETCH_TIMEOUT" default:"60s"`
	AudioMaxBytes         int64         `envconfig:"AUDIO_MAX_BYTES" default:"0"`
}

// PushConfig holds the Expo push relay settings
type PushConfig struct {
	ExpoURL     string        `envconfig:"EXPO_PUSH_URL" default:"https://exp.host/--/api/v2/push/send"`
	AccessToken string        `envconfig:"EXPO_ACCESS_TOKEN"`
	Timeout     time.Duration `envconfig:"PUSH_TIMEOUT" default:"10s"`
}

// Load loads configuration from environment variables.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	// Missing .env is fine: production injects the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects malformed settings. Missing credentials are not an error;
// they degrade the affected pipeline step at request time (see Warnings).
func (c *Config) Validate() error {
	if !lo.Contains([]string{RecordStoreSupabase, RecordStorePostgres}, c.Database.RecordStore) {
		return fmt.Errorf("RECORD_STORE must be %q or %q, got %q", RecordStoreSupabase, RecordStorePostgres, c.Database.RecordStore)
	}
	if !lo.Contains([]string{ProviderOpenAI, ProviderAssemblyAI}, c.Pipeline.TranscriptionProvider) {
		return fmt.Errorf("TRANSCRIPTION_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderAssemblyAI, c.Pipeline.TranscriptionProvider)
	}
	if !lo.Contains([]string{ProviderOpenAI, ProviderGemini}, c.Pipeline.SummaryProvider) {
		return fmt.Errorf("SUMMARY_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.Pipeline.SummaryProvider)
	}
	if !lo.Contains([]string{LockNone, LockMemory, LockRedis}, c.Lock.Backend) {
		return fmt.Errorf("LOCK_BACKEND must be one of none, memory, redis; got %q", c.Lock.Backend)
	}
	if c.Pipeline.AudioFetchTimeout <= 0 {
		return fmt.Errorf("AUDIO_FETCH_TIMEOUT must be positive")
	}
	if c.Pipeline.AudioMaxBytes < 0 {
		return fmt.Errorf("AUDIO_MAX_BYTES must not be negative")
	}
	return nil
}

// Warnings lists credentials whose absence will make a pipeline step fail or degrade
func (c *Config) Warnings() []string {
	var warnings []string
	if c.TranscriptionAPIKey() == "" {
		warnings = append(warnings, "transcription credential not set; /process-meeting will return 503")
	}
	if c.SummaryAPIKey() == "" {
		warnings = append(warnings, "summary credential not set; summaries will be unavailable")
	}
	if c.Database.RecordStore == RecordStoreSupabase && (c.Supabase.URL == "" || c.Supabase.ServiceKey == "") {
		warnings = append(warnings, "SUPABASE_URL / SUPABASE_SERVICE_ROLE_KEY not set; DB update will fail")
	}
	return warnings
}

// TranscriptionAPIKey returns the credential of the selected transcription provider
func (c *Config) TranscriptionAPIKey() string {
	if c.Pipeline.TranscriptionProvider == ProviderAssemblyAI {
		return c.Assembly.APIKey
	}
	return c.OpenAI.APIKey
}

// SummaryAPIKey returns the credential of the selected summary provider
func (c *Config) SummaryAPIKey() string {
	if c.Pipeline.SummaryProvider == ProviderGemini {
		return c.Gemini.APIKey
	}
	if c.Pipeline.SummaryAPIKey != "" {
		return c.Pipeline.SummaryAPIKey
	}
	return c.OpenAI.APIKey
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
