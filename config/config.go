package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Transcript TranscriptConfig
	Speech     SpeechConfig
	Summary    SummaryConfig
}

type ServerConfig struct {
	Port            string        `yaml:"port" env:"PORT" env-default:"3001"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" env-default:"6m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT" env-default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"5m"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	Dir    string `yaml:"dir" env:"LOG_DIR"`
}

type TranscriptConfig struct {
	YouTubeAPIKey   string `yaml:"youtube_api_key" env:"YOUTUBE_API_KEY"`
	CaptionLanguage string `yaml:"caption_language" env:"CAPTION_LANGUAGE" env-default:"en"`

	// Audio fallback runs only after a disabled-captions failure unless
	// AudioOnAnyError is set.
	AudioEnabled    bool   `yaml:"audio_enabled" env:"AUDIO_FALLBACK_ENABLED" env-default:"true"`
	AudioOnAnyError bool   `yaml:"audio_on_any_error" env:"AUDIO_FALLBACK_ON_ANY_ERROR" env-default:"false"`
	TempDir         string `yaml:"temp_dir" env:"TEMP_DIR"`
	FFmpegPath      string `yaml:"ffmpeg_path" env:"FFMPEG_PATH" env-default:"ffmpeg"`
}

type SpeechConfig struct {
	Recognizer      string `yaml:"recognizer" env:"SPEECH_RECOGNIZER" env-default:"google"`
	Language        string `yaml:"language" env:"SPEECH_LANGUAGE" env-default:"en-US"`
	Model           string `yaml:"model" env:"SPEECH_MODEL" env-default:"latest_long"`
	CredentialsFile string `yaml:"credentials_file" env:"SPEECH_CREDENTIALS_FILE"`

	// ChunkDuration bounds the audio sent in one recognition call.
	ChunkDuration time.Duration `yaml:"chunk_duration" env:"SPEECH_CHUNK_DURATION" env-default:"4m"`
}

type SummaryConfig struct {
	Provider    string  `yaml:"provider" env:"SUMMARY_PROVIDER" env-default:"anthropic"`
	MaxTokens   int     `yaml:"max_tokens" env:"SUMMARY_MAX_TOKENS"`
	Temperature float64 `yaml:"temperature" env:"SUMMARY_TEMPERATURE" env-default:"-1"`

	AnthropicAPIKey  string `yaml:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`
	AnthropicModel   string `yaml:"anthropic_model" env:"ANTHROPIC_MODEL" env-default:"claude-3-5-sonnet-20241022"`
	AnthropicBaseURL string `yaml:"anthropic_base_url" env:"ANTHROPIC_BASE_URL"`

	OpenAIAPIKey  string `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	OpenAIModel   string `yaml:"openai_model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	OpenAIBaseURL string `yaml:"openai_base_url" env:"OPENAI_BASE_URL"`

	PerplexityAPIKey string `yaml:"perplexity_api_key" env:"PERPLEXITY_API_KEY"`
	PerplexityModel  string `yaml:"perplexity_model" env:"PERPLEXITY_MODEL" env-default:"llama-3.1-sonar-small-128k-online"`

	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"gemini_model" env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
}

// Load reads an optional .env file, then CONFIG_FILE if set, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("Failed to read .env file, continuing with process environment")
	}

	var cfg Config
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}

	if cfg.Transcript.TempDir == "" {
		cfg.Transcript.TempDir = os.TempDir()
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	if c.Server.ReadTimeout <= 0 {
		return errors.New("read timeout must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		return errors.New("write timeout must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		return errors.New("idle timeout must be greater than 0")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("request timeout must be greater than 0")
	}

	switch c.Summary.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderPerplexity, ProviderGemini:
	default:
		return errors.Errorf("unknown summary provider %q", c.Summary.Provider)
	}

	switch c.Speech.Recognizer {
	case RecognizerGoogle, RecognizerWhisper:
	default:
		return errors.Errorf("unknown speech recognizer %q", c.Speech.Recognizer)
	}

	if c.Summary.MaxTokens < 0 {
		return errors.New("summary max tokens must not be negative")
	}

	return nil
}

const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderPerplexity = "perplexity"
	ProviderGemini     = "gemini"

	RecognizerGoogle  = "google"
	RecognizerWhisper = "whisper"
)

// Credential returns the API key for the selected provider and the env var it comes from.
func (s SummaryConfig) Credential() (key, envName string) {
	switch s.Provider {
	case ProviderOpenAI:
		return s.OpenAIAPIKey, "OPENAI_API_KEY"
	case ProviderPerplexity:
		return s.PerplexityAPIKey, "PERPLEXITY_API_KEY"
	case ProviderGemini:
		return s.GeminiAPIKey, "GEMINI_API_KEY"
	default:
		return s.AnthropicAPIKey, "ANTHROPIC_API_KEY"
	}
}
