package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Parser     ParserConfig
	OCR        OCRConfig
	Extraction ExtractionConfig
	Browser    BrowserConfig
	CORS       CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb"`
}

// MaxUploadBytes returns the upload limit in bytes.
func (s *ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// DBConfig holds PostgreSQL connection settings for the extraction-run log.
type DBConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds object storage settings for uploads and screenshots.
type S3Config struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UsePathStyle  bool   `mapstructure:"use_path_style"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// ParserProviderConfig holds settings for a single LLM provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds the ordered LLM provider chain.
type ParserConfig struct {
	Primary   ParserProviderConfig `mapstructure:"primary"`
	Secondary ParserProviderConfig `mapstructure:"secondary"`
	Tertiary  ParserProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary provider config, or nil if none is configured.
func (p *ParserConfig) PrimaryConfig() *ParserProviderConfig {
	return configured(&p.Primary)
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (p *ParserConfig) SecondaryConfig() *ParserProviderConfig {
	return configured(&p.Secondary)
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (p *ParserConfig) TertiaryConfig() *ParserProviderConfig {
	return configured(&p.Tertiary)
}

// Chain returns the configured providers in fallback order.
func (p *ParserConfig) Chain() []*ParserProviderConfig {
	var out []*ParserProviderConfig
	for _, c := range []*ParserProviderConfig{p.PrimaryConfig(), p.SecondaryConfig(), p.TertiaryConfig()} {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func configured(c *ParserProviderConfig) *ParserProviderConfig {
	if c.Provider == "" {
		return nil
	}
	return c
}

// OCRConfig holds Tesseract settings.
type OCRConfig struct {
	Language       string  `mapstructure:"language"`
	TessdataPrefix string  `mapstructure:"tessdata_prefix"`
	MRZRegion      float64 `mapstructure:"mrz_region"`
}

// ExtractionConfig holds pipeline tuning.
type ExtractionConfig struct {
	SampleFallback   bool   `mapstructure:"sample_fallback"`
	HeuristicsFile   string `mapstructure:"heuristics_file"`
	MinPatternFields int    `mapstructure:"min_pattern_fields"`
	StrictValidation bool   `mapstructure:"strict_validation"`
}

// BrowserConfig holds form-filler settings.
type BrowserConfig struct {
	FormURL       string `mapstructure:"form_url"`
	Headless      bool   `mapstructure:"headless"`
	RemoteURL     string `mapstructure:"remote_url"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	ScreenshotDir string `mapstructure:"screenshot_dir"`
}

// Enabled reports whether a form URL is configured.
func (b *BrowserConfig) Enabled() bool {
	return b.FormURL != ""
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from an optional config.yaml and from environment
// variables with the DOCFILL_ prefix. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCFILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := os.Getenv("DOCFILL_CONFIG_DIR"); dir != "" {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	setDefaults(v)
	bindEnv(v)

	cfg := &Config{}

	// Container platforms set PORT. Use it if DOCFILL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCFILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		Mode:         v.GetString("server.mode"),
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		MaxUploadMB:  v.GetInt64("server.max_upload_mb"),
	}
	cfg.DB = DBConfig{
		Enabled:         v.GetBool("db.enabled"),
		Host:            v.GetString("db.host"),
		Port:            v.GetInt("db.port"),
		User:            v.GetString("db.user"),
		Password:        v.GetString("db.password"),
		Name:            v.GetString("db.name"),
		SSLMode:         v.GetString("db.sslmode"),
		MaxOpenConns:    v.GetInt("db.max_open_conns"),
		MaxIdleConns:    v.GetInt("db.max_idle_conns"),
		ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
	}
	cfg.S3 = S3Config{
		Enabled:       v.GetBool("s3.enabled"),
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		UsePathStyle:  v.GetBool("s3.use_path_style"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Parser = ParserConfig{
		Primary:   providerConfig(v, "primary"),
		Secondary: providerConfig(v, "secondary"),
		Tertiary:  providerConfig(v, "tertiary"),
	}
	cfg.OCR = OCRConfig{
		Language:       v.GetString("ocr.language"),
		TessdataPrefix: v.GetString("ocr.tessdata_prefix"),
		MRZRegion:      v.GetFloat64("ocr.mrz_region"),
	}
	cfg.Extraction = ExtractionConfig{
		SampleFallback:   v.GetBool("extraction.sample_fallback"),
		HeuristicsFile:   v.GetString("extraction.heuristics_file"),
		MinPatternFields: v.GetInt("extraction.min_pattern_fields"),
		StrictValidation: v.GetBool("extraction.strict_validation"),
	}
	cfg.Browser = BrowserConfig{
		FormURL:       v.GetString("browser.form_url"),
		Headless:      v.GetBool("browser.headless"),
		RemoteURL:     v.GetString("browser.remote_url"),
		TimeoutSecs:   v.GetInt("browser.timeout_secs"),
		ScreenshotDir: v.GetString("browser.screenshot_dir"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}

func providerConfig(v *viper.Viper, slot string) ParserProviderConfig {
	prefix := "parser." + slot + "."
	return ParserProviderConfig{
		Provider:     v.GetString(prefix + "provider"),
		APIKey:       v.GetString(prefix + "api_key"),
		DefaultModel: v.GetString(prefix + "default_model"),
		MaxRetries:   v.GetInt(prefix + "max_retries"),
		TimeoutSecs:  v.GetInt(prefix + "timeout_secs"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.max_upload_mb", 20)

	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docfill")
	v.SetDefault("db.password", "docfill_secret")
	v.SetDefault("db.name", "docfill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")

	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docfill-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.use_path_style", false)
	v.SetDefault("s3.presign_expiry", 3600)

	for _, slot := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("parser."+slot+".provider", "")
		v.SetDefault("parser."+slot+".api_key", "")
		v.SetDefault("parser."+slot+".default_model", "")
		v.SetDefault("parser."+slot+".max_retries", 0)
		v.SetDefault("parser."+slot+".timeout_secs", 60)
	}

	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.tessdata_prefix", "")
	v.SetDefault("ocr.mrz_region", 0.35)

	v.SetDefault("extraction.sample_fallback", false)
	v.SetDefault("extraction.heuristics_file", "")
	v.SetDefault("extraction.min_pattern_fields", 3)
	v.SetDefault("extraction.strict_validation", false)

	v.SetDefault("browser.form_url", "")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.remote_url", "")
	v.SetDefault("browser.timeout_secs", 60)
	v.SetDefault("browser.screenshot_dir", "screenshots")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")
}

// bindEnv binds every known key to its DOCFILL_ variable.
func bindEnv(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		_ = v.BindEnv(key, "DOCFILL_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
	}
}
