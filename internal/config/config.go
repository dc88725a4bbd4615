package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	API     APIConfig
	Log     LogConfig
	Terms   TermsConfig
	Metrics MetricsConfig
	Export  ExportConfig
	SFTP    SFTPConfig
}

type APIConfig struct {
	BaseURL string
	// Timeout of zero leaves requests bounded only by their context.
	Timeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// TermsConfig lists the semesters offered by the enrollment workflow.
type TermsConfig struct {
	Default   string
	Semesters []string
}

type MetricsConfig struct {
	TextfilePath string
}

type ExportConfig struct {
	Dir string
}

type SFTPConfig struct {
	Host                  string
	Port                  int
	User                  string
	Pass                  string
	Dir                   string
	InsecureIgnoreHostKey bool
	KnownHosts            string
}

// Enabled reports whether an upload target is configured.
func (c SFTPConfig) Enabled() bool {
	return c.Host != "" && c.User != ""
}

// Load reads .env from the working directory when present, then the environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load(path)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("HTTP_TIMEOUT"), 0),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Terms = TermsConfig{
		Default:   strings.TrimSpace(v.GetString("DEFAULT_SEMESTER")),
		Semesters: splitAndTrim(v.GetString("SEMESTERS")),
	}
	if cfg.Terms.Default != "" && !contains(cfg.Terms.Semesters, cfg.Terms.Default) {
		cfg.Terms.Semesters = append([]string{cfg.Terms.Default}, cfg.Terms.Semesters...)
	}
	if cfg.Terms.Default == "" && len(cfg.Terms.Semesters) > 0 {
		cfg.Terms.Default = cfg.Terms.Semesters[0]
	}

	cfg.Metrics = MetricsConfig{TextfilePath: v.GetString("METRICS_TEXTFILE")}
	cfg.Export = ExportConfig{Dir: v.GetString("EXPORT_DIR")}

	cfg.SFTP = SFTPConfig{
		Host:                  v.GetString("SFTP_HOST"),
		Port:                  v.GetInt("SFTP_PORT"),
		User:                  v.GetString("SFTP_USER"),
		Pass:                  v.GetString("SFTP_PASS"),
		Dir:                   v.GetString("SFTP_DIR"),
		InsecureIgnoreHostKey: v.GetBool("SFTP_INSECURE_IGNORE_HOST_KEY"),
		KnownHosts:            v.GetString("SFTP_KNOWN_HOSTS"),
	}
	if cfg.SFTP.Port <= 0 {
		cfg.SFTP.Port = 22
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("HTTP_TIMEOUT", "0")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("DEFAULT_SEMESTER", "Fall 2023")
	v.SetDefault("SEMESTERS", "Fall 2023,Spring 2024,Summer 2024")

	v.SetDefault("METRICS_TEXTFILE", "")
	v.SetDefault("EXPORT_DIR", "./exports")

	v.SetDefault("SFTP_HOST", "")
	v.SetDefault("SFTP_PORT", 22)
	v.SetDefault("SFTP_USER", "")
	v.SetDefault("SFTP_PASS", "")
	v.SetDefault("SFTP_DIR", "/")
	v.SetDefault("SFTP_INSECURE_IGNORE_HOST_KEY", false)
	v.SetDefault("SFTP_KNOWN_HOSTS", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if raw == "0" {
		return 0
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
