// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	FieldKindNumber = "number"
	FieldKindString = "string"
)

// Load reads configs/config.yaml (searched from the working directory
// upwards a couple of levels), merges config.<APP_ENVIRONMENT>.yaml when
// present and applies environment overrides. A missing config file is not
// an error: defaults describe a same-origin deployment.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	// ADVISOR_BACKEND_BASE_URL overrides backend.base_url, and so on.
	v.SetEnvPrefix("advisor")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"app.environment",
		"logging.level", "logging.format", "logging.output",
		"backend.base_url", "backend.timeout",
		"chat.typing_delay",
		"metrics.address",
	} {
		_ = v.BindEnv(key)
	}
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars replaces ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "agri-advisor"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = 30000
	}

	if cfg.Chat.TypingDelay == 0 {
		cfg.Chat.TypingDelay = 800
	}
	if cfg.Chat.PendingText == "" {
		cfg.Chat.PendingText = "⏳ Typing..."
	}

	if len(cfg.Forms) == 0 {
		cfg.Forms = DefaultForms()
	}
	for name, form := range cfg.Forms {
		cfg.Forms[name] = withFormDefaults(form)
	}
}

func withFormDefaults(form FormConfig) FormConfig {
	if form.ResponseField == "" {
		form.ResponseField = "result"
	}
	if form.SubmitLabel == "" {
		form.SubmitLabel = "Predict"
	}
	if form.BusyLabel == "" {
		form.BusyLabel = "Predicting..."
	}
	if form.PrimaryPlaceholder == "" {
		form.PrimaryPlaceholder = "Select State"
	}
	if form.DependentPlaceholder == "" {
		form.DependentPlaceholder = "Select District"
	}
	if form.AlternativesField != "" && form.AlternativeLabelField == "" {
		form.AlternativeLabelField = "label"
	}
	for i, f := range form.RequestFields {
		if f.Kind == "" {
			form.RequestFields[i].Kind = FieldKindString
		}
	}
	return form
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	if cfg.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout must not be negative")
	}
	if cfg.Chat.TypingDelay < 0 {
		return fmt.Errorf("chat.typing_delay must not be negative")
	}

	for name, form := range cfg.Forms {
		if form.PredictEndpoint == "" {
			return fmt.Errorf("forms.%s.predict_endpoint is required", name)
		}
		if form.CatalogEndpoint != "" && form.CatalogField == "" {
			return fmt.Errorf("forms.%s.catalog_field is required with catalog_endpoint", name)
		}
		for _, f := range form.RequestFields {
			if f.Name == "" {
				return fmt.Errorf("forms.%s.request_fields: field name is required", name)
			}
			if f.Kind != FieldKindNumber && f.Kind != FieldKindString {
				return fmt.Errorf("forms.%s.request_fields.%s: unknown kind %q", name, f.Name, f.Kind)
			}
		}
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetFormConfig returns the named form, or false when it is not configured.
func GetFormConfig(cfg *Config, name string) (FormConfig, bool) {
	form, ok := cfg.Forms[name]
	return form, ok
}
