// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig             `mapstructure:"app"`
	Logging LoggingConfig         `mapstructure:"logging"`
	Backend BackendConfig         `mapstructure:"backend"`
	Chat    ChatConfig            `mapstructure:"chat"`
	Metrics MetricsConfig         `mapstructure:"metrics"`
	Forms   map[string]FormConfig `mapstructure:"forms"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// BackendConfig points at the prediction service. An empty BaseURL means
// endpoints are used as given (absolute URLs, or same-origin paths).
type BackendConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type ChatConfig struct {
	TypingDelay int    `mapstructure:"typing_delay"` // milliseconds
	PendingText string `mapstructure:"pending_text"`
}

type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

// FieldConfig names one request field and how its raw input is serialized.
type FieldConfig struct {
	Name string `mapstructure:"name"`
	Kind string `mapstructure:"kind"` // "number" or "string"
}

// RegionConfig is one entry of a fallback region catalog. It is a list rather
// than a map because viper lowercases map keys and loses their order.
type RegionConfig struct {
	Name       string   `mapstructure:"name"`
	SubRegions []string `mapstructure:"sub_regions"`
}

// FormConfig describes one deployed prediction form: where its catalogs come
// from, what it posts, and which reply field carries the answer.
type FormConfig struct {
	CatalogEndpoint string         `mapstructure:"catalog_endpoint"`
	CatalogField    string         `mapstructure:"catalog_field"`
	CatalogFallback []string       `mapstructure:"catalog_fallback"`
	MappingEndpoint string         `mapstructure:"mapping_endpoint"`
	RegionFallback  []RegionConfig `mapstructure:"region_fallback"`

	PredictEndpoint       string        `mapstructure:"predict_endpoint"`
	RequestFields         []FieldConfig `mapstructure:"request_fields"`
	ResponseField         string        `mapstructure:"response_field"`
	AlternativesField     string        `mapstructure:"alternatives_field"`
	AlternativeLabelField string        `mapstructure:"alternative_label_field"`

	ResultTitle string `mapstructure:"result_title"`
	SubmitLabel string `mapstructure:"submit_label"`
	BusyLabel   string `mapstructure:"busy_label"`

	PrimaryPlaceholder   string `mapstructure:"primary_placeholder"`
	DependentPlaceholder string `mapstructure:"dependent_placeholder"`

	Samples map[string]string `mapstructure:"samples"`
}
