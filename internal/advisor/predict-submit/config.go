// internal/advisor/predict-submit/config.go
package predictsubmit

import "agri-advisor/internal/common/config"

type Field struct {
	Name string
	Kind string
}

type Config struct {
	Form     string
	Endpoint string
	Fields   []Field

	ResponseField         string
	AlternativesField     string
	AlternativeLabelField string

	ResultTitle string
	SubmitLabel string
	BusyLabel   string

	Samples map[string]string
}

func LoadConfig(form string, fc config.FormConfig) *Config {
	cfg := &Config{
		Form:                  form,
		Endpoint:              fc.PredictEndpoint,
		ResponseField:         fc.ResponseField,
		AlternativesField:     fc.AlternativesField,
		AlternativeLabelField: fc.AlternativeLabelField,
		ResultTitle:           fc.ResultTitle,
		SubmitLabel:           fc.SubmitLabel,
		BusyLabel:             fc.BusyLabel,
		Samples:               make(map[string]string, len(fc.Samples)),
	}
	for _, f := range fc.RequestFields {
		cfg.Fields = append(cfg.Fields, Field{Name: f.Name, Kind: f.Kind})
	}
	for k, v := range fc.Samples {
		cfg.Samples[k] = v
	}
	if cfg.ResponseField == "" {
		cfg.ResponseField = "result"
	}
	if cfg.BusyLabel == "" {
		cfg.BusyLabel = "Predicting..."
	}
	if cfg.AlternativesField != "" && cfg.AlternativeLabelField == "" {
		cfg.AlternativeLabelField = "label"
	}
	return cfg
}
