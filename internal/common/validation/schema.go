// Package validation checks backend payloads against JSON schemas before
// they are bound to controls or rendered.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Err folds a failed result into a single error; nil when valid.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Errorf("payload validation failed: %s", strings.Join(msgs, "; "))
}

// Validate checks a decoded JSON document against a schema expressed as a
// Go map.
func Validate(schema map[string]interface{}, document interface{}) *ValidationResult {
	if len(schema) == 0 {
		return &ValidationResult{Valid: true}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(root)",
				Message: err.Error(),
				Code:    "SCHEMA_ERROR",
			}},
		}
	}

	if result.Valid() {
		return &ValidationResult{Valid: true}
	}

	errs := make([]ValidationError, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		}
	}
	return &ValidationResult{Valid: false, Errors: errs}
}

var stringArray = map[string]interface{}{
	"type":  "array",
	"items": map[string]interface{}{"type": "string"},
}

// FlatCatalogSchema describes {"<field>": ["a", "b", ...]}.
func FlatCatalogSchema(field string) map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{field},
		"properties": map[string]interface{}{
			field: stringArray,
		},
	}
}

// RegionCatalogSchema describes {"states": [...], "mapping": {"<state>": [...]}}.
func RegionCatalogSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"states", "mapping"},
		"properties": map[string]interface{}{
			"states": stringArray,
			"mapping": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": stringArray,
			},
		},
	}
}

// PredictionReplySchema describes a prediction reply. Every field is
// optional; only the types of the ones present are checked.
func PredictionReplySchema(responseField, alternativesField, labelField string) map[string]interface{} {
	props := map[string]interface{}{
		"error": map[string]interface{}{"type": "string"},
	}
	if responseField != "" {
		props[responseField] = map[string]interface{}{"type": "string"}
	}
	if alternativesField != "" {
		props[alternativesField] = map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{labelField, "confidence"},
				"properties": map[string]interface{}{
					labelField:   map[string]interface{}{"type": "string"},
					"confidence": map[string]interface{}{"type": "number"},
				},
			},
		}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
}
