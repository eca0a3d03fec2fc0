// internal/advisor/predict-submit/models.go
package predictsubmit

// FormValues are the raw control values keyed by field name, exactly as
// typed or selected.
type FormValues map[string]string

// Request is the JSON body posted to the prediction endpoint.
type Request map[string]interface{}

type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeServerError Outcome = "server_error"
	OutcomeUnreachable Outcome = "unreachable"
)

type Alternative struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type Result struct {
	Label        string        `json:"label"`
	Alternatives []Alternative `json:"alternatives,omitempty"`
}

// RenderedResult is what one submission put into the result panel. Exactly
// one of Text and HTML is set. Err carries the classified failure for the
// two error outcomes.
type RenderedResult struct {
	Outcome Outcome `json:"outcome"`
	Result  *Result `json:"result,omitempty"`
	Text    string  `json:"text,omitempty"`
	HTML    string  `json:"html,omitempty"`
	Err     error   `json:"-"`
}

// Control is the submit button.
type Control interface {
	Label() string
	SetLabel(label string)
	Enabled() bool
	SetEnabled(enabled bool)
}

// Panel is where the outcome is shown.
type Panel interface {
	ShowText(text string)
	ShowHTML(html string)
}
