package predictsubmit

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"agri-advisor/internal/common/config"
)

const (
	unreachableText     = "Server unreachable."
	defaultFailureText  = "Prediction failed"
	serverErrorTemplate = "Error: %s"
)

var resultCard = template.Must(template.New("result").Parse(
	`<div class="result-card">` +
		`{{if .Title}}<div class="result-title">{{.Title}}</div>{{end}}` +
		`<strong>{{.Label}}</strong>` +
		`{{if .Alternatives}}<ul class="result-list">` +
		`{{range .Alternatives}}<li>{{.Label}} ({{.Percent}})</li>{{end}}` +
		`</ul>{{end}}` +
		`</div>`))

type cardAlternative struct {
	Label   string
	Percent string
}

type card struct {
	Title        string
	Label        string
	Alternatives []cardAlternative
}

// FormatConfidence renders a 0..1 confidence as a percentage with two
// decimals: 0.8765 → "87.65%".
func FormatConfidence(c float64) string {
	return fmt.Sprintf("%.2f%%", c*100)
}

func renderCard(title string, res *Result) (string, error) {
	c := card{Title: title, Label: res.Label}
	for _, a := range res.Alternatives {
		c.Alternatives = append(c.Alternatives, cardAlternative{
			Label:   a.Label,
			Percent: FormatConfidence(a.Confidence),
		})
	}

	var buf bytes.Buffer
	if err := resultCard.Execute(&buf, c); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func serverErrorText(msg string) string {
	if msg == "" {
		msg = defaultFailureText
	}
	return fmt.Sprintf(serverErrorTemplate, msg)
}

// BuildRequest serializes raw values per field kind. Number fields follow
// browser form semantics: blank is 0 and anything unparseable is null.
// String fields are sent verbatim. Values without a configured field are
// dropped; configured fields without a value are sent as blank.
func BuildRequest(fields []Field, values FormValues) Request {
	req := make(Request, len(fields))
	for _, f := range fields {
		raw := values[f.Name]
		if f.Kind != config.FieldKindNumber {
			req[f.Name] = raw
			continue
		}
		req[f.Name] = parseNumber(raw)
	}
	return req
}

func parseNumber(raw string) interface{} {
	s := strings.TrimSpace(raw)
	if s == "" {
		return float64(0)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return n
}
