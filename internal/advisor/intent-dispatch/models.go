// internal/advisor/intent-dispatch/models.go
package intentdispatch

import "agri-advisor/internal/common/ui"

type Intent string

const (
	IntentCrop        Intent = "crop_recommendation"
	IntentSuitability Intent = "weather_suitability"
	IntentFertilizer  Intent = "fertilizer_advice"
	IntentDisease     Intent = "disease_detection"
	IntentGuidance    Intent = "beginner_guidance"
	IntentClarify     Intent = "clarify"
)

// Template is a canned rich-text reply.
type Template struct {
	Intent Intent `json:"intent"`
	Body   string `json:"body"`
}

// Rule matches when the normalized utterance contains any of its keywords.
type Rule struct {
	Intent   Intent   `json:"intent"`
	Keywords []string `json:"keywords"`
	Template Template `json:"template"`
}

// Pending is one dispatched utterance waiting for its reply.
type Pending struct {
	Bubble ui.BubbleID

	done     chan struct{}
	template Template
}

// Done is closed once the placeholder bubble has been replaced.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the reply is in place and returns it.
func (p *Pending) Wait() Template {
	<-p.done
	return p.template
}
