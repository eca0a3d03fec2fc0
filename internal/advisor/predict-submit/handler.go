package predictsubmit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	apperrors "agri-advisor/internal/common/errors"
	httpc "agri-advisor/internal/common/http"
	"agri-advisor/internal/common/logger"
	"agri-advisor/internal/common/metrics"
	"agri-advisor/internal/common/observability"
	"agri-advisor/internal/common/validation"
)

const (
	Component = "predict-submit"
)

var (
	ErrSubmissionInFlight = errors.New("submission in flight")
)

// Handler submits one form to its prediction endpoint and renders the
// reply. The submit control is disabled for the duration of a submission.
type Handler struct {
	config   *Config
	client   *httpc.Client
	button   Control
	panel    Panel
	recorder observability.Recorder
	logger   logger.Logger
	schema   map[string]interface{}

	busy atomic.Bool
}

func NewHandler(config *Config, client *httpc.Client, button Control, panel Panel, recorder observability.Recorder, log logger.Logger) (*Handler, error) {
	switch {
	case config == nil:
		return nil, apperrors.NewPreconditionViolationError("prediction config")
	case client == nil:
		return nil, apperrors.NewPreconditionViolationError("http client")
	case button == nil:
		return nil, apperrors.NewPreconditionViolationError("submit button")
	case panel == nil:
		return nil, apperrors.NewPreconditionViolationError("result panel")
	}

	return &Handler{
		config:   config,
		client:   client,
		button:   button,
		panel:    panel,
		recorder: recorder,
		logger: logger.ForComponent(log, Component).With(map[string]interface{}{
			"form": config.Form,
		}),
		schema: validation.PredictionReplySchema(config.ResponseField, config.AlternativesField, config.AlternativeLabelField),
	}, nil
}

// Submit posts values and renders the outcome. The only error is
// ErrSubmissionInFlight; backend failures are reported through the
// returned RenderedResult and the panel.
func (h *Handler) Submit(ctx context.Context, values FormValues) (*RenderedResult, error) {
	if !h.busy.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("%w: %w", ErrSubmissionInFlight, apperrors.NewSubmissionInFlightError(h.config.Form))
	}
	defer h.busy.Store(false)

	restore := h.lockControl()
	defer restore()

	metrics.PredictionsActive.WithLabelValues(h.config.Form).Inc()
	defer metrics.PredictionsActive.WithLabelValues(h.config.Form).Dec()

	started := time.Now()
	req := BuildRequest(h.config.Fields, values)

	h.logger.Info("submitting prediction", map[string]interface{}{
		"endpoint": h.config.Endpoint,
		"fields":   len(req),
	})

	rendered := h.execute(ctx, req)
	h.show(rendered)

	duration := time.Since(started)
	metrics.Predictions.WithLabelValues(h.config.Form, string(rendered.Outcome)).Inc()
	metrics.PredictionDuration.WithLabelValues(h.config.Form).Observe(duration.Seconds())
	if h.recorder != nil {
		h.recorder.RecordCycle(ctx, Component, string(rendered.Outcome))
		h.recorder.RecordCycleDuration(ctx, Component, duration, string(rendered.Outcome))
	}

	fields := map[string]interface{}{
		"outcome":  rendered.Outcome,
		"duration": duration.String(),
	}
	if rendered.Err != nil {
		for k, v := range apperrors.Normalize(rendered.Err).Fields() {
			fields[k] = v
		}
		h.logger.Warn("prediction failed", fields)
	} else {
		fields["result"] = rendered.Result.Label
		h.logger.Info("prediction rendered", fields)
	}

	return rendered, nil
}

// Samples returns the configured sample inputs keyed by field name.
func (h *Handler) Samples() FormValues {
	out := make(FormValues, len(h.config.Samples))
	for k, v := range h.config.Samples {
		out[h.fieldName(k)] = v
	}
	return out
}

// InFlight reports whether a submission is pending.
func (h *Handler) InFlight() bool {
	return h.busy.Load()
}

// fieldName maps a sample key back onto the configured field's spelling;
// config keys arrive lowercased.
func (h *Handler) fieldName(key string) string {
	for _, f := range h.config.Fields {
		if strings.EqualFold(f.Name, key) {
			return f.Name
		}
	}
	return key
}

// lockControl disables the button behind the busy label and returns the
// function that puts the captured state back. Restoring happens once.
func (h *Handler) lockControl() func() {
	label := h.button.Label()
	enabled := h.button.Enabled()

	h.button.SetEnabled(false)
	h.button.SetLabel(h.config.BusyLabel)

	return sync.OnceFunc(func() {
		h.button.SetLabel(label)
		h.button.SetEnabled(enabled)
	})
}

func (h *Handler) execute(ctx context.Context, req Request) *RenderedResult {
	resp, err := h.client.PostJSON(ctx, h.config.Endpoint, req)
	if err != nil {
		return unreachable(apperrors.NewPredictionTransportError(h.config.Form, err))
	}

	var reply map[string]interface{}
	if err := resp.Decode(&reply); err != nil {
		return unreachable(apperrors.NewPredictionTransportError(h.config.Form, err))
	}

	serverMsg, _ := reply["error"].(string)
	label, _ := reply[h.config.ResponseField].(string)

	if resp.OK() && label != "" {
		if err := validation.Validate(h.schema, reply).Err(); err != nil {
			h.logger.Warn("prediction reply does not match schema", map[string]interface{}{"error": err})
			return h.serverError(resp.StatusCode, "")
		}
		return h.success(label, reply)
	}

	return h.serverError(resp.StatusCode, serverMsg)
}

func (h *Handler) success(label string, reply map[string]interface{}) *RenderedResult {
	res := &Result{Label: label}
	if h.config.AlternativesField != "" {
		items, _ := reply[h.config.AlternativesField].([]interface{})
		for _, item := range items {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			altLabel, _ := m[h.config.AlternativeLabelField].(string)
			confidence, _ := m["confidence"].(float64)
			res.Alternatives = append(res.Alternatives, Alternative{Label: altLabel, Confidence: confidence})
		}
	}

	html, err := renderCard(h.config.ResultTitle, res)
	if err != nil {
		h.logger.Error("failed to render result card", map[string]interface{}{"error": err})
		return h.serverError(0, "")
	}

	return &RenderedResult{Outcome: OutcomeSuccess, Result: res, HTML: html}
}

func (h *Handler) serverError(status int, msg string) *RenderedResult {
	text := serverErrorText(msg)
	if msg == "" {
		msg = defaultFailureText
	}
	return &RenderedResult{
		Outcome: OutcomeServerError,
		Text:    text,
		Err:     apperrors.NewPredictionServerError(h.config.Form, status, msg),
	}
}

func unreachable(err error) *RenderedResult {
	return &RenderedResult{
		Outcome: OutcomeUnreachable,
		Text:    unreachableText,
		Err:     err,
	}
}

func (h *Handler) show(r *RenderedResult) {
	if r.HTML != "" {
		h.panel.ShowHTML(r.HTML)
		return
	}
	h.panel.ShowText(r.Text)
}
