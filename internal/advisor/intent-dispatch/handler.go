package intentdispatch

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "agri-advisor/internal/common/errors"
	"agri-advisor/internal/common/logger"
	"agri-advisor/internal/common/metrics"
	"agri-advisor/internal/common/ui"
)

const (
	Component = "intent-dispatch"
)

var (
	ErrEmptyUtterance = errors.New("empty utterance")
)

// Handler routes chat input to canned replies. Each dispatched utterance
// owns the placeholder bubble it created and only ever rewrites that one.
type Handler struct {
	config *Config
	box    *ui.ChatBox
	logger logger.Logger

	inflight sync.WaitGroup
}

func NewHandler(config *Config, box *ui.ChatBox, log logger.Logger) (*Handler, error) {
	if box == nil {
		return nil, apperrors.NewPreconditionViolationError("chat box")
	}
	if config == nil {
		config = LoadConfig(nil)
	}
	return &Handler{
		config: config,
		box:    box,
		logger: logger.ForComponent(log, Component),
	}, nil
}

// Classify is total and deterministic.
func (h *Handler) Classify(utterance string) Template {
	return Classify(h.config.Rules, h.config.Default, utterance)
}

// Submit echoes the trimmed input as a user bubble, then dispatches it.
func (h *Handler) Submit(raw string) (*Pending, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return nil, fmt.Errorf("%w: %w", ErrEmptyUtterance, apperrors.NewEmptyUtteranceError())
	}

	h.box.Append(ui.BubbleUser, input)
	return h.dispatch(input), nil
}

// Quick dispatches a quick-reply keyword without echoing it.
func (h *Handler) Quick(keyword string) (*Pending, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("%w: %w", ErrEmptyUtterance, apperrors.NewEmptyUtteranceError())
	}
	return h.dispatch(keyword), nil
}

// Wait blocks until every dispatched reply has been applied.
func (h *Handler) Wait() {
	h.inflight.Wait()
}

func (h *Handler) dispatch(msg string) *Pending {
	p := &Pending{
		Bubble: h.box.Append(ui.BubbleBot, h.config.PendingText),
		done:   make(chan struct{}),
	}

	h.inflight.Add(1)
	started := time.Now()
	time.AfterFunc(h.config.TypingDelay, func() {
		defer h.inflight.Done()
		defer close(p.done)

		p.template = h.Classify(msg)
		if err := h.box.Replace(p.Bubble, p.template.Body); err != nil {
			h.logger.Error("failed to replace pending bubble", map[string]interface{}{
				"bubble": p.Bubble,
				"error":  err,
			})
			return
		}

		metrics.IntentsDispatched.WithLabelValues(string(p.template.Intent)).Inc()
		h.logger.Debug("intent dispatched", map[string]interface{}{
			"bubble":  p.Bubble,
			"intent":  p.template.Intent,
			"elapsed": time.Since(started).String(),
		})
	})

	return p
}
