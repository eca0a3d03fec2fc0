package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agri-advisor/internal/common/logger"
)

func TestObservability_NilIsSafe(t *testing.T) {
	var o *Observability
	var r Recorder = o

	assert.NotPanics(t, func() {
		r.RecordCycle(context.Background(), "predict-submit", "success")
		r.RecordCycleDuration(context.Background(), "predict-submit", time.Second, "success")
		o.Shutdown()
	})
}

func TestObservability_Record(t *testing.T) {
	o := New("agri-advisor-test", logger.NewTestLogger(t))
	defer o.Shutdown()

	assert.NotPanics(t, func() {
		o.RecordCycle(context.Background(), "catalog-loader", "fallback")
		o.RecordCycleDuration(context.Background(), "catalog-loader", 25*time.Millisecond, "fallback")
	})
}
