package predictsubmit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "agri-advisor/internal/common/errors"
	httpc "agri-advisor/internal/common/http"
	"agri-advisor/internal/common/logger"
	"agri-advisor/internal/common/ui"
)

// ==========================
// Test Doubles
// ==========================

// countingButton records every mutation so tests can check the control is
// restored exactly once.
type countingButton struct {
	mu          sync.Mutex
	label       string
	enabled     bool
	labelSets   int
	enabledSets int
}

func newCountingButton(label string) *countingButton {
	return &countingButton{label: label, enabled: true}
}

func (b *countingButton) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

func (b *countingButton) SetLabel(label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.label = label
	b.labelSets++
}

func (b *countingButton) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

func (b *countingButton) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
	b.enabledSets++
}

func (b *countingButton) counts() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.labelSets, b.enabledSets
}

// ==========================
// Test Helper Functions
// ==========================

func createCropConfig() *Config {
	return &Config{
		Form:     "crop",
		Endpoint: "/api/predict_crop",
		Fields: []Field{
			{Name: "state", Kind: "string"},
			{Name: "N", Kind: "number"},
			{Name: "ph", Kind: "number"},
		},
		ResponseField: "recommended_crop",
		ResultTitle:   "🌾 Recommended Crop:",
		SubmitLabel:   "Predict Crop",
		BusyLabel:     "Predicting...",
		Samples:       map[string]string{"n": "90", "ph": "6.5"},
	}
}

func createSuitabilityConfig() *Config {
	return &Config{
		Form:                  "suitability",
		Endpoint:              "/check",
		Fields:                []Field{{Name: "crop", Kind: "string"}, {Name: "temperature", Kind: "string"}},
		ResponseField:         "result",
		AlternativesField:     "top_crops",
		AlternativeLabelField: "crop",
		ResultTitle:           "Top Recommended Crops",
		BusyLabel:             "Checking...",
	}
}

func replyServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestHandler(t *testing.T, cfg *Config, baseURL string, button Control, panel Panel) *Handler {
	t.Helper()
	h, err := NewHandler(cfg, httpc.NewClient(baseURL, 2*time.Second), button, panel, nil, logger.NewTestLogger(t))
	require.NoError(t, err)
	return h
}

// ==========================
// Serialization Tests
// ==========================

func TestBuildRequest(t *testing.T) {
	fields := []Field{
		{Name: "state", Kind: "string"},
		{Name: "temperature", Kind: "string"},
		{Name: "N", Kind: "number"},
		{Name: "P", Kind: "number"},
		{Name: "K", Kind: "number"},
		{Name: "ph", Kind: "number"},
		{Name: "rainfall", Kind: "number"},
	}
	values := FormValues{
		"state":       "Karnataka",
		"temperature": "28.5",
		"N":           "90",
		"P":           "",
		"K":           "abc",
		"ph":          " 6.5 ",
		"extra":       "dropped",
	}

	req := BuildRequest(fields, values)

	assert.Equal(t, "Karnataka", req["state"])
	assert.Equal(t, "28.5", req["temperature"], "string fields are verbatim")
	assert.Equal(t, float64(90), req["N"])
	assert.Equal(t, float64(0), req["P"], "blank number is zero")
	assert.Nil(t, req["K"], "unparseable number is null")
	assert.Contains(t, req, "K")
	assert.Equal(t, 6.5, req["ph"])
	assert.Equal(t, float64(0), req["rainfall"], "missing number is zero")
	assert.NotContains(t, req, "extra")

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"K":null`)
}

func TestBuildRequest_NonFinite(t *testing.T) {
	req := BuildRequest([]Field{{Name: "x", Kind: "number"}, {Name: "y", Kind: "number"}}, FormValues{"x": "NaN", "y": "Infinity"})
	assert.Nil(t, req["x"])
	assert.Nil(t, req["y"])
	_, err := json.Marshal(req)
	assert.NoError(t, err)
}

func TestFormatConfidence(t *testing.T) {
	assert.Equal(t, "87.65%", FormatConfidence(0.8765))
	assert.Equal(t, "100.00%", FormatConfidence(1))
	assert.Equal(t, "0.00%", FormatConfidence(0))
	assert.Equal(t, "12.35%", FormatConfidence(0.12345))
}

// ==========================
// Submit Tests
// ==========================

func TestHandler_Submit_Outcomes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		outcome  Outcome
		text     string
		htmlPart string
		errCode  apperrors.ErrorCode
	}{
		{
			name:     "success",
			status:   http.StatusOK,
			body:     `{"recommended_crop":"rice"}`,
			outcome:  OutcomeSuccess,
			htmlPart: "<strong>rice</strong>",
		},
		{
			name:    "application error",
			status:  http.StatusBadRequest,
			body:    `{"error":"invalid input"}`,
			outcome: OutcomeServerError,
			text:    "Error: invalid input",
			errCode: apperrors.ErrCodePredictionServerError,
		},
		{
			name:    "error without message",
			status:  http.StatusInternalServerError,
			body:    `{}`,
			outcome: OutcomeServerError,
			text:    "Error: Prediction failed",
			errCode: apperrors.ErrCodePredictionServerError,
		},
		{
			name:    "ok without result",
			status:  http.StatusOK,
			body:    `{"message":"done"}`,
			outcome: OutcomeServerError,
			text:    "Error: Prediction failed",
			errCode: apperrors.ErrCodePredictionServerError,
		},
		{
			name:    "ok with empty result",
			status:  http.StatusOK,
			body:    `{"recommended_crop":""}`,
			outcome: OutcomeServerError,
			text:    "Error: Prediction failed",
			errCode: apperrors.ErrCodePredictionServerError,
		},
		{
			name:    "undecodable body",
			status:  http.StatusOK,
			body:    `<html>oops</html>`,
			outcome: OutcomeUnreachable,
			text:    "Server unreachable.",
			errCode: apperrors.ErrCodePredictionTransportFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := replyServer(t, tt.status, tt.body)
			button := ui.NewButton("Predict Crop")
			panel := ui.NewResultPanel()
			h := newTestHandler(t, createCropConfig(), server.URL, button, panel)

			res, err := h.Submit(context.Background(), FormValues{"state": "Karnataka", "N": "90"})
			require.NoError(t, err)

			assert.Equal(t, tt.outcome, res.Outcome)
			if tt.htmlPart != "" {
				assert.Contains(t, panel.HTML(), tt.htmlPart)
				assert.Contains(t, panel.HTML(), "Recommended Crop:")
				assert.Empty(t, panel.Text())
				require.NotNil(t, res.Result)
				assert.Nil(t, res.Err)
			} else {
				assert.Equal(t, tt.text, panel.Text())
				assert.Empty(t, panel.HTML())
				assert.True(t, apperrors.IsCode(res.Err, tt.errCode))
			}

			assert.Equal(t, "Predict Crop", button.Label())
			assert.True(t, button.Enabled())
			assert.False(t, h.InFlight())
		})
	}
}

func TestHandler_Submit_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	button := newCountingButton("Predict Crop")
	panel := ui.NewResultPanel()
	h := newTestHandler(t, createCropConfig(), url, button, panel)

	res, err := h.Submit(context.Background(), FormValues{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnreachable, res.Outcome)
	assert.Equal(t, "Server unreachable.", panel.Text())
	assert.True(t, apperrors.IsCode(res.Err, apperrors.ErrCodePredictionTransportFailed))

	labelSets, enabledSets := button.counts()
	assert.Equal(t, 2, labelSets, "busy label once, restore once")
	assert.Equal(t, 2, enabledSets, "disable once, restore once")
	assert.Equal(t, "Predict Crop", button.Label())
	assert.True(t, button.Enabled())
}

func TestHandler_Submit_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	button := ui.NewButton("Predict Crop")
	panel := ui.NewResultPanel()
	h, err := NewHandler(createCropConfig(), httpc.NewClient(server.URL, 50*time.Millisecond), button, panel, nil, logger.NewTestLogger(t))
	require.NoError(t, err)

	res, err := h.Submit(context.Background(), FormValues{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnreachable, res.Outcome)
	assert.True(t, button.Enabled(), "a hung backend does not leave the control disabled")
}

func TestHandler_Submit_RestoresExactlyOnce(t *testing.T) {
	for _, body := range []string{`{"recommended_crop":"rice"}`, `{"error":"invalid input"}`} {
		server := replyServer(t, http.StatusOK, body)
		button := newCountingButton("Predict Crop")
		h := newTestHandler(t, createCropConfig(), server.URL, button, ui.NewResultPanel())

		_, err := h.Submit(context.Background(), FormValues{})
		require.NoError(t, err)

		labelSets, enabledSets := button.counts()
		assert.Equal(t, 2, labelSets)
		assert.Equal(t, 2, enabledSets)
		assert.Equal(t, "Predict Crop", button.Label())
	}
}

func TestHandler_Submit_KeepsDisabledControlDisabled(t *testing.T) {
	server := replyServer(t, http.StatusOK, `{"recommended_crop":"rice"}`)
	button := ui.NewButton("Predict Crop")
	button.SetEnabled(false)
	h := newTestHandler(t, createCropConfig(), server.URL, button, ui.NewResultPanel())

	_, err := h.Submit(context.Background(), FormValues{})
	require.NoError(t, err)
	assert.False(t, button.Enabled(), "restores the captured state")
}

func TestHandler_Submit_RejectsOverlap(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{"recommended_crop":"rice"}`))
	}))
	defer server.Close()

	button := newCountingButton("Predict Crop")
	h := newTestHandler(t, createCropConfig(), server.URL, button, ui.NewResultPanel())

	done := make(chan *RenderedResult, 1)
	go func() {
		res, err := h.Submit(context.Background(), FormValues{})
		assert.NoError(t, err)
		done <- res
	}()

	require.Eventually(t, func() bool {
		labelSets, _ := button.counts()
		return labelSets == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "Predicting...", button.Label())
	assert.False(t, button.Enabled())

	res, err := h.Submit(context.Background(), FormValues{})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSubmissionInFlight))

	labelSets, enabledSets := button.counts()
	assert.Equal(t, 1, labelSets, "rejected submit leaves the control alone")
	assert.Equal(t, 1, enabledSets)

	close(release)
	first := <-done
	assert.Equal(t, OutcomeSuccess, first.Outcome)
	assert.True(t, button.Enabled())
}

func TestHandler_Submit_PostsConfiguredFields(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/predict_crop", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"recommended_crop":"maize"}`))
	}))
	defer server.Close()

	h := newTestHandler(t, createCropConfig(), server.URL, ui.NewButton("Predict Crop"), ui.NewResultPanel())
	_, err := h.Submit(context.Background(), FormValues{"state": "Punjab", "N": "x", "ph": ""})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"state": "Punjab", "N": nil, "ph": float64(0)}, got)
}

func TestHandler_Submit_RankedAlternatives(t *testing.T) {
	server := replyServer(t, http.StatusOK,
		`{"result":"Suitable","top_crops":[{"crop":"rice","confidence":0.8765},{"crop":"maize","confidence":0.1}]}`)
	panel := ui.NewResultPanel()
	h := newTestHandler(t, createSuitabilityConfig(), server.URL, ui.NewButton("Check"), panel)

	res, err := h.Submit(context.Background(), FormValues{"crop": "rice", "temperature": "28"})
	require.NoError(t, err)
	require.Equal(t, OutcomeSuccess, res.Outcome)

	assert.Equal(t, "Suitable", res.Result.Label)
	assert.Equal(t, []Alternative{{Label: "rice", Confidence: 0.8765}, {Label: "maize", Confidence: 0.1}}, res.Result.Alternatives)
	assert.Contains(t, panel.HTML(), "<li>rice (87.65%)</li>")
	assert.Contains(t, panel.HTML(), "<li>maize (10.00%)</li>")
	assert.Contains(t, panel.HTML(), "Top Recommended Crops")
}

func TestHandler_Submit_EscapesServerText(t *testing.T) {
	server := replyServer(t, http.StatusOK, `{"recommended_crop":"<script>x</script>"}`)
	panel := ui.NewResultPanel()
	h := newTestHandler(t, createCropConfig(), server.URL, ui.NewButton("Predict Crop"), panel)

	_, err := h.Submit(context.Background(), FormValues{})
	require.NoError(t, err)
	assert.NotContains(t, panel.HTML(), "<script>")
	assert.Contains(t, panel.HTML(), "&lt;script&gt;")
}

func TestHandler_Samples(t *testing.T) {
	h := newTestHandler(t, createCropConfig(), "", ui.NewButton("Predict Crop"), ui.NewResultPanel())
	assert.Equal(t, FormValues{"N": "90", "ph": "6.5"}, h.Samples())
}

func TestNewHandler_Preconditions(t *testing.T) {
	client := httpc.NewClient("", time.Second)
	log := logger.NewTestLogger(t)

	_, err := NewHandler(createCropConfig(), client, nil, ui.NewResultPanel(), nil, log)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePreconditionViolation))

	_, err = NewHandler(createCropConfig(), client, ui.NewButton("x"), nil, nil, log)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePreconditionViolation))
}
