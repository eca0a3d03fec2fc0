package catalogloader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "agri-advisor/internal/common/errors"
	httpc "agri-advisor/internal/common/http"
	"agri-advisor/internal/common/logger"
	"agri-advisor/internal/common/metrics"
	"agri-advisor/internal/common/observability"
	"agri-advisor/internal/common/ui"
	"agri-advisor/internal/common/validation"
)

const (
	Component = "catalog-loader"
)

var (
	ErrNoEndpoint      = errors.New("no endpoint configured")
	ErrUnexpectedReply = errors.New("unexpected catalog reply")
)

// Handler populates a form's selects from the backend, substituting the
// configured fallback for any catalog that cannot be fetched.
type Handler struct {
	config   *Config
	client   *httpc.Client
	controls Controls
	store    *RegionStore
	recorder observability.Recorder
	logger   logger.Logger
}

func NewHandler(config *Config, client *httpc.Client, controls Controls, recorder observability.Recorder, log logger.Logger) (*Handler, error) {
	if config == nil {
		return nil, apperrors.NewPreconditionViolationError("catalog config")
	}
	if client == nil {
		return nil, apperrors.NewPreconditionViolationError("http client")
	}
	if (controls.Primary == nil) != (controls.Dependent == nil) {
		return nil, apperrors.NewPreconditionViolationError("primary or dependent select")
	}
	return &Handler{
		config:   config,
		client:   client,
		controls: controls,
		store:    NewRegionStore(),
		recorder: recorder,
		logger: logger.ForComponent(log, Component).With(map[string]interface{}{
			"form": config.Form,
		}),
	}, nil
}

// Store exposes the region mapping currently bound to the primary select.
func (h *Handler) Store() *RegionStore {
	return h.store
}

// Initialize runs the flat and region loads concurrently and returns once
// both controls are bound. Load failures are absorbed by the fallbacks, so
// the only error is a cancelled ctx.
func (h *Handler) Initialize(ctx context.Context) (*InitResult, error) {
	started := time.Now()
	result := &InitResult{}

	eg, egCtx := errgroup.WithContext(ctx)

	if h.controls.Catalog != nil {
		eg.Go(func() error {
			result.Flat = h.loadFlat(egCtx)
			return nil
		})
	}

	if h.controls.Primary != nil {
		eg.Go(func() error {
			result.Regions = h.loadRegions(egCtx)
			return nil
		})
	}

	_ = eg.Wait()

	outcome := string(SourceRemote)
	if (result.Flat != nil && result.Flat.Source == SourceFallback) ||
		(result.Regions != nil && result.Regions.Source == SourceFallback) {
		outcome = string(SourceFallback)
	}
	if h.recorder != nil {
		h.recorder.RecordCycle(ctx, Component, outcome)
		h.recorder.RecordCycleDuration(ctx, Component, time.Since(started), outcome)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// OnPrimaryChange rebuilds the dependent select for the chosen primary key.
// It is bound as the primary select's change listener by Initialize.
func (h *Handler) OnPrimaryChange(key string) {
	if h.controls.Dependent == nil {
		return
	}

	opts := []ui.Option{{Value: "", Label: h.config.DependentPlaceholder}}
	if key != "" {
		if subs, ok := h.store.SubRegions(key); ok {
			for _, s := range subs {
				opts = append(opts, ui.Option{Value: s, Label: s})
			}
		}
	}
	h.controls.Dependent.SetOptions(opts)
}

func (h *Handler) loadFlat(ctx context.Context) *FlatCatalog {
	catalog, err := h.fetchFlat(ctx)
	if err != nil {
		h.logFetchFailure(CatalogFlat, h.config.CatalogEndpoint, err)
		catalog = fallbackFlat(h.config)
	}

	opts := make([]ui.Option, len(catalog.Options))
	for i, o := range catalog.Options {
		opts[i] = ui.Option{Value: o, Label: o}
	}
	h.controls.Catalog.SetOptions(opts)

	metrics.CatalogLoads.WithLabelValues(CatalogFlat, string(catalog.Source)).Inc()
	h.logger.Info("catalog bound", map[string]interface{}{
		"catalog": CatalogFlat,
		"source":  catalog.Source,
		"count":   len(catalog.Options),
	})
	return catalog
}

func (h *Handler) loadRegions(ctx context.Context) *RegionCatalog {
	catalog, err := h.fetchRegions(ctx)
	if err != nil {
		h.logFetchFailure(CatalogRegions, h.config.MappingEndpoint, err)
		catalog = fallbackRegions(h.config)
	}

	h.store.Replace(*catalog)

	opts := make([]ui.Option, 0, len(catalog.Regions)+1)
	opts = append(opts, ui.Option{Value: "", Label: h.config.PrimaryPlaceholder})
	for _, r := range catalog.Regions {
		opts = append(opts, ui.Option{Value: r, Label: r})
	}
	h.controls.Primary.SetOptions(opts)
	h.controls.Primary.OnChange(h.OnPrimaryChange)
	h.OnPrimaryChange(h.controls.Primary.Value())

	metrics.CatalogLoads.WithLabelValues(CatalogRegions, string(catalog.Source)).Inc()
	h.logger.Info("catalog bound", map[string]interface{}{
		"catalog": CatalogRegions,
		"source":  catalog.Source,
		"count":   len(catalog.Regions),
	})
	return catalog
}

func (h *Handler) fetchFlat(ctx context.Context) (*FlatCatalog, error) {
	if h.config.CatalogEndpoint == "" {
		return nil, ErrNoEndpoint
	}

	resp, err := h.fetch(ctx, h.config.CatalogEndpoint, validation.FlatCatalogSchema(h.config.CatalogField))
	if err != nil {
		return nil, err
	}

	var payload map[string]json.RawMessage
	if err := resp.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedReply, err)
	}
	var options []string
	if err := json.Unmarshal(payload[h.config.CatalogField], &options); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedReply, err)
	}

	return &FlatCatalog{
		Options: options,
		Source:  SourceRemote,
	}, nil
}

func (h *Handler) fetchRegions(ctx context.Context) (*RegionCatalog, error) {
	if h.config.MappingEndpoint == "" {
		return nil, ErrNoEndpoint
	}

	resp, err := h.fetch(ctx, h.config.MappingEndpoint, validation.RegionCatalogSchema())
	if err != nil {
		return nil, err
	}

	var payload regionPayload
	if err := resp.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedReply, err)
	}

	return &RegionCatalog{
		Regions: payload.States,
		Mapping: payload.Mapping,
		Source:  SourceRemote,
	}, nil
}

// fetch GETs endpoint and checks that a 2xx body matches schema.
func (h *Handler) fetch(ctx context.Context, endpoint string, schema map[string]interface{}) (*httpc.Response, error) {
	resp, err := h.client.GetJSON(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedReply, resp.StatusCode)
	}

	var doc interface{}
	if err := resp.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedReply, err)
	}
	if err := validation.Validate(schema, doc).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedReply, err)
	}
	return resp, nil
}

func (h *Handler) logFetchFailure(catalog, endpoint string, err error) {
	if errors.Is(err, ErrNoEndpoint) {
		h.logger.Debug("no endpoint configured, using fallback", map[string]interface{}{
			"catalog": catalog,
		})
		return
	}
	stdErr := apperrors.NewCatalogFetchFailedError(catalog, endpoint, err)
	h.logger.Warn("catalog fetch failed, using fallback", stdErr.Fields())
}
