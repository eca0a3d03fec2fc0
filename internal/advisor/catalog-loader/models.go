// internal/advisor/catalog-loader/models.go
package catalogloader

import "agri-advisor/internal/common/ui"

type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

const (
	CatalogFlat    = "flat"
	CatalogRegions = "regions"
)

type Region struct {
	Name       string   `json:"name"`
	SubRegions []string `json:"subRegions"`
}

// FlatCatalog is a one-level option list, e.g. the crops a fertilizer
// model knows about.
type FlatCatalog struct {
	Options []string `json:"options"`
	Source  Source   `json:"source"`
}

// RegionCatalog is the two-level state → districts catalog.
type RegionCatalog struct {
	Regions []string            `json:"regions"`
	Mapping map[string][]string `json:"mapping"`
	Source  Source              `json:"source"`
}

// Controls are the selects a form binds. A nil Catalog skips the flat
// load; nil Primary and Dependent skip the region load.
type Controls struct {
	Catalog   *ui.Select
	Primary   *ui.Select
	Dependent *ui.Select
}

// InitResult reports where each bound catalog came from. A catalog that was
// not loaded is nil.
type InitResult struct {
	Flat    *FlatCatalog   `json:"flat,omitempty"`
	Regions *RegionCatalog `json:"regions,omitempty"`
}

// wire shapes

type regionPayload struct {
	States  []string            `json:"states"`
	Mapping map[string][]string `json:"mapping"`
}
