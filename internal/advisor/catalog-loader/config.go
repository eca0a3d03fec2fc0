// internal/advisor/catalog-loader/config.go
package catalogloader

import "agri-advisor/internal/common/config"

type Config struct {
	Form string

	CatalogEndpoint string
	CatalogField    string
	CatalogFallback []string

	MappingEndpoint string
	RegionFallback  []Region

	PrimaryPlaceholder   string
	DependentPlaceholder string
}

func LoadConfig(form string, fc config.FormConfig) *Config {
	regions := make([]Region, len(fc.RegionFallback))
	for i, r := range fc.RegionFallback {
		regions[i] = Region{Name: r.Name, SubRegions: append([]string(nil), r.SubRegions...)}
	}

	cfg := &Config{
		Form:                 form,
		CatalogEndpoint:      fc.CatalogEndpoint,
		CatalogField:         fc.CatalogField,
		CatalogFallback:      append([]string(nil), fc.CatalogFallback...),
		MappingEndpoint:      fc.MappingEndpoint,
		RegionFallback:       regions,
		PrimaryPlaceholder:   fc.PrimaryPlaceholder,
		DependentPlaceholder: fc.DependentPlaceholder,
	}
	if cfg.PrimaryPlaceholder == "" {
		cfg.PrimaryPlaceholder = "Select State"
	}
	if cfg.DependentPlaceholder == "" {
		cfg.DependentPlaceholder = "Select District"
	}
	return cfg
}
