package catalogloader

func fallbackFlat(cfg *Config) *FlatCatalog {
	return &FlatCatalog{
		Options: append([]string(nil), cfg.CatalogFallback...),
		Source:  SourceFallback,
	}
}

func fallbackRegions(cfg *Config) *RegionCatalog {
	c := &RegionCatalog{
		Regions: make([]string, 0, len(cfg.RegionFallback)),
		Mapping: make(map[string][]string, len(cfg.RegionFallback)),
		Source:  SourceFallback,
	}
	for _, r := range cfg.RegionFallback {
		c.Regions = append(c.Regions, r.Name)
		c.Mapping[r.Name] = append([]string(nil), r.SubRegions...)
	}
	return c
}
