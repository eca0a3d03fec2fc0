package config

// DefaultCropCatalog is the fertilizer form's crop list when /meta is unavailable.
var DefaultCropCatalog = []string{
	"Maize", "Sugarcane", "Cotton", "Tobacco", "Paddy", "Barley",
	"Wheat", "Millets", "Oil seeds", "Pulses", "Ground Nuts",
}

// DefaultRegionCatalog is the crop form's state/district fallback.
var DefaultRegionCatalog = []RegionConfig{
	{Name: "Karnataka", SubRegions: []string{"Bengaluru Urban", "Mysuru", "Udupi", "Dakshina Kannada"}},
	{Name: "Maharashtra", SubRegions: []string{"Pune", "Nashik", "Nagpur"}},
	{Name: "Punjab", SubRegions: []string{"Ludhiana", "Amritsar", "Patiala"}},
	{Name: "Tamil Nadu", SubRegions: []string{"Chennai", "Coimbatore", "Madurai"}},
}

// DefaultForms returns the three forms the advisor ships with: crop
// recommendation (state/district cascade), fertilizer recommendation (crop
// catalog) and the ranked suitability check.
func DefaultForms() map[string]FormConfig {
	return map[string]FormConfig{
		"crop": {
			MappingEndpoint: "/states",
			RegionFallback:  cloneRegions(DefaultRegionCatalog),
			PredictEndpoint: "/api/predict_crop",
			RequestFields: []FieldConfig{
				{Name: "state", Kind: FieldKindString},
				{Name: "district", Kind: FieldKindString},
				{Name: "N", Kind: FieldKindNumber},
				{Name: "P", Kind: FieldKindNumber},
				{Name: "K", Kind: FieldKindNumber},
				{Name: "temperature", Kind: FieldKindNumber},
				{Name: "humidity", Kind: FieldKindNumber},
				{Name: "ph", Kind: FieldKindNumber},
				{Name: "rainfall", Kind: FieldKindNumber},
			},
			ResponseField: "recommended_crop",
			ResultTitle:   "🌾 Recommended Crop:",
			SubmitLabel:   "Predict Crop",
			BusyLabel:     "Predicting...",
			Samples: map[string]string{
				"N": "90", "P": "42", "K": "43", "ph": "6.5",
				"temperature": "28", "humidity": "75", "rainfall": "220",
			},
		},
		"fertilizer": {
			CatalogEndpoint: "/meta",
			CatalogField:    "fert_crop_classes",
			CatalogFallback: append([]string(nil), DefaultCropCatalog...),
			PredictEndpoint: "/predict_fertilizer",
			RequestFields: []FieldConfig{
				{Name: "crop", Kind: FieldKindString},
				{Name: "soil_type", Kind: FieldKindString},
				{Name: "N", Kind: FieldKindNumber},
				{Name: "P", Kind: FieldKindNumber},
				{Name: "K", Kind: FieldKindNumber},
				{Name: "moisture", Kind: FieldKindNumber},
				{Name: "temperature", Kind: FieldKindNumber},
				{Name: "humidity", Kind: FieldKindNumber},
			},
			ResponseField: "fertilizer",
			ResultTitle:   "🧪 Recommended Fertilizer:",
			SubmitLabel:   "Predict Fertilizer",
			BusyLabel:     "Predicting...",
			Samples: map[string]string{
				"crop": "Maize", "soil_type": "Loamy",
				"N": "80", "P": "30", "K": "40",
				"moisture": "35", "temperature": "30", "humidity": "60",
			},
		},
		"suitability": {
			PredictEndpoint: "/check",
			// The suitability backend parses these itself.
			RequestFields: []FieldConfig{
				{Name: "crop", Kind: FieldKindString},
				{Name: "temperature", Kind: FieldKindString},
				{Name: "humidity", Kind: FieldKindString},
				{Name: "rainfall", Kind: FieldKindString},
			},
			ResponseField:         "result",
			AlternativesField:     "top_crops",
			AlternativeLabelField: "crop",
			ResultTitle:           "Top Recommended Crops",
			SubmitLabel:           "Check Suitability",
			BusyLabel:             "Checking...",
		},
	}
}

func cloneRegions(in []RegionConfig) []RegionConfig {
	out := make([]RegionConfig, len(in))
	for i, r := range in {
		out[i] = RegionConfig{Name: r.Name, SubRegions: append([]string(nil), r.SubRegions...)}
	}
	return out
}
