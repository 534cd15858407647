package response_models

// PoiQueryResult is the normalized shape every enrichment tier must produce,
// regardless of which tier resolved it.
type PoiQueryResult struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Location Location `json:"location"`
	Rating   float64  `json:"rating"`
	Category string   `json:"category"`
}
