package dto

/* ===================== RESPONSES ===================== */

type StageCount struct {
	Stage string `json:"stage"`
	Count int64  `json:"count"`
}

type GeneticPlantCount struct {
	GeneticID   string `json:"genetic_id"`
	GeneticName string `json:"genetic_name"`
	GeneticSlug string `json:"genetic_slug"`
	PlantCount  int64  `json:"plant_count"`
}

// SummaryResponse feeds the dashboard charts in a single round trip.
type SummaryResponse struct {
	TotalGenetics     int64 `json:"total_genetics"`
	TotalBatches      int64 `json:"total_batches"`
	ActiveBatches     int64 `json:"active_batches"`
	TotalPlants       int64 `json:"total_plants"`
	QuarantinedPlants int64 `json:"quarantined_plants"`

	PlantsByStage   []StageCount        `json:"plants_by_stage"`
	PlantsByGenetic []GeneticPlantCount `json:"plants_by_genetic"`
}
