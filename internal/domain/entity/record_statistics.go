package entity

// RecordStatistics holds aggregate figures over a set of SDAI records.
// All values are zero when no records match.
type RecordStatistics struct {
	RecordCount  int64   `json:"record_count"`
	AvgSDAIScore float64 `json:"avg_sdai_score"`
	MinSDAIScore float64 `json:"min_sdai_score"`
	MaxSDAIScore float64 `json:"max_sdai_score"`
}
