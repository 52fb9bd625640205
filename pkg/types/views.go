package types

// OutcomeSlice is one wedge of the outcome pie chart. For the all-sites view
// Label is a site name and Count its successes; for a single site Label is
// "Success" or "Failure" and Outcome is set accordingly.
type OutcomeSlice struct {
	Label   string   `json:"label"`
	Outcome *Outcome `json:"outcome,omitempty"`
	Count   int      `json:"count"`
}

// ScatterPoint is one launch projected for the payload/outcome scatter chart.
type ScatterPoint struct {
	PayloadMassKg   float64 `json:"payload_mass_kg"`
	Outcome         Outcome `json:"outcome"`
	BoosterVersion  string  `json:"booster_version"`
	BoosterCategory string  `json:"booster_category"`
	Site            string  `json:"site"`
}

// BucketStat is the filtered membership of one payload bucket. Rate is nil
// when the bucket has no members.
type BucketStat struct {
	Bucket PayloadBucket `json:"bucket"`
	Count  int           `json:"count"`
	Rate   *float64      `json:"rate,omitempty"`
}

// PayloadSummary names the payload buckets with the highest and lowest
// success rate. Rates are fractions in [0, 1].
type PayloadSummary struct {
	Highest     PayloadBucket `json:"highest"`
	HighestRate float64       `json:"highest_rate"`
	Lowest      PayloadBucket `json:"lowest"`
	LowestRate  float64       `json:"lowest_rate"`
	Buckets     []BucketStat  `json:"buckets"`
}

// BoosterSummary is the booster version with the best success rate.
type BoosterSummary struct {
	BoosterVersion string  `json:"booster_version"`
	SuccessRate    float64 `json:"success_rate"`
	Launches       int     `json:"launches"`
}
