package types

import "fmt"

// SiteAll is the selector value meaning "every launch site".
const SiteAll = "ALL"

// Outcome is the binary result of a launch attempt, stored as the dataset's
// `class` column.
type Outcome int

const (
	Failure Outcome = 0
	Success Outcome = 1
)

// String returns "Success" or "Failure".
func (o Outcome) String() string {
	if o == Success {
		return "Success"
	}
	return "Failure"
}

// LaunchRecord is one row of the launch dataset.
type LaunchRecord struct {
	Site            string  `json:"site"`
	PayloadMassKg   float64 `json:"payload_mass_kg"`
	BoosterVersion  string  `json:"booster_version"`
	BoosterCategory string  `json:"booster_category"`
	Outcome         Outcome `json:"outcome"`
}

// PayloadRange is an inclusive [Low, High] payload filter in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether kg lies within the range, both ends inclusive.
func (r PayloadRange) Contains(kg float64) bool {
	return kg >= r.Low && kg <= r.High
}

// Selection is the user's current filter choice. It is owned by the UI and
// only read by the query engine.
type Selection struct {
	Site    string       `json:"site"`
	Payload PayloadRange `json:"payload"`
}

// MatchesSite reports whether a record at site passes the selection's site filter.
func (s Selection) MatchesSite(site string) bool {
	return s.Site == SiteAll || s.Site == site
}

// Fixed payload axis used for the success-rate summary.
const (
	BucketAxisMax = 10000.0
	BucketWidth   = 2000.0
	BucketCount   = 5
)

// PayloadBucket is one fixed-width interval of the payload axis. Bucket 0 is
// [0, 2000]; every later bucket is (Low, High].
type PayloadBucket struct {
	Index int     `json:"index"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Label string  `json:"label"`
}

// Buckets returns the five payload buckets in ascending order.
func Buckets() []PayloadBucket {
	out := make([]PayloadBucket, BucketCount)
	for i := range out {
		out[i] = bucket(i)
	}
	return out
}

func bucket(i int) PayloadBucket {
	low := float64(i) * BucketWidth
	high := low + BucketWidth
	return PayloadBucket{
		Index: i,
		Low:   low,
		High:  high,
		Label: fmt.Sprintf("%.0f-%.0f kg", low, high),
	}
}

// BucketFor returns the bucket holding kg. The second result is false when kg
// falls outside [0, BucketAxisMax].
func BucketFor(kg float64) (PayloadBucket, bool) {
	if kg < 0 || kg > BucketAxisMax {
		return PayloadBucket{}, false
	}
	if kg <= BucketWidth {
		return bucket(0), true
	}
	// (Low, High]: an exact multiple of the width belongs to the bucket below it.
	i := int(kg / BucketWidth)
	if float64(i)*BucketWidth == kg {
		i--
	}
	return bucket(i), true
}
