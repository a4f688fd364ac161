package dataprocessing

import (
	"fmt"
	"math/rand"
	"time"

	"fieldpulse/pkg/contracts/domain"
)

// Synthetic agent identities and regions for the demo dataset.
var (
	syntheticAgents = []string{"John Doe", "Jane Smith", "Robert Johnson", "Emma Williams"}

	syntheticRegions = []string{"MAHARASHTRA", "GUJARAT", "KARNATAKA", "DELHI"}
)

// Synthetic generates the fallback demo dataset: for each day in the
// trailing 30-day window ending at now, each synthetic agent gets 1-4
// visits at random daytime hours, with random location, region, units
// in [0,10) and amount in [0,2000). The presentation layer renders this
// instead of a hard failure when the real source is unusable.
func Synthetic(now time.Time) []domain.VisitRecord {
	return SyntheticWithRand(now, rand.New(rand.NewSource(now.UnixNano())))
}

// SyntheticWithRand is Synthetic with an injected random source so
// tests can generate a deterministic dataset.
func SyntheticWithRand(now time.Time, rng *rand.Rand) []domain.VisitRecord {
	var records []domain.VisitRecord

	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -30)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for _, agent := range syntheticAgents {
			visits := 1 + rng.Intn(4)
			for i := 0; i < visits; i++ {
				records = append(records, domain.VisitRecord{
					Timestamp:    day.Add(time.Duration(9+rng.Intn(9)) * time.Hour),
					AgentName:    agent,
					LocationName: fmt.Sprintf("Shop %d", 1+rng.Intn(99)),
					Region:       syntheticRegions[rng.Intn(len(syntheticRegions))],
					UnitsSold:    int64(rng.Intn(10)),
					Amount:       float64(rng.Intn(2000)),
				})
			}
		}
	}

	return records
}
