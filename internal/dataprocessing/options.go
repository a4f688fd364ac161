package dataprocessing

import (
	"sort"
	"time"

	"fieldpulse/pkg/contracts/domain"
)

// OptionSets holds the selectable values for the dashboard filter
// controls, derived from the loaded record set.
type OptionSets struct {
	Months  []string
	Years   []int
	Regions []string
}

// BuildOptions derives the filter dropdown contents from the record
// set. Months are in calendar order, years ascending, regions sorted
// with the all-regions choice first. When the data carries no region
// values the configured region list is used instead so the control is
// never empty.
func BuildOptions(records []domain.VisitRecord, configuredRegions []string) OptionSets {
	monthSeen := make(map[time.Month]struct{})
	yearSeen := make(map[int]struct{})
	regionSeen := make(map[string]struct{})

	for _, record := range records {
		monthSeen[record.Timestamp.Month()] = struct{}{}
		yearSeen[record.Timestamp.Year()] = struct{}{}
		if record.Region != "" && record.Region != domain.UnknownField {
			regionSeen[record.Region] = struct{}{}
		}
	}

	months := make([]string, 0, len(monthSeen))
	for m := time.January; m <= time.December; m++ {
		if _, ok := monthSeen[m]; ok {
			months = append(months, m.String())
		}
	}

	years := make([]int, 0, len(yearSeen))
	for y := range yearSeen {
		years = append(years, y)
	}
	sort.Ints(years)

	regions := make([]string, 0, len(regionSeen))
	for r := range regionSeen {
		regions = append(regions, r)
	}
	if len(regions) == 0 {
		regions = append(regions, configuredRegions...)
	}
	sort.Strings(regions)

	out := make([]string, 0, len(regions)+1)
	out = append(out, domain.RegionAll)
	out = append(out, regions...)

	return OptionSets{Months: months, Years: years, Regions: out}
}
