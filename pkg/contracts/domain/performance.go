package domain

// PerformanceRow is one line of the dashboard table: aggregate metrics
// for a single agent over the filtered record set.
type PerformanceRow struct {
	AgentName       string `json:"agent_name"`
	Visits          int    `json:"visits"`
	UniqueLocations int    `json:"unique_locations"`
	UnitsSold       int64  `json:"units_sold"`
	// Amount is the summed sales amount formatted for display, e.g.
	// "₹1,234.50". The raw sum is kept separately for export callers.
	Amount    string  `json:"amount"`
	AmountRaw float64 `json:"amount_raw"`
}

// DashboardView is everything the dashboard page needs in one payload:
// the default performance table plus the option sets for the filter
// dropdowns. Regions always start with the RegionAll sentinel.
type DashboardView struct {
	Rows    []PerformanceRow `json:"performance_rows"`
	Months  []string         `json:"available_months"`
	Years   []int            `json:"available_years"`
	Regions []string         `json:"available_regions"`
	// ErrorMessage is an advisory string set when the view was built
	// from fallback data. The page still renders.
	ErrorMessage string `json:"error_message,omitempty"`
}
