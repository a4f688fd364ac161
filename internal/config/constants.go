package config

// Recognized source column names. Header matching is case-insensitive
// and whitespace-trimmed; these are the canonical spellings.
const (
	ColumnTimestamp = "Timestamp"
	ColumnAgent     = "BDM Name"
	ColumnLocation  = "Shop Name"
	ColumnRegion    = "State"
	ColumnUnits     = "Keys Sold"
	ColumnAmount    = "Key Amount"
)

// DefaultRegions returns the fixed uppercase region list used for the
// filter dropdown when the loaded data has no region values of its own.
func DefaultRegions() []string {
	return []string{
		"ANDHRA PRADESH", "ARUNACHAL PRADESH", "ASSAM", "BIHAR", "CHHATTISGARH",
		"GOA", "GUJARAT", "HARYANA", "HIMACHAL PRADESH", "JHARKHAND",
		"KARNATAKA", "KERALA", "MADHYA PRADESH", "MAHARASHTRA", "MANIPUR",
		"MEGHALAYA", "MIZORAM", "NAGALAND", "ODISHA", "PUNJAB",
		"RAJASTHAN", "SIKKIM", "TAMIL NADU", "TELANGANA", "TRIPURA",
		"UTTAR PRADESH", "UTTARAKHAND", "WEST BENGAL",
	}
}
