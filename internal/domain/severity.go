package domain

// SeverityLevel is one row of the fixed severity table.
type SeverityLevel struct {
	Value int    `json:"value"`
	Color string `json:"color"`
	Label string `json:"label"`
}

const (
	MinSeverity = 1
	MaxSeverity = 5
)

var severityLevels = [...]SeverityLevel{
	{Value: 1, Color: "#4CAF50", Label: "Minor"},
	{Value: 2, Color: "#8BC34A", Label: "Low"},
	{Value: 3, Color: "#FFC107", Label: "Moderate"},
	{Value: 4, Color: "#FF9800", Label: "High"},
	{Value: 5, Color: "#F44336", Label: "Critical"},
}

// unknownSeverity renders severities the table does not cover.
var unknownSeverity = SeverityLevel{Color: "#9E9E9E", Label: "Unknown"}

// ValidSeverity reports whether s is in the table.
func ValidSeverity(s int) bool {
	return s >= MinSeverity && s <= MaxSeverity
}

// Severity looks up the table row for s. Out-of-range values get the grey
// "Unknown" row carrying s as its value.
func Severity(s int) SeverityLevel {
	if !ValidSeverity(s) {
		lvl := unknownSeverity
		lvl.Value = s
		return lvl
	}
	return severityLevels[s-MinSeverity]
}

// SeverityColor returns the display color for s.
func SeverityColor(s int) string { return Severity(s).Color }

// SeverityLabel returns the display label for s.
func SeverityLabel(s int) string { return Severity(s).Label }

// SeverityLevels returns the table in ascending order.
func SeverityLevels() []SeverityLevel {
	out := make([]SeverityLevel, len(severityLevels))
	copy(out, severityLevels[:])
	return out
}
