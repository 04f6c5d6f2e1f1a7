package diag

// Severity orders diagnostics; a higher value is more severe.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]struct{ upper, lower string }{
	SevInfo:    {"INFO", "info"},
	SevWarning: {"WARNING", "warning"},
	SevError:   {"ERROR", "error"},
}

// String returns the upper-case form used by the pretty and JSON outputs.
func (s Severity) String() string {
	if int(s) >= len(severityNames) {
		return "UNKNOWN"
	}
	return severityNames[s].upper
}

// Label returns the lower-case form used by the short output.
func (s Severity) Label() string {
	if int(s) >= len(severityNames) {
		return "info"
	}
	return severityNames[s].lower
}
