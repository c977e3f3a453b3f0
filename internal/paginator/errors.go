package paginator

import "strings"

// ConfigError reports invalid construction input. It is surfaced before any
// transport side effect occurs.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "paginator config: " + e.Reason
}

// CapabilityError reports required transport capabilities missing at the
// destination. No markers were drawn when it is returned.
type CapabilityError struct {
	Missing []Capability
}

func (e *CapabilityError) Error() string {
	names := make([]string, len(e.Missing))
	for i, capability := range e.Missing {
		names[i] = string(capability)
	}
	return "missing transport capabilities: " + strings.Join(names, ", ")
}

func missingCapabilities(held []Capability) []Capability {
	present := make(map[Capability]bool, len(held))
	for _, capability := range held {
		present[capability] = true
	}
	var missing []Capability
	for _, capability := range RequiredCapabilities() {
		if !present[capability] {
			missing = append(missing, capability)
		}
	}
	return missing
}
