package config

import "fmt"

const (
	DefaultTimeZone = "Europe/Kyiv"

	// Nightly account-status reconciliation, local time.
	ReconcileSchedule = "30 2 * * *"

	MaxUploadBytes = 32 << 20

	DefaultGatewayPort = 8081
	DefaultZvitPort    = 7143

	DefaultMaxUsers          = 50
	DefaultSessionTimeoutMin = 480
)

// Int reads an integer out of a YAML-decoded service config map. YAML hands
// back int, int64 or float64 depending on the source; strings are parsed.
func Int(cfg map[string]interface{}, key string, def int) int {
	if cfg == nil {
		return def
	}
	v, ok := cfg[key]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		var parsed int
		if _, err := fmt.Sscanf(t, "%d", &parsed); err == nil {
			return parsed
		}
	}
	return def
}

// Strings reads a string list out of a YAML-decoded service config map.
// YAML decodes sequences as []interface{}; non-string items are skipped.
func Strings(cfg map[string]interface{}, key string) []string {
	if cfg == nil {
		return nil
	}
	v, ok := cfg[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
