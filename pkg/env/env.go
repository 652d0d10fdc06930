package env

import (
	"os"
	"strings"
)

// Prefix namespaces every variable this service reads.
const Prefix = "MEDFINDER_"

// Get resolves MEDFINDER_<key>, then the bare key, then the fallback. Blank
// values count as unset.
func Get(key, fallback string) string {
	for _, name := range []string{Prefix + key, key} {
		if val := strings.TrimSpace(os.Getenv(name)); val != "" {
			return val
		}
	}
	return fallback
}
