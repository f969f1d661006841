package normalize

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
)

// rePostalCity matches "<digits> <city>" as found in the second address segment.
var rePostalCity = regexp.MustCompile(`^(\d+)\s+(.+)$`)

// ParseAddress splits a free-text address on commas:
// segment 1 is the street, segment 2 is "<postal code> <city>" or just the city,
// segment 3 is the country. Further segments are ignored and State is never set.
// Empty input yields an all-empty Address.
func ParseAddress(s string) entity.Address {
	var out entity.Address
	if strings.TrimSpace(s) == "" {
		return out
	}

	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) >= 1 {
		out.Address = parts[0]
	}
	if len(parts) >= 2 && parts[1] != "" {
		if m := rePostalCity.FindStringSubmatch(parts[1]); m != nil {
			out.PostalCode = m[1]
			out.City = m[2]
		} else {
			out.City = parts[1]
		}
	}
	if len(parts) >= 3 {
		out.Country = parts[2]
	}
	return out
}
