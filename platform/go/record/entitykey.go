package record

import (
	"regexp"
	"strings"
)

const entityKeyMaxLen = 140

var nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9]+`)

// DeriveEntityKey computes the stable identifier correlating one
// establishment's records across the current, archive, and renewal
// collections. A record that already carries a key keeps it unchanged, so
// re-derivation is idempotent. Otherwise the FSIC application number is the
// preferred base, falling back to establishment|address|owner.
func DeriveEntityKey(r Record) string {
	if key := strings.TrimSpace(r.EntityKey); key != "" {
		return key
	}

	base := strings.TrimSpace(r.FSICAppNo)
	if base == "" {
		base = r.EstablishmentName + "|" + r.BusinessAddress + "|" + r.OwnerName
	}

	return normalizeEntityKey(base)
}

func normalizeEntityKey(base string) string {
	key := nonAlphanumeric.ReplaceAllString(strings.ToUpper(base), "_")
	key = strings.Trim(key, "_")
	if len(key) > entityKeyMaxLen {
		key = key[:entityKeyMaxLen]
	}
	return key
}
