package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveEntityKeyPrefersExistingKey(t *testing.T) {
	r := Record{EntityKey: "2026_00123", FSICAppNo: "different-base"}
	require.Equal(t, "2026_00123", DeriveEntityKey(r))

	// Re-derivation of an annotated record is stable.
	r.EntityKey = DeriveEntityKey(r)
	require.Equal(t, "2026_00123", DeriveEntityKey(r))
}

func TestDeriveEntityKeyIgnoresBlankExistingKey(t *testing.T) {
	r := Record{EntityKey: "   ", FSICAppNo: "2026-00123"}
	require.Equal(t, "2026_00123", DeriveEntityKey(r))
}

func TestDeriveEntityKeyFromFSICAppNo(t *testing.T) {
	r := Record{FSICAppNo: "2026-00123"}
	require.Equal(t, "2026_00123", DeriveEntityKey(r))
}

func TestDeriveEntityKeyFallbackConcatenation(t *testing.T) {
	r := Record{
		EstablishmentName: "Dela Cruz Bakery",
		BusinessAddress:   "123 Rizal St., Quezon City",
		OwnerName:         "Juan Dela Cruz",
	}
	require.Equal(t, "DELA_CRUZ_BAKERY_123_RIZAL_ST_QUEZON_CITY_JUAN_DELA_CRUZ", DeriveEntityKey(r))
}

func TestDeriveEntityKeyNormalization(t *testing.T) {
	r := Record{FSICAppNo: "  --fsic/2026 @ no.123--  "}
	require.Equal(t, "FSIC_2026_NO_123", DeriveEntityKey(r))
}

func TestDeriveEntityKeyTruncates(t *testing.T) {
	r := Record{FSICAppNo: strings.Repeat("A", 200)}
	key := DeriveEntityKey(r)
	require.Len(t, key, 140)
}

func TestDeriveEntityKeyDeterministic(t *testing.T) {
	r := Record{
		EstablishmentName: "Sari-Sari Store #7",
		BusinessAddress:   "Purok 5",
		OwnerName:         "Maria Santos",
	}
	require.Equal(t, DeriveEntityKey(r), DeriveEntityKey(r))
}
