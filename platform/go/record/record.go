package record

import "time"

// StatusRenewed marks a record materialized by a renewal.
const StatusRenewed = "RENEWED"

// Record is a fire-safety inspection record. All calendar fields
// (DateInspected, FSICValidity, ORDate) are normalized YYYY-MM-DD strings;
// an empty string means "not set".
type Record struct {
	ID        string `firestore:"id" json:"id"`
	EntityKey string `firestore:"entityKey" json:"entityKey"`

	OwnerName         string `firestore:"ownerName" json:"ownerName"`
	EstablishmentName string `firestore:"establishmentName" json:"establishmentName"`
	BusinessAddress   string `firestore:"businessAddress" json:"businessAddress"`
	ContactNumber     string `firestore:"contactNumber" json:"contactNumber"`
	FSICAppNo         string `firestore:"fsicAppNo" json:"fsicAppNo"`

	DateInspected   string `firestore:"dateInspected" json:"dateInspected"`
	DateReinspected string `firestore:"dateReinspected" json:"dateReinspected"`
	// FSICValidity is derived (DateInspected + 1 year), never hand-edited.
	FSICValidity string `firestore:"fsicValidity" json:"fsicValidity"`

	Inspector1 string `firestore:"inspector1" json:"inspector1"`
	Inspector2 string `firestore:"inspector2" json:"inspector2"`
	Inspector3 string `firestore:"inspector3" json:"inspector3"`
	// Inspectors is the derived comma-joined view of the three inspector fields.
	Inspectors string `firestore:"inspectors" json:"inspectors"`

	Remarks  string `firestore:"remarks" json:"remarks"`
	ORNumber string `firestore:"orNumber" json:"orNumber"`
	ORAmount string `firestore:"orAmount" json:"orAmount"`
	ORDate   string `firestore:"orDate" json:"orDate"`

	Status        string     `firestore:"status,omitempty" json:"status,omitempty"`
	RenewedFromID string     `firestore:"renewedFromId,omitempty" json:"renewedFromId,omitempty"`
	RenewedAt     *time.Time `firestore:"renewedAt,omitempty" json:"renewedAt,omitempty"`

	CreatedAt  time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  *time.Time `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	ArchivedAt *time.Time `firestore:"archivedAt,omitempty" json:"archivedAt,omitempty"`
}

// ArchiveMonth is the container document for one closed month.
// A non-nil ClosedAt means the month is closed.
type ArchiveMonth struct {
	Month    string     `firestore:"month" json:"month"`
	ClosedAt *time.Time `firestore:"closedAt,omitempty" json:"closedAt,omitempty"`
}

// Closed reports whether the month container carries a close stamp.
func (m ArchiveMonth) Closed() bool {
	return m.ClosedAt != nil && !m.ClosedAt.IsZero()
}

// Renewal is the latest renewed snapshot for one establishment, keyed by
// entity key. It is overwritten on every renew, not appended.
type Renewal struct {
	EntityKey string    `firestore:"entityKey" json:"entityKey"`
	Record    Record    `firestore:"record" json:"record"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
