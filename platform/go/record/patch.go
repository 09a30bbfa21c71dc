package record

// Patch is a partial update to a record. Nil fields are left untouched;
// derived fields (FSICValidity, Inspectors) have no patch entry because they
// are recomputed from their sources after the patch is applied.
type Patch struct {
	OwnerName         *string `json:"ownerName,omitempty"`
	EstablishmentName *string `json:"establishmentName,omitempty"`
	BusinessAddress   *string `json:"businessAddress,omitempty"`
	ContactNumber     *string `json:"contactNumber,omitempty"`
	FSICAppNo         *string `json:"fsicAppNo,omitempty"`
	DateInspected     *string `json:"dateInspected,omitempty"`
	DateReinspected   *string `json:"dateReinspected,omitempty"`
	Inspector1        *string `json:"inspector1,omitempty"`
	Inspector2        *string `json:"inspector2,omitempty"`
	Inspector3        *string `json:"inspector3,omitempty"`
	Remarks           *string `json:"remarks,omitempty"`
	ORNumber          *string `json:"orNumber,omitempty"`
	ORAmount          *string `json:"orAmount,omitempty"`
	ORDate            *string `json:"orDate,omitempty"`
}

// Apply merges the set fields into r and refreshes the derived fields.
func (p Patch) Apply(r *Record) {
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	assign(&r.OwnerName, p.OwnerName)
	assign(&r.EstablishmentName, p.EstablishmentName)
	assign(&r.BusinessAddress, p.BusinessAddress)
	assign(&r.ContactNumber, p.ContactNumber)
	assign(&r.FSICAppNo, p.FSICAppNo)
	assign(&r.DateInspected, p.DateInspected)
	assign(&r.DateReinspected, p.DateReinspected)
	assign(&r.Inspector1, p.Inspector1)
	assign(&r.Inspector2, p.Inspector2)
	assign(&r.Inspector3, p.Inspector3)
	assign(&r.Remarks, p.Remarks)
	assign(&r.ORNumber, p.ORNumber)
	assign(&r.ORAmount, p.ORAmount)
	assign(&r.ORDate, p.ORDate)

	Refresh(r)
}

// IsZero reports whether the patch sets nothing.
func (p Patch) IsZero() bool {
	return p == Patch{}
}
