package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DosageForm is the closed list of medicine forms.
type DosageForm string

const (
	FormTablet    DosageForm = "Tablet"
	FormCapsule   DosageForm = "Capsule"
	FormSyrup     DosageForm = "Syrup"
	FormInjection DosageForm = "Injection"
	FormOintment  DosageForm = "Ointment"
	FormDrops     DosageForm = "Drops"
	FormPowder    DosageForm = "Powder"
)

var dosageForms = []DosageForm{
	FormTablet,
	FormCapsule,
	FormSyrup,
	FormInjection,
	FormOintment,
	FormDrops,
	FormPowder,
}

func DosageForms() []DosageForm {
	out := make([]DosageForm, len(dosageForms))
	copy(out, dosageForms)
	return out
}

func ParseDosageForm(value string) (DosageForm, bool) {
	for _, f := range dosageForms {
		if string(f) == value {
			return f, true
		}
	}
	return "", false
}

type Medicine struct {
	ID                   int64           `json:"id"`
	Name                 string          `json:"name"`
	Manufacturer         string          `json:"manufacturer"`
	Form                 string          `json:"form"`
	Price                decimal.Decimal `json:"price"`
	Quantity             int             `json:"quantity"`
	ExpiryDate           time.Time       `json:"expiry_date"`
	PrescriptionRequired bool            `json:"prescription_required"`
}

// NewMedicine returns a medicine with the creation defaults applied.
func NewMedicine(now time.Time) Medicine {
	return Medicine{
		Form:       string(FormTablet),
		ExpiryDate: Today(now).AddDate(1, 0, 0),
	}
}

// ExpiresWithin reports whether the medicine expires within window of now's
// calendar day. Already expired medicines are included.
func (m Medicine) ExpiresWithin(now time.Time, window time.Duration) bool {
	return m.ExpiryDate.Sub(Today(now)) <= window
}

type MedicineFilter struct {
	Search           string
	PrescriptionOnly bool
}
