package validation

import (
	"strings"
	"time"

	"pharmacy/m/domain"
)

// MedicineForm is the raw input collected for adding or editing a medicine.
type MedicineForm struct {
	ID                   int64
	Name                 string
	Manufacturer         string
	Form                 string
	Price                string
	Quantity             string
	ExpiryDate           string
	PrescriptionRequired bool
}

// NewMedicineForm returns a blank form expiring a year from now with the
// first dosage form preselected.
func NewMedicineForm(now time.Time) MedicineForm {
	m := domain.NewMedicine(now)
	return MedicineForm{
		Form:       m.Form,
		ExpiryDate: m.ExpiryDate.Format(domain.DateLayout),
	}
}

// WithMedicineDefaults fills the blank fields of form from NewMedicineForm.
func WithMedicineDefaults(form MedicineForm, now time.Time) MedicineForm {
	defaults := NewMedicineForm(now)
	if strings.TrimSpace(form.Form) == "" {
		form.Form = defaults.Form
	}
	if strings.TrimSpace(form.ExpiryDate) == "" {
		form.ExpiryDate = defaults.ExpiryDate
	}
	return form
}

// ValidateMedicine checks the form against now; the expiry date must be a
// calendar day later than now's own calendar day.
func ValidateMedicine(form MedicineForm, now time.Time) (domain.Medicine, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return domain.Medicine{}, fail("name", "medicine name is required")
	}

	manufacturer := strings.TrimSpace(form.Manufacturer)
	if manufacturer == "" {
		return domain.Medicine{}, fail("manufacturer", "manufacturer is required")
	}

	price, ok := parseDecimal(form.Price)
	if !ok || !price.IsPositive() {
		return domain.Medicine{}, fail("price", "price must be a positive number")
	}
	if !fitsMoney(price) {
		return domain.Medicine{}, fail("price", moneyLimitMessage("price"))
	}

	quantity, ok := parseInt(form.Quantity)
	if !ok || quantity < 0 {
		return domain.Medicine{}, fail("quantity", "quantity must be a non-negative whole number")
	}

	expiry, ok := parseDate(form.ExpiryDate)
	if !ok || !expiry.After(domain.Today(now)) {
		return domain.Medicine{}, fail("expiry_date", "expiry date must be in the future (YYYY-MM-DD)")
	}

	dosageForm, ok := domain.ParseDosageForm(strings.TrimSpace(form.Form))
	if !ok {
		return domain.Medicine{}, fail("form", "select a dosage form")
	}

	return domain.Medicine{
		ID:                   form.ID,
		Name:                 name,
		Manufacturer:         manufacturer,
		Form:                 string(dosageForm),
		Price:                price,
		Quantity:             quantity,
		ExpiryDate:           expiry,
		PrescriptionRequired: form.PrescriptionRequired,
	}, nil
}
