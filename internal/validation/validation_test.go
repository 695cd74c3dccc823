package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy/m/domain"
)

var now = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func field(t *testing.T, err error) string {
	t.Helper()
	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *validation.Error, got %v", err)
	return verr.Field
}

func validEmployeeForm() EmployeeForm {
	return EmployeeForm{
		FullName: "  Ivanov I.I.  ",
		Position: "Pharmacist",
		Salary:   "50000,50",
		HireDate: "2024-01-10",
	}
}

func TestValidateEmployee(t *testing.T) {
	e, err := ValidateEmployee(validEmployeeForm())
	require.NoError(t, err)
	assert.Equal(t, "Ivanov I.I.", e.FullName)
	assert.Equal(t, "Pharmacist", e.Position)
	assert.True(t, e.Salary.Equal(decimal.RequireFromString("50000.50")))
	assert.Equal(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), e.HireDate)
}

func TestValidateEmployeeRules(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*EmployeeForm)
		field string
	}{
		{"blank name", func(f *EmployeeForm) { f.FullName = "   " }, "full_name"},
		{"negative salary", func(f *EmployeeForm) { f.Salary = "-1" }, "salary"},
		{"salary not a number", func(f *EmployeeForm) { f.Salary = "lots" }, "salary"},
		{"empty salary", func(f *EmployeeForm) { f.Salary = "" }, "salary"},
		{"missing hire date", func(f *EmployeeForm) { f.HireDate = "" }, "hire_date"},
		{"bad hire date", func(f *EmployeeForm) { f.HireDate = "10.01.2024" }, "hire_date"},
		{"no position", func(f *EmployeeForm) { f.Position = "" }, "position"},
		{"unknown position", func(f *EmployeeForm) { f.Position = "Janitor" }, "position"},
		{"first rule wins", func(f *EmployeeForm) { f.FullName = ""; f.Salary = "-5" }, "full_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validEmployeeForm()
			tt.edit(&form)
			_, err := ValidateEmployee(form)
			require.Error(t, err)
			assert.Equal(t, tt.field, field(t, err))
		})
	}
}

func TestValidateEmployeeZeroSalary(t *testing.T) {
	form := validEmployeeForm()
	form.Salary = "0"
	e, err := ValidateEmployee(form)
	require.NoError(t, err)
	assert.True(t, e.Salary.IsZero())
}

func validMedicineForm() MedicineForm {
	return MedicineForm{
		Name:                 "Paracetamol",
		Manufacturer:         "Pharmstandard",
		Form:                 "Tablet",
		Price:                "120.50",
		Quantity:             "40",
		ExpiryDate:           "2026-01-01",
		PrescriptionRequired: true,
	}
}

func TestValidateMedicine(t *testing.T) {
	m, err := ValidateMedicine(validMedicineForm(), now)
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", m.Name)
	assert.Equal(t, "Tablet", m.Form)
	assert.Equal(t, 40, m.Quantity)
	assert.True(t, m.Price.Equal(decimal.RequireFromString("120.5")))
	assert.True(t, m.PrescriptionRequired)
}

func TestValidateMedicineRules(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*MedicineForm)
		field string
	}{
		{"blank name", func(f *MedicineForm) { f.Name = " " }, "name"},
		{"blank manufacturer", func(f *MedicineForm) { f.Manufacturer = "" }, "manufacturer"},
		{"zero price", func(f *MedicineForm) { f.Price = "0" }, "price"},
		{"negative price", func(f *MedicineForm) { f.Price = "-3" }, "price"},
		{"negative quantity", func(f *MedicineForm) { f.Quantity = "-1" }, "quantity"},
		{"fractional quantity", func(f *MedicineForm) { f.Quantity = "1.5" }, "quantity"},
		{"expired", func(f *MedicineForm) { f.ExpiryDate = "2025-01-01" }, "expiry_date"},
		{"expires today", func(f *MedicineForm) { f.ExpiryDate = "2025-06-15" }, "expiry_date"},
		{"missing expiry", func(f *MedicineForm) { f.ExpiryDate = "" }, "expiry_date"},
		{"unknown form", func(f *MedicineForm) { f.Form = "Spray" }, "form"},
		{"first rule wins", func(f *MedicineForm) { f.Manufacturer = ""; f.Price = "0" }, "manufacturer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validMedicineForm()
			tt.edit(&form)
			_, err := ValidateMedicine(form, now)
			require.Error(t, err)
			assert.Equal(t, tt.field, field(t, err))
		})
	}
}

func TestNewForms(t *testing.T) {
	e := NewEmployeeForm(now)
	assert.Equal(t, "2025-06-15", e.HireDate)
	assert.Equal(t, string(domain.PositionPharmacist), e.Position)

	m := NewMedicineForm(now)
	assert.Equal(t, "2026-06-15", m.ExpiryDate)
	assert.Equal(t, string(domain.FormTablet), m.Form)

}

func TestWithEmployeeDefaults(t *testing.T) {
	form := WithEmployeeDefaults(EmployeeForm{FullName: "Petrov", Position: "Cashier", Salary: "100"}, now)
	assert.Equal(t, "2025-06-15", form.HireDate)
	assert.Equal(t, "Cashier", form.Position)

	e, err := ValidateEmployee(form)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), e.HireDate)

	kept := WithEmployeeDefaults(EmployeeForm{HireDate: "2020-02-02"}, now)
	assert.Equal(t, "2020-02-02", kept.HireDate)
	assert.Equal(t, string(domain.PositionPharmacist), kept.Position)
}

func TestWithMedicineDefaults(t *testing.T) {
	form := WithMedicineDefaults(MedicineForm{Name: "Aspirin", Manufacturer: "Bayer", Price: "90", Quantity: "3"}, now)
	assert.Equal(t, "2026-06-15", form.ExpiryDate)
	assert.Equal(t, string(domain.FormTablet), form.Form)

	m, err := ValidateMedicine(form, now)
	require.NoError(t, err)
	assert.Equal(t, "Tablet", m.Form)

	kept := WithMedicineDefaults(MedicineForm{Form: "Syrup", ExpiryDate: "2027-01-01"}, now)
	assert.Equal(t, "Syrup", kept.Form)
	assert.Equal(t, "2027-01-01", kept.ExpiryDate)
}

func TestMoneyLimits(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"9999999999.99", true},
		{"1.500", true},
		{"10000000000", false},
		{"1234567890123456.78", false},
		{"12.345", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			eform := validEmployeeForm()
			eform.Salary = tt.value
			_, err := ValidateEmployee(eform)

			mform := validMedicineForm()
			mform.Price = tt.value
			_, merr := ValidateMedicine(mform, now)

			if tt.ok {
				assert.NoError(t, err)
				assert.NoError(t, merr)
				return
			}
			require.Error(t, err)
			assert.Equal(t, "salary", field(t, err))
			require.Error(t, merr)
			assert.Equal(t, "price", field(t, merr))
		})
	}
}

func TestExpiryComparesCalendarDays(t *testing.T) {
	// 00:30 on 16 June in UTC+3 is still 15 June in UTC.
	local := time.Date(2025, time.June, 16, 0, 30, 0, 0, time.FixedZone("UTC+3", 3*60*60))

	form := validMedicineForm()
	form.ExpiryDate = "2025-06-16"
	_, err := ValidateMedicine(form, local)
	require.Error(t, err)
	assert.Equal(t, "expiry_date", field(t, err))

	form.ExpiryDate = "2025-06-17"
	_, err = ValidateMedicine(form, local)
	assert.NoError(t, err)
}

func TestParseDecimal(t *testing.T) {
	d, ok := parseDecimal("12,75")
	require.True(t, ok)
	assert.Equal(t, "12.75", d.String())

	_, ok = parseDecimal("1.000,50")
	assert.False(t, ok)
}
