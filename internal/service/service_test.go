package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy/m/domain"
	"pharmacy/m/internal/apperror"
	"pharmacy/m/internal/validation"
)

type fakeStore struct {
	employees map[int64]domain.Employee
	medicines map[int64]domain.Medicine
	suppliers []string
	nextID    int64
	calls     int
	err       error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees: make(map[int64]domain.Employee),
		medicines: make(map[int64]domain.Medicine),
	}
}

func (f *fakeStore) ListEmployees(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	items := make([]domain.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		if filter.Name != "" && !strings.Contains(strings.ToLower(e.FullName), strings.ToLower(filter.Name)) {
			continue
		}
		if !filter.MatchesAllPositions() && e.Position != filter.Position {
			continue
		}
		items = append(items, e)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (f *fakeStore) AddEmployee(ctx context.Context, e *domain.Employee) (domain.Result, error) {
	f.calls++
	if f.err != nil {
		return domain.ResultFault, f.err
	}
	f.nextID++
	e.ID = f.nextID
	f.employees[e.ID] = *e
	return domain.ResultSuccess, nil
}

func (f *fakeStore) UpdateEmployee(ctx context.Context, e domain.Employee) (domain.Result, error) {
	f.calls++
	if _, ok := f.employees[e.ID]; !ok {
		return domain.ResultNotFound, nil
	}
	f.employees[e.ID] = e
	return domain.ResultSuccess, nil
}

func (f *fakeStore) DeleteEmployee(ctx context.Context, id int64) (domain.Result, error) {
	f.calls++
	if _, ok := f.employees[id]; !ok {
		return domain.ResultNotFound, nil
	}
	delete(f.employees, id)
	return domain.ResultSuccess, nil
}

func (f *fakeStore) ListMedicines(ctx context.Context, filter domain.MedicineFilter) ([]domain.Medicine, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	items := make([]domain.Medicine, 0, len(f.medicines))
	for _, m := range f.medicines {
		if filter.PrescriptionOnly && !m.PrescriptionRequired {
			continue
		}
		items = append(items, m)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (f *fakeStore) AddMedicine(ctx context.Context, m *domain.Medicine) (domain.Result, error) {
	f.calls++
	if f.err != nil {
		return domain.ResultFault, f.err
	}
	f.nextID++
	m.ID = f.nextID
	f.medicines[m.ID] = *m
	return domain.ResultSuccess, nil
}

func (f *fakeStore) UpdateMedicine(ctx context.Context, m domain.Medicine) (domain.Result, error) {
	f.calls++
	if _, ok := f.medicines[m.ID]; !ok {
		return domain.ResultNotFound, nil
	}
	f.medicines[m.ID] = m
	return domain.ResultSuccess, nil
}

func (f *fakeStore) DeleteMedicine(ctx context.Context, id int64) (domain.Result, error) {
	f.calls++
	if _, ok := f.medicines[id]; !ok {
		return domain.ResultNotFound, nil
	}
	delete(f.medicines, id)
	return domain.ResultSuccess, nil
}

func (f *fakeStore) ListSupplierNames(ctx context.Context) ([]string, error) {
	f.calls++
	return f.suppliers, f.err
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.err
}

var fixedNow = time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)

func newTestService(store Store) *Service {
	svc := New(store, 30, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func medicineForm(name, expiry string) validation.MedicineForm {
	return validation.MedicineForm{
		Name:         name,
		Manufacturer: "Pharmstandard",
		Form:         "Tablet",
		Price:        "100",
		Quantity:     "10",
		ExpiryDate:   expiry,
	}
}

func TestAddEmployee(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	e, result, err := svc.AddEmployee(context.Background(), validation.EmployeeForm{
		FullName: "Иванов И.И.",
		Position: "Pharmacist",
		Salary:   "50000",
		HireDate: "2024-01-10",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultSuccess, result)
	assert.Equal(t, int64(1), e.ID)

	listed, err := svc.ListEmployees(context.Background(), domain.EmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Иванов И.И.", listed[0].FullName)
	assert.True(t, listed[0].Salary.Equal(decimal.NewFromInt(50000)))
}

func TestAddEmployeeInvalidSkipsStore(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, result, err := svc.AddEmployee(context.Background(), validation.EmployeeForm{
		FullName: "Anna",
		Position: "Pharmacist",
		Salary:   "-10",
		HireDate: "2024-01-10",
	})
	require.Error(t, err)
	assert.Equal(t, domain.ResultFault, result)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "salary", verr.Field)
	assert.Zero(t, store.calls)
}

func TestExpiredMedicineNeverReachesStore(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	for _, expiry := range []string{"2025-06-15", "2024-12-31"} {
		_, result, err := svc.AddMedicine(context.Background(), medicineForm("Aspirin", expiry))
		require.Error(t, err)
		assert.Equal(t, domain.ResultFault, result)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	}
	assert.Zero(t, store.calls)
	assert.Empty(t, store.medicines)
}

func TestUpdateMissingReportsNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	form := validation.EmployeeForm{ID: 42, FullName: "Ghost", Position: "Cashier", Salary: "1", HireDate: "2024-01-01"}
	_, result, err := svc.UpdateEmployee(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, domain.ResultNotFound, result)

	mform := medicineForm("Aspirin", "2026-01-01")
	mform.ID = 42
	_, result, err = svc.UpdateMedicine(context.Background(), mform)
	require.NoError(t, err)
	assert.Equal(t, domain.ResultNotFound, result)
}

func TestDeleteMedicineTwice(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	m, _, err := svc.AddMedicine(context.Background(), medicineForm("Aspirin", "2026-01-01"))
	require.NoError(t, err)

	result, err := svc.DeleteMedicine(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ResultSuccess, result)

	result, err = svc.DeleteMedicine(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ResultNotFound, result)
}

func TestStoreFaultPropagates(t *testing.T) {
	store := newFakeStore()
	store.err = apperror.New(apperror.CodeConnectivity, "database unreachable")
	svc := newTestService(store)

	_, result, err := svc.AddMedicine(context.Background(), medicineForm("Aspirin", "2026-01-01"))
	require.Error(t, err)
	assert.Equal(t, domain.ResultFault, result)
	assert.Equal(t, apperror.CodeConnectivity, apperror.GetCode(err))

	_, err = svc.Statistics(context.Background())
	assert.Equal(t, apperror.CodeConnectivity, apperror.GetCode(err))
}

func TestStatisticsAndExpiring(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	day := func(s string) time.Time {
		parsed, err := time.Parse(domain.DateLayout, s)
		require.NoError(t, err)
		return parsed
	}
	store.employees[1] = domain.Employee{ID: 1, FullName: "Anna"}
	store.employees[2] = domain.Employee{ID: 2, FullName: "Boris"}
	store.medicines[1] = domain.Medicine{ID: 1, Name: "Late", ExpiryDate: day("2025-07-10")}
	store.medicines[2] = domain.Medicine{ID: 2, Name: "Expired", ExpiryDate: day("2025-05-01")}
	store.medicines[3] = domain.Medicine{ID: 3, Name: "Far", ExpiryDate: day("2026-05-01")}
	store.medicines[4] = domain.Medicine{ID: 4, Name: "Soon", ExpiryDate: day("2025-06-20")}

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Statistics{Employees: 2, Medicines: 4, ExpiringSoon: 3, WindowDays: 30}, stats)

	soon, err := svc.ExpiringMedicines(context.Background(), 10)
	require.NoError(t, err)
	names := make([]string, 0, len(soon))
	for _, m := range soon {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Expired", "Soon"}, names)

	all, err := svc.ExpiringMedicines(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Expired", all[0].Name)
	assert.Equal(t, "Late", all[2].Name)
}

func TestClosedLists(t *testing.T) {
	svc := newTestService(newFakeStore())
	assert.Len(t, svc.Positions(), 5)
	assert.Len(t, svc.DosageForms(), 7)
	assert.Equal(t, domain.FormTablet, svc.DosageForms()[0])
}

func TestListSupplierNames(t *testing.T) {
	store := newFakeStore()
	store.suppliers = []string{"Sandoz", "Bayer"}
	svc := newTestService(store)

	names, err := svc.ListSupplierNames(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Bayer", "Sandoz"}, names)
}
