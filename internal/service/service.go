// Package service validates operator input and drives the repository.
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"pharmacy/m/domain"
	"pharmacy/m/internal/apperror"
	"pharmacy/m/internal/validation"
	"pharmacy/m/pkg/logger"
)

// Store is the persistence surface the service needs.
type Store interface {
	ListEmployees(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error)
	AddEmployee(ctx context.Context, e *domain.Employee) (domain.Result, error)
	UpdateEmployee(ctx context.Context, e domain.Employee) (domain.Result, error)
	DeleteEmployee(ctx context.Context, id int64) (domain.Result, error)

	ListMedicines(ctx context.Context, filter domain.MedicineFilter) ([]domain.Medicine, error)
	AddMedicine(ctx context.Context, m *domain.Medicine) (domain.Result, error)
	UpdateMedicine(ctx context.Context, m domain.Medicine) (domain.Result, error)
	DeleteMedicine(ctx context.Context, id int64) (domain.Result, error)

	ListSupplierNames(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

const DefaultExpiryWindowDays = 30

type Service struct {
	store      Store
	windowDays int
	log        logger.Logger
	now        func() time.Time
}

func New(store Store, expiryWindowDays int, log logger.Logger) *Service {
	if expiryWindowDays <= 0 {
		expiryWindowDays = DefaultExpiryWindowDays
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:      store,
		windowDays: expiryWindowDays,
		log:        log,
		now:        time.Now,
	}
}

func (s *Service) ListEmployees(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	return s.store.ListEmployees(ctx, filter)
}

func (s *Service) AddEmployee(ctx context.Context, form validation.EmployeeForm) (domain.Employee, domain.Result, error) {
	e, err := validation.ValidateEmployee(form)
	if err != nil {
		return domain.Employee{}, domain.ResultFault, invalid(err)
	}
	e.ID = 0
	result, err := s.store.AddEmployee(ctx, &e)
	if err != nil {
		return domain.Employee{}, domain.ResultFault, err
	}
	if result.OK() {
		s.log.Info("employee added", "id", e.ID)
	}
	return e, result, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, form validation.EmployeeForm) (domain.Employee, domain.Result, error) {
	e, err := validation.ValidateEmployee(form)
	if err != nil {
		return domain.Employee{}, domain.ResultFault, invalid(err)
	}
	result, err := s.store.UpdateEmployee(ctx, e)
	if err != nil {
		return domain.Employee{}, domain.ResultFault, err
	}
	return e, result, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id int64) (domain.Result, error) {
	return s.store.DeleteEmployee(ctx, id)
}

func (s *Service) ListMedicines(ctx context.Context, filter domain.MedicineFilter) ([]domain.Medicine, error) {
	return s.store.ListMedicines(ctx, filter)
}

func (s *Service) AddMedicine(ctx context.Context, form validation.MedicineForm) (domain.Medicine, domain.Result, error) {
	m, err := validation.ValidateMedicine(form, s.now())
	if err != nil {
		return domain.Medicine{}, domain.ResultFault, invalid(err)
	}
	m.ID = 0
	result, err := s.store.AddMedicine(ctx, &m)
	if err != nil {
		return domain.Medicine{}, domain.ResultFault, err
	}
	if result.OK() {
		s.log.Info("medicine added", "id", m.ID)
	}
	return m, result, nil
}

func (s *Service) UpdateMedicine(ctx context.Context, form validation.MedicineForm) (domain.Medicine, domain.Result, error) {
	m, err := validation.ValidateMedicine(form, s.now())
	if err != nil {
		return domain.Medicine{}, domain.ResultFault, invalid(err)
	}
	result, err := s.store.UpdateMedicine(ctx, m)
	if err != nil {
		return domain.Medicine{}, domain.ResultFault, err
	}
	return m, result, nil
}

func (s *Service) DeleteMedicine(ctx context.Context, id int64) (domain.Result, error) {
	return s.store.DeleteMedicine(ctx, id)
}

func (s *Service) ListSupplierNames(ctx context.Context) ([]string, error) {
	return s.store.ListSupplierNames(ctx)
}

// Statistics counts both tables and the medicines expiring inside the
// configured window.
func (s *Service) Statistics(ctx context.Context) (domain.Statistics, error) {
	employees, err := s.store.ListEmployees(ctx, domain.EmployeeFilter{})
	if err != nil {
		return domain.Statistics{}, err
	}
	medicines, err := s.store.ListMedicines(ctx, domain.MedicineFilter{})
	if err != nil {
		return domain.Statistics{}, err
	}

	return domain.Statistics{
		Employees:    len(employees),
		Medicines:    len(medicines),
		ExpiringSoon: len(expiring(medicines, s.now(), s.windowDays)),
		WindowDays:   s.windowDays,
	}, nil
}

// ExpiringMedicines lists medicines expiring within days, soonest first.
// A non-positive days uses the configured window.
func (s *Service) ExpiringMedicines(ctx context.Context, days int) ([]domain.Medicine, error) {
	if days <= 0 {
		days = s.windowDays
	}
	medicines, err := s.store.ListMedicines(ctx, domain.MedicineFilter{})
	if err != nil {
		return nil, err
	}
	return expiring(medicines, s.now(), days), nil
}

// Ping reports whether the store answers right now.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) Positions() []domain.Position {
	return domain.Positions()
}

func (s *Service) DosageForms() []domain.DosageForm {
	return domain.DosageForms()
}

func expiring(medicines []domain.Medicine, now time.Time, days int) []domain.Medicine {
	window := time.Duration(days) * 24 * time.Hour
	out := make([]domain.Medicine, 0)
	for _, m := range medicines {
		if m.ExpiresWithin(now, window) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpiryDate.Before(out[j].ExpiryDate)
	})
	return out
}

func invalid(err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return apperror.Wrap(apperror.CodeValidation, "invalid "+verr.Field, verr)
	}
	return apperror.Wrap(apperror.CodeValidation, "invalid input", err)
}
