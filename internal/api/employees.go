package api

import (
	"net/http"

	"pharmacy/m/domain"
	"pharmacy/m/internal/apperror"
	"pharmacy/m/internal/validation"
)

type employeeRequest struct {
	FullName string `json:"full_name"`
	Position string `json:"position"`
	Salary   text   `json:"salary"`
	HireDate string `json:"hire_date"`
}

func (req employeeRequest) form(id int64) validation.EmployeeForm {
	return validation.EmployeeForm{
		ID:       id,
		FullName: req.FullName,
		Position: req.Position,
		Salary:   string(req.Salary),
		HireDate: req.HireDate,
	}
}

func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	employees, err := h.svc.ListEmployees(r.Context(), domain.EmployeeFilter{
		Name:     query.Get("name"),
		Position: query.Get("position"),
	})
	if err != nil {
		h.fail(w, r, "list employees", err)
		return
	}
	respondJSON(w, http.StatusOK, employees)
}

func (h *Handler) addEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "decode employee", apperror.Wrap(apperror.CodeValidation, "invalid request body", err))
		return
	}

	form := validation.WithEmployeeDefaults(req.form(0), h.now())
	employee, result, err := h.svc.AddEmployee(r.Context(), form)
	if err != nil {
		h.fail(w, r, "add employee", err)
		return
	}
	h.result(w, r, "add employee", "employee", result, http.StatusCreated, employee)
}

func (h *Handler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "update employee", err)
		return
	}

	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "decode employee", apperror.Wrap(apperror.CodeValidation, "invalid request body", err))
		return
	}

	employee, result, err := h.svc.UpdateEmployee(r.Context(), req.form(id))
	if err != nil {
		h.fail(w, r, "update employee", err)
		return
	}
	h.result(w, r, "update employee", "employee", result, http.StatusOK, employee)
}

func (h *Handler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "delete employee", err)
		return
	}

	result, err := h.svc.DeleteEmployee(r.Context(), id)
	if err != nil {
		h.fail(w, r, "delete employee", err)
		return
	}
	h.result(w, r, "delete employee", "employee", result, http.StatusNoContent, nil)
}
