package api

import (
	"net/http"
	"strconv"

	"pharmacy/m/domain"
	"pharmacy/m/internal/apperror"
	"pharmacy/m/internal/validation"
)

type medicineRequest struct {
	Name                 string `json:"name"`
	Manufacturer         string `json:"manufacturer"`
	Form                 string `json:"form"`
	Price                text   `json:"price"`
	Quantity             text   `json:"quantity"`
	ExpiryDate           string `json:"expiry_date"`
	PrescriptionRequired bool   `json:"prescription_required"`
}

func (req medicineRequest) form(id int64) validation.MedicineForm {
	return validation.MedicineForm{
		ID:                   id,
		Name:                 req.Name,
		Manufacturer:         req.Manufacturer,
		Form:                 req.Form,
		Price:                string(req.Price),
		Quantity:             string(req.Quantity),
		ExpiryDate:           req.ExpiryDate,
		PrescriptionRequired: req.PrescriptionRequired,
	}
}

func (h *Handler) listMedicines(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.MedicineFilter{Search: query.Get("search")}
	if raw := query.Get("prescription"); raw != "" {
		only, err := strconv.ParseBool(raw)
		if err != nil {
			h.fail(w, r, "list medicines", apperror.New(apperror.CodeValidation, "prescription must be true or false"))
			return
		}
		filter.PrescriptionOnly = only
	}

	medicines, err := h.svc.ListMedicines(r.Context(), filter)
	if err != nil {
		h.fail(w, r, "list medicines", err)
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}

func (h *Handler) expiringMedicines(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.fail(w, r, "expiring medicines", apperror.New(apperror.CodeValidation, "days must be a positive integer"))
			return
		}
		days = parsed
	}

	medicines, err := h.svc.ExpiringMedicines(r.Context(), days)
	if err != nil {
		h.fail(w, r, "expiring medicines", err)
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}

func (h *Handler) addMedicine(w http.ResponseWriter, r *http.Request) {
	var req medicineRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "decode medicine", apperror.Wrap(apperror.CodeValidation, "invalid request body", err))
		return
	}

	form := validation.WithMedicineDefaults(req.form(0), h.now())
	medicine, result, err := h.svc.AddMedicine(r.Context(), form)
	if err != nil {
		h.fail(w, r, "add medicine", err)
		return
	}
	h.result(w, r, "add medicine", "medicine", result, http.StatusCreated, medicine)
}

func (h *Handler) updateMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "update medicine", err)
		return
	}

	var req medicineRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "decode medicine", apperror.Wrap(apperror.CodeValidation, "invalid request body", err))
		return
	}

	medicine, result, err := h.svc.UpdateMedicine(r.Context(), req.form(id))
	if err != nil {
		h.fail(w, r, "update medicine", err)
		return
	}
	h.result(w, r, "update medicine", "medicine", result, http.StatusOK, medicine)
}

func (h *Handler) deleteMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "delete medicine", err)
		return
	}

	result, err := h.svc.DeleteMedicine(r.Context(), id)
	if err != nil {
		h.fail(w, r, "delete medicine", err)
		return
	}
	h.result(w, r, "delete medicine", "medicine", result, http.StatusNoContent, nil)
}
