package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"pharmacy/m/domain"
	"pharmacy/m/internal/apperror"
	"pharmacy/m/internal/validation"
	"pharmacy/m/pkg/logger"
)

type ctxKey string

const ctxSubject ctxKey = "subject"

// Service is what the handlers need from the service layer.
type Service interface {
	ListEmployees(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error)
	AddEmployee(ctx context.Context, form validation.EmployeeForm) (domain.Employee, domain.Result, error)
	UpdateEmployee(ctx context.Context, form validation.EmployeeForm) (domain.Employee, domain.Result, error)
	DeleteEmployee(ctx context.Context, id int64) (domain.Result, error)

	ListMedicines(ctx context.Context, filter domain.MedicineFilter) ([]domain.Medicine, error)
	AddMedicine(ctx context.Context, form validation.MedicineForm) (domain.Medicine, domain.Result, error)
	UpdateMedicine(ctx context.Context, form validation.MedicineForm) (domain.Medicine, domain.Result, error)
	DeleteMedicine(ctx context.Context, id int64) (domain.Result, error)
	ExpiringMedicines(ctx context.Context, days int) ([]domain.Medicine, error)

	ListSupplierNames(ctx context.Context) ([]string, error)
	Statistics(ctx context.Context) (domain.Statistics, error)
	Ping(ctx context.Context) error
	Positions() []domain.Position
	DosageForms() []domain.DosageForm
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	svc     Service
	auth    *Authenticator
	log     logger.Logger
	origins []string
	now     func() time.Time
}

func New(svc Service, auth *Authenticator, log logger.Logger, corsOrigins []string) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	return &Handler{svc: svc, auth: auth, log: log, origins: corsOrigins, now: time.Now}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(corsOptions(h.origins)))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)
	r.Post("/auth/token", h.login)

	r.Route("/api", func(pr chi.Router) {
		pr.Use(h.authMiddleware)

		pr.Route("/employees", func(r chi.Router) {
			r.Get("/", h.listEmployees)
			r.Post("/", h.addEmployee)
			r.Put("/{id}", h.updateEmployee)
			r.Delete("/{id}", h.deleteEmployee)
		})

		pr.Route("/medicines", func(r chi.Router) {
			r.Get("/", h.listMedicines)
			r.Post("/", h.addMedicine)
			r.Get("/expiring", h.expiringMedicines)
			r.Put("/{id}", h.updateMedicine)
			r.Delete("/{id}", h.deleteMedicine)
		})

		pr.Get("/suppliers", h.listSuppliers)
		pr.Get("/statistics", h.statistics)
		pr.Get("/positions", h.positions)
		pr.Get("/forms", h.dosageForms)
	})

	return r
}

// corsOptions allows credentials only for an explicit origin list.
func corsOptions(origins []string) cors.Options {
	wildcard := false
	for _, origin := range origins {
		if origin == "*" {
			wildcard = true
			break
		}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: !wildcard,
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "ok"}
	if err := h.svc.Ping(r.Context()); err != nil {
		h.log.Warn("health: database unreachable", "err", err)
		status["database"] = "unreachable"
	}
	respondJSON(w, http.StatusOK, status)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "decode login", apperror.Wrap(apperror.CodeValidation, "invalid request body", err))
		return
	}

	token, expires, err := h.auth.Login(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		h.fail(w, r, "login", err)
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: expires.UTC().Format(time.RFC3339)})
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			h.fail(w, r, "authenticate", apperror.New(apperror.CodeUnauthorized, "missing bearer token"))
			return
		}

		subject, err := h.auth.Verify(strings.TrimSpace(header[len("Bearer "):]))
		if err != nil {
			h.fail(w, r, "authenticate", err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxSubject, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.ListSupplierNames(r.Context())
	if err != nil {
		h.fail(w, r, "list suppliers", err)
		return
	}
	respondJSON(w, http.StatusOK, names)
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Statistics(r.Context())
	if err != nil {
		h.fail(w, r, "statistics", err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *Handler) positions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Positions())
}

func (h *Handler) dosageForms(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.DosageForms())
}

// Helpers

type errorBody struct {
	Code    apperror.Code `json:"code"`
	Message string        `json:"message"`
	Field   string        `json:"field,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func statusFor(code apperror.Code) int {
	switch code {
	case apperror.CodeValidation:
		return http.StatusBadRequest
	case apperror.CodeNotFound:
		return http.StatusNotFound
	case apperror.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperror.CodeConnectivity:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err and writes the error envelope. Causes are never sent to the
// client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	code := apperror.GetCode(err)
	status := statusFor(code)
	body := errorBody{Code: code, Message: "internal error"}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		body.Message = appErr.Message
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		body.Message = verr.Message
		body.Field = verr.Field
	}

	log := h.log.With("op", op, "request_id", middleware.GetReqID(r.Context()), "status", status)
	if subject := subjectFrom(r.Context()); subject != "" {
		log = log.With("subject", subject)
	}
	if status >= http.StatusInternalServerError {
		log.InternalError("request failed", err)
	} else {
		log.BusinessError("request rejected", err)
	}

	respondJSON(w, status, errorResponse{Error: body})
}

// result writes payload with status on success and a not found envelope
// otherwise. A fault is expected to have been handled as an error already.
func (h *Handler) result(w http.ResponseWriter, r *http.Request, op, what string, result domain.Result, status int, payload any) {
	switch result {
	case domain.ResultSuccess:
		if payload == nil {
			w.WriteHeader(status)
			return
		}
		respondJSON(w, status, payload)
	case domain.ResultNotFound:
		h.fail(w, r, op, apperror.New(apperror.CodeNotFound, what+" not found"))
	default:
		h.fail(w, r, op, apperror.New(apperror.CodeStorage, "write failed"))
	}
}

func subjectFrom(ctx context.Context) string {
	subject, _ := ctx.Value(ctxSubject).(string)
	return subject
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.New(apperror.CodeValidation, "invalid id")
	}
	return id, nil
}

// text accepts a JSON string or number and keeps its literal text so the
// validators see exactly what was sent.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = text(n.String())
	return nil
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}
