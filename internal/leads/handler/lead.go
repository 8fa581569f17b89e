package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	leadErrors "foamparty/internal/leads/errors"
	"foamparty/internal/leads/form"
	"foamparty/internal/leads/repository"
	apperrors "foamparty/pkg/errors"
	httputil "foamparty/pkg/http"
	"foamparty/pkg/logger"
	"foamparty/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type LeadHandler struct {
	newForm func() *form.Form
	repo    repository.LeadRepository
	contact model.ContactInfo
	log     *logger.Logger
}

// NewLeadHandler mounts a fresh form from newForm for every submission.
func NewLeadHandler(newForm func() *form.Form, repo repository.LeadRepository, contact model.ContactInfo, log *logger.Logger) *LeadHandler {
	return &LeadHandler{
		newForm: newForm,
		repo:    repo,
		contact: contact,
		log:     log,
	}
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	f := h.newForm()
	for field, value := range fields {
		if err := f.Set(field, value); err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(err.Error())); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	outcome, err := f.Submit(r.Context())
	if err != nil {
		if errors.Is(err, leadErrors.ErrSubmitInProgress) || errors.Is(err, leadErrors.ErrAlreadySubmitted) {
			err = apperrors.Conflict(err.Error())
		}
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if outcome.State != model.StateSubmitted {
		if writeErr := httputil.WriteError(w, failedError(outcome)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, outcome); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *LeadHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	leads, total, err := h.repo.List(r.Context(), limit, offset)
	if err != nil {
		h.log.Error("failed to list leads", "error", err)
		if writeErr := httputil.WriteError(w, apperrors.Internal("failed to list leads", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, leads, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *LeadHandler) Contact(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.contact); err != nil {
		h.log.Error("failed to write success response", "handler", "Contact", "operation", "WriteSuccess", "error", err)
	}
}

func (h *LeadHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.GetAll)
	router.GET("/api/v1/contact", h.Contact)
}

// failedError carries the call-us message and any per-field problems.
func failedError(outcome model.SubmissionOutcome) *apperrors.AppError {
	details := make(map[string]any, len(outcome.Fields))
	for field, msg := range outcome.Fields {
		details[field] = msg
	}
	return apperrors.Validation(outcome.Message, details)
}
