package handler

import (
	"errors"
	"net/http"

	offerErrors "foamparty/internal/offer/errors"
	"foamparty/internal/offer/service"
	apperrors "foamparty/pkg/errors"
	httputil "foamparty/pkg/http"
	"foamparty/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type OfferHandler struct {
	service service.OfferService
	log     *logger.Logger
}

func NewOfferHandler(service service.OfferService, log *logger.Logger) *OfferHandler {
	return &OfferHandler{
		service: service,
		log:     log,
	}
}

// Start issues a visitor id and starts its countdown.
func (h *OfferHandler) Start(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	status, err := h.service.NewVisitor(r.Context())
	if err != nil {
		h.writeError(w, "Start", err)
		return
	}

	if err := httputil.WriteCreated(w, status); err != nil {
		h.log.Error("failed to write created response", "handler", "Start", "operation", "WriteCreated", "error", err)
	}
}

func (h *OfferHandler) GetStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	status, err := h.service.Status(r.Context(), ps.ByName("visitor"))
	if err != nil {
		h.writeError(w, "GetStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, status); err != nil {
		h.log.Error("failed to write success response", "handler", "GetStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OfferHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if errors.Is(err, offerErrors.ErrInvalidVisitorID) {
		err = apperrors.InvalidInput(err.Error())
	} else {
		h.log.Error("offer lookup failed", "handler", handler, "error", err)
		err = apperrors.Unavailable("offer countdown")
	}

	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *OfferHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/offers", h.Start)
	router.GET("/api/v1/offers/:visitor", h.GetStatus)
}
