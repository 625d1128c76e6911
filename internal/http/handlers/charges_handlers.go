package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"chargelog/internal/http/middleware"
	"chargelog/internal/models"
	"chargelog/internal/repository"
	"chargelog/internal/service"
)

// ChargesHandlers exposes the charge record CRUD plus import/export.
type ChargesHandlers struct {
	service *service.ChargeService
	logger  *zap.Logger
}

// NewChargesHandlers builds handler set.
func NewChargesHandlers(svc *service.ChargeService, logger *zap.Logger) *ChargesHandlers {
	return &ChargesHandlers{service: svc, logger: logger}
}

// List handles GET /api/charges: the processed history.
func (h *ChargesHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	charges, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list charges", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load charges")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"charges": charges})
}

type createChargeRequest struct {
	Date            string   `json:"date"`
	Odometer        int      `json:"odometer"`
	StartPercentage int      `json:"start_percentage"`
	EndPercentage   int      `json:"end_percentage"`
	Tariff          string   `json:"tariff"`
	CustomPrice     *float64 `json:"custom_price"`
}

// Create handles POST /api/charges.
func (h *ChargesHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	var req createChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	tariff, err := models.ParseTariff(req.Tariff)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown tariff")
		return
	}

	rec, err := h.service.Add(r.Context(), userID, models.ChargeRecord{
		Date:            date,
		Odometer:        req.Odometer,
		StartPercentage: req.StartPercentage,
		EndPercentage:   req.EndPercentage,
		Tariff:          tariff,
		CustomPrice:     req.CustomPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRecord):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDuplicateOdometer):
			writeError(w, http.StatusConflict, "odometer reading already recorded")
		default:
			h.logger.Error("failed to create charge", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to create charge")
		}
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// Delete handles DELETE /api/charges/{id}.
func (h *ChargesHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrChargeNotFound) {
			writeError(w, http.StatusNotFound, "charge record not found")
			return
		}
		h.logger.Error("failed to delete charge", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete charge")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Import handles POST /api/charges/import with a CSV request body.
func (h *ChargesHandlers) Import(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	summary, err := h.service.Import(r.Context(), userID, r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := http.StatusOK
	if len(summary.Diagnostics) > 0 {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, summary)
}

// Export handles GET /api/charges/export, streaming the history as CSV.
func (h *ChargesHandlers) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="historique-recharges.csv"`)

	if err := h.service.ExportCSV(r.Context(), userID, w); err != nil {
		h.logger.Error("failed to export charges", zap.Error(err))
	}
}
