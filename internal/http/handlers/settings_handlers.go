package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"chargelog/internal/http/middleware"
	"chargelog/internal/models"
	"chargelog/internal/service"
)

// SettingsHandlers exposes the tariff settings endpoints.
type SettingsHandlers struct {
	service *service.SettingsService
	logger  *zap.Logger
}

// NewSettingsHandlers builds handler set.
func NewSettingsHandlers(svc *service.SettingsService, logger *zap.Logger) *SettingsHandlers {
	return &SettingsHandlers{service: svc, logger: logger}
}

// Get handles GET /api/settings.
func (h *SettingsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	settings, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load settings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// Update handles PUT /api/settings.
func (h *SettingsHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	var settings models.TariffSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.service.Update(r.Context(), userID, settings); err != nil {
		if errors.Is(err, service.ErrInvalidSettings) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to update settings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// Vehicles handles GET /api/vehicles: the capacity preset catalogue.
func (h *SettingsHandlers) Vehicles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"vehicles": models.Vehicles()})
}
