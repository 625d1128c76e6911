package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"chargelog/internal/charge"
	"chargelog/internal/http/middleware"
	"chargelog/internal/models"
	"chargelog/internal/service"
)

// StatsHandlers exposes the aggregation views.
type StatsHandlers struct {
	service *service.ChargeService
	logger  *zap.Logger
}

// NewStatsHandlers builds handler set.
func NewStatsHandlers(svc *service.ChargeService, logger *zap.Logger) *StatsHandlers {
	return &StatsHandlers{service: svc, logger: logger}
}

// Stats handles GET /api/stats?period=weekly|monthly|yearly&tariffs=a,b,c.
func (h *StatsHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	periodParam := r.URL.Query().Get("period")
	if periodParam == "" {
		periodParam = string(charge.PeriodMonthly)
	}
	period, err := charge.ParsePeriod(periodParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "period must be weekly, monthly or yearly")
		return
	}

	var filter []models.Tariff
	if raw := r.URL.Query().Get("tariffs"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			tariff, err := models.ParseTariff(strings.TrimSpace(part))
			if err != nil {
				writeError(w, http.StatusBadRequest, "unknown tariff in filter")
				return
			}
			filter = append(filter, tariff)
		}
	}

	stats, err := h.service.Stats(r.Context(), userID, period, filter)
	if err != nil {
		h.logger.Error("failed to compute stats", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}

// Dashboard handles GET /api/dashboard.
func (h *StatsHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	dashboard, err := h.service.GetDashboard(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to compute dashboard", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute dashboard")
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}
