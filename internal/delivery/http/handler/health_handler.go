package handler

import (
	"net/http"
	"time"

	"medical-calculator-backend/pkg/response"

	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check probes database connectivity. A failing probe still answers 200
// with a degraded status so load balancers can read the payload.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	dbStatus := "connected"

	var one int
	if err := h.db.WithContext(r.Context()).Raw("SELECT 1").Scan(&one).Error; err != nil {
		status = "degraded"
		dbStatus = err.Error()
	}

	response.Success(w, http.StatusOK, "Health check", map[string]interface{}{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
