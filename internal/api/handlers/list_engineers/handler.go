package list_engineers

import (
	"net/http"

	"github.com/m04kA/AiroFix-BookingService/internal/api/handlers"
	"github.com/m04kA/AiroFix-BookingService/internal/service/engineers/models"
)

// ListEngineersResponse HTTP response model
type ListEngineersResponse struct {
	Success   bool                      `json:"success"`
	Engineers []models.EngineerResponse `json:"engineers"`
}

type Handler struct {
	service EngineerService
	logger  Logger
}

func NewHandler(service EngineerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/engineers?all=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	includeInactive := handlers.QueryBool(r, "all")

	result, err := h.service.List(r.Context(), includeInactive)
	if err != nil {
		h.logger.Error("GET /engineers - Failed to list engineers: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ListEngineersResponse{
		Success:   true,
		Engineers: result.Engineers,
	})
}
