package get_engineer

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/AiroFix-BookingService/internal/api/handlers"
	"github.com/m04kA/AiroFix-BookingService/internal/service/engineers"
	"github.com/m04kA/AiroFix-BookingService/internal/service/engineers/models"
)

const (
	msgInvalidPhone = "Invalid engineer phone."
	msgNotFound     = "Engineer not found."
)

// EngineerResponse HTTP response model
type EngineerResponse struct {
	Success  bool                     `json:"success"`
	Engineer *models.EngineerResponse `json:"engineer"`
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

// Handle GET /api/v1/engineers/{phone}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	engineer, err := h.service.GetByPhone(r.Context(), phone)
	if err != nil {
		switch {
		case errors.Is(err, engineers.ErrInvalidInput):
			h.logger.Warn("GET /engineers/{phone} - Invalid phone: %q", phone)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, engineers.ErrEngineerNotFound):
			h.logger.Warn("GET /engineers/{phone} - Engineer not found: phone=%s", phone)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /engineers/{phone} - Failed to get engineer: phone=%s, error=%v", phone, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, EngineerResponse{
		Success:  true,
		Engineer: engineer,
	})
}
