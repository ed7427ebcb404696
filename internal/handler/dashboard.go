package handler

import (
	"log/slog"
	"net/http"

	"github.com/avendel/textamend/internal/domain"
	"github.com/avendel/textamend/internal/service"
)

// DashboardHandler returns the current state of all four result slots.
type DashboardHandler struct {
	proc *service.ProcessService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(proc *service.ProcessService) *DashboardHandler {
	return &DashboardHandler{proc: proc}
}

// HandleDashboard responds with all four slots; empty slots are null.
// GET /dashboard
// Response: 200 {"user":{...},"results":{"spell":null,"grammar":{...},...}}
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	session := SessionFromContext(r.Context())

	results, err := h.proc.Results(r.Context(), session)
	if err != nil {
		slog.Error("load dashboard results", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	slots := make(map[string]*ResultDTO, len(domain.Slots))
	for _, slot := range domain.Slots {
		slots[string(slot)] = toResultDTO(results[slot])
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":    toUserDTO(user),
		"results": slots,
	})
}
