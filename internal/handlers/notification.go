package handlers

import (
	"net/http"

	"github.com/Enodevs/speedvoice-backend/internal/httpx"
	"github.com/Enodevs/speedvoice-backend/internal/services"
)

// NotificationHandler serves the in-app activity feed.
type NotificationHandler struct {
	Svc *services.NotificationService
}

func NewNotificationHandler(svc *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Svc: svc}
}

// ListUnseen: GET /api/dashboard/notifications/{business_id}
func (h *NotificationHandler) ListUnseen(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "business_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	notifications, err := h.Svc.ListUnseen(businessID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, notifications)
}

// MarkAllSeen: POST /api/dashboard/notifications/{business_id}/seen
func (h *NotificationHandler) MarkAllSeen(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "business_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if err := h.Svc.MarkAllSeen(businessID); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "notifications marked as seen"})
}
