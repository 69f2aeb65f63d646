package handlers

import (
	"net/http"

	"github.com/Enodevs/speedvoice-backend/internal/auth"
	"github.com/Enodevs/speedvoice-backend/internal/httpx"
	"github.com/Enodevs/speedvoice-backend/internal/services"
	"gorm.io/gorm"
)

// BusinessHandler exposes the business lifecycle. Reads resolve the
// owner's active business through the cached lookup.
type BusinessHandler struct {
	DB  *gorm.DB
	Svc *services.BusinessService
}

func NewBusinessHandler(db *gorm.DB, svc *services.BusinessService) *BusinessHandler {
	return &BusinessHandler{DB: db, Svc: svc}
}

// Create: POST /api/auth/business-create (bearer)
func (h *BusinessHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	user, err := loadUser(h.DB, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var in services.BusinessInput
	if err := decodeJSON(r, &in); err != nil {
		httpx.Error(w, err)
		return
	}
	biz, err := h.Svc.Create(user, in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, biz)
}

// Get: GET /api/auth/business/{owner_id}
func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathID(r, "owner_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	biz, err := h.Svc.ActiveForOwner(r.Context(), ownerID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, biz)
}

// Update: PUT /api/auth/business/{owner_id} (bearer)
func (h *BusinessHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathID(r, "owner_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var in services.BusinessInput
	if err := decodeJSON(r, &in); err != nil {
		httpx.Error(w, err)
		return
	}
	biz, err := h.Svc.Update(r.Context(), ownerID, in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, biz)
}

// Delete: DELETE /api/auth/business/{owner_id} (bearer)
func (h *BusinessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathID(r, "owner_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), ownerID); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "business deleted"})
}
