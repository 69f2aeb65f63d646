package handlers

import (
	"fmt"
	"net/http"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/httpx"
	"github.com/Enodevs/speedvoice-backend/internal/services"
)

// ShareTokenHandler is the public, unauthenticated surface: a customer
// proves ownership of the invoice's email to get a share token, then
// redeems the token to view the invoice.
type ShareTokenHandler struct {
	Svc *services.AccessTokenService
}

func NewShareTokenHandler(svc *services.AccessTokenService) *ShareTokenHandler {
	return &ShareTokenHandler{Svc: svc}
}

// Issue: POST /api/invoice/share
func (h *ShareTokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InvoiceUID string `json:"invoice_uid"`
		Email      string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.InvoiceUID == "" || req.Email == "" {
		httpx.Error(w, fmt.Errorf("invoice_uid and email are required: %w", apperr.ErrValidation))
		return
	}
	token, err := h.Svc.Issue(req.InvoiceUID, req.Email)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"token":      token.Token,
		"expires_at": token.ExpiresAt,
	})
}

// View: GET /api/invoice/shared/{token}
func (h *ShareTokenHandler) View(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Svc.Verify(r.PathValue("token"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}
