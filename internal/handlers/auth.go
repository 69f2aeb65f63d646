package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/auth"
	"github.com/Enodevs/speedvoice-backend/internal/httpx"
	"github.com/Enodevs/speedvoice-backend/internal/models"
	"github.com/Enodevs/speedvoice-backend/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler covers registration, the email existence check and the
// passwordless login flow.
type AuthHandler struct {
	DB     *gorm.DB
	Logins *services.LoginTokenService
}

func NewAuthHandler(db *gorm.DB, logins *services.LoginTokenService) *AuthHandler {
	return &AuthHandler{DB: db, Logins: logins}
}

// Register: POST /api/user/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName   string `json:"fullname"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		CustomerID string `json:"customer_id"`
		Plan       string `json:"product_type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	parts := strings.Fields(req.FullName)
	if len(parts) < 2 {
		httpx.Error(w, fmt.Errorf("fullname must include first and last names: %w", apperr.ErrValidation))
		return
	}
	if req.Email == "" {
		httpx.Error(w, fmt.Errorf("email is required: %w", apperr.ErrValidation))
		return
	}
	if req.Plan == "" {
		req.Plan = models.PlanBasic
	}
	if req.Plan != models.PlanBasic && req.Plan != models.PlanPremium {
		httpx.Error(w, fmt.Errorf("unknown plan %q: %w", req.Plan, apperr.ErrValidation))
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	if count > 0 {
		httpx.Error(w, fmt.Errorf("email already registered: %w", apperr.ErrConflict))
		return
	}

	password := req.Password
	if password == "" {
		// Passwordless accounts still get an unguessable credential.
		password = auth.MintKey()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}

	user := models.User{
		Email:      req.Email,
		Username:   parts[0],
		FullName:   req.FullName,
		Password:   string(hash),
		CustomerID: req.CustomerID,
		Plan:       req.Plan,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

// CheckEmail: POST /api/auth/check-user-email
func (h *AuthHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Email == "" {
		httpx.Error(w, fmt.Errorf("email is required: %w", apperr.ErrValidation))
		return
	}
	var count int64
	if err := h.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"user_exists": count > 0})
}

// GenerateLoginToken: POST /api/auth/generate-login-token
func (h *AuthHandler) GenerateLoginToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	token, err := h.Logins.Generate(req.Email)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"token": token})
}

// TokenLogin: POST /api/auth/token-login
func (h *AuthHandler) TokenLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Token == "" {
		httpx.Error(w, fmt.Errorf("token is required: %w", apperr.ErrValidation))
		return
	}
	session, err := h.Logins.Exchange(req.Token)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, session)
}

// PasswordLogin: POST /api/user/token — email + password fallback that
// returns the same session payload as the passwordless flow.
func (h *AuthHandler) PasswordLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	var user models.User
	err := h.DB.Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, fmt.Errorf("invalid credentials: %w", apperr.ErrAuthorization))
			return
		}
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		httpx.Error(w, fmt.Errorf("invalid credentials: %w", apperr.ErrAuthorization))
		return
	}
	key, err := h.Logins.SessionToken(&user)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, services.Session{
		AuthToken: key,
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
	})
}
