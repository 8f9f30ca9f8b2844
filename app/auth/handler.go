package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/frechnel/shop-api/app/api"
	"github.com/frechnel/shop-api/models"
)

type AdminProvider interface {
	GetByEmail(email string) (*models.Admin, error)
}

type AuthHandler struct {
	admins AdminProvider
	tokens *Tokens
}

func NewAuthHandler(admins AdminProvider, tokens *Tokens) *AuthHandler {
	return &AuthHandler{admins: admins, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Admin   struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"admin"`
}

// HandleLogin checks the credential pair against the stored admin and
// issues a bearer token. The response never says which field was wrong.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		api.Error(w, http.StatusBadRequest, "email and password required")
		return
	}

	admin, err := h.admins.GetByEmail(in.Email)
	if err != nil {
		if errors.Is(err, models.ErrAdminNotFound) {
			api.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		api.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)) != nil {
		api.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.tokens.Sign(admin.ID, admin.Email)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "token error")
		return
	}

	resp := loginResponse{Success: true, Token: token}
	resp.Admin.ID = admin.ID
	resp.Admin.Email = admin.Email
	api.WriteJSON(w, http.StatusOK, resp)
}
