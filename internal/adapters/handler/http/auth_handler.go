package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vouchd/vouchd/internal/core/domain"
	"github.com/vouchd/vouchd/internal/core/ports"
)

const jwtCookieName = "jwt"

type AuthHandler struct {
	service      ports.AuthService
	cookieDomain string
}

func NewAuthHandler(service ports.AuthService, cookieDomain string) *AuthHandler {
	return &AuthHandler{
		service:      service,
		cookieDomain: cookieDomain,
	}
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Requires2FA bool   `json:"requires2FA"`
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	if err := h.service.Signup(r.Context(), req.Email, req.Password, req.Requires2FA); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail), errors.Is(err, domain.ErrInvalidPassword):
			writeError(w, http.StatusBadRequest, "Invalid credentials!")
		case errors.Is(err, domain.ErrUserAlreadyExists):
			writeError(w, http.StatusConflict, "User already exists!")
		default:
			writeError(w, http.StatusInternalServerError, "Unexpected error!")
		}
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "User created successfully!"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail), errors.Is(err, domain.ErrInvalidPassword):
			writeError(w, http.StatusBadRequest, "Invalid credentials!")
		case errors.Is(err, domain.ErrAuthenticationFailed):
			// unknown user and wrong password are indistinguishable here
			writeError(w, http.StatusUnauthorized, "Authentication failed!")
		default:
			writeError(w, http.StatusInternalServerError, "Unexpected error!")
		}
		return
	}

	h.setTokenCookie(w, result.Token, int(result.ExpiresIn.Seconds()))
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     result.Token,
		ExpiresIn: int(result.ExpiresIn.Seconds()),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(jwtCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusBadRequest, "Missing Token!")
		return
	}

	if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
		writeTokenError(w, err)
		return
	}

	h.expireTokenCookie(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully!"})
}

func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var req verifyTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	if _, err := h.service.VerifyToken(r.Context(), req.Token); err != nil {
		writeTokenError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Token is valid!"})
}

// writeTokenError coalesces the internal token-failure kinds into the single
// unauthorized signal the boundary exposes.
func writeTokenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		writeError(w, http.StatusBadRequest, "Missing Token!")
	case errors.Is(err, domain.ErrTokenRevoked),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenMalformed):
		writeError(w, http.StatusUnauthorized, "JWT is not valid!")
	default:
		writeError(w, http.StatusInternalServerError, "Unexpected error!")
	}
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwtCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func (h *AuthHandler) expireTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: jwtCookieName, MaxAge: -1, Path: "/", Domain: h.cookieDomain})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
