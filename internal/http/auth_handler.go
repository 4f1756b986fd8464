package httpapi

import (
	"net/http"

	"hostel-data/internal/service"
)

type AuthHandler struct {
	Auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		UserAccount string `json:"user_account"`
		Password    string `json:"password"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}

	resp, err := h.Auth.Login(r.Context(), service.LoginRequest{
		UserAccount: payload.UserAccount,
		Password:    payload.Password,
		IPAddress:   clientIP(r),
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := h.Auth.Logout(r.Context(), bearerToken(r)); err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to logout"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"logged_out": true}))
}
