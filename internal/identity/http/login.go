package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/midgardlabs/tenantauth/internal/identity/service"
	"github.com/midgardlabs/tenantauth/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP authenticates a credential pair and returns a signed session
// token. Unknown email and wrong password produce identical 401 responses
// so the endpoint leaks nothing about which accounts exist.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Email, password, and subdomain required")
		return
	}

	result, err := h.AuthService.Authenticate(ctx, req.Email, req.Password, req.TenantSubdomain)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeFailure(w, http.StatusBadRequest, "Email, password, and subdomain required")
		case errors.Is(err, service.ErrInvalidCredentials):
			writeFailure(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, service.ErrTenantSuspended):
			writeFailure(w, http.StatusForbidden, "Account suspended or inactive")
		default:
			log.Error("login failed", "err", err)
			writeFailure(w, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	writeSuccess(w, http.StatusOK, "", loginData{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		User:      newUserInfo(result.User),
	})
}
