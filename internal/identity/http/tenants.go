package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/midgardlabs/tenantauth/internal/identity/domain"
	"github.com/midgardlabs/tenantauth/internal/identity/service"
	"github.com/midgardlabs/tenantauth/pkg/slogx"
)

type ProvisionHandler struct {
	ProvisionService *service.ProvisionService
}

// ServeHTTP registers a tenant together with its first administrator. The
// two records are created in one transaction; a failure of either leaves no
// trace of the other.
func (h *ProvisionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req provisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	result, err := h.ProvisionService.Provision(ctx, domain.ProvisionInput{
		TenantName:    req.TenantName,
		Subdomain:     req.Subdomain,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
		AdminFullName: req.AdminFullName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeFailure(w, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, service.ErrConflict):
			writeFailure(w, http.StatusConflict, "Subdomain or email already exists")
		default:
			log.Error("tenant registration failed", "err", err)
			writeFailure(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	writeSuccess(w, http.StatusCreated, "Tenant registered successfully", provisionData{
		TenantID:  result.Tenant.ID,
		Subdomain: result.Tenant.Subdomain,
		AdminUser: newUserInfo(result.AdminUser),
	})
}
