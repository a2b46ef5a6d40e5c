package http

import (
	"net/http"

	"github.com/midgardlabs/tenantauth/internal/identity/domain"
	"github.com/midgardlabs/tenantauth/pkg/httpx"
)

// envelope is the uniform response shape for every endpoint: a success flag,
// a human-readable message, and an optional payload.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type provisionRequest struct {
	TenantName    string `json:"tenantName"`
	Subdomain     string `json:"subdomain"`
	AdminEmail    string `json:"adminEmail"`
	AdminPassword string `json:"adminPassword"`
	AdminFullName string `json:"adminFullName"`
}

type loginRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	TenantSubdomain string `json:"tenantSubdomain"`
}

type userInfo struct {
	ID       string `json:"id"`
	TenantID string `json:"tenantId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type provisionData struct {
	TenantID  string   `json:"tenantId"`
	Subdomain string   `json:"subdomain"`
	AdminUser userInfo `json:"adminUser"`
}

type loginData struct {
	Token     string   `json:"token"`
	ExpiresIn int64    `json:"expiresIn"`
	User      userInfo `json:"user"`
}

func newUserInfo(u domain.User) userInfo {
	return userInfo{
		ID:       u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	httpx.WriteJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	httpx.WriteJSON(w, status, envelope{Success: false, Message: message})
}
