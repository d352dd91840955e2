package model

import (
	"time"

	"github.com/golang-jwt/jwt"
)

type ViewerRole string

const (
	RoleViewer  ViewerRole = "viewer"
	RoleCreator ViewerRole = "creator"
	RoleAdmin   ViewerRole = "admin"
)

type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
	AccountBanned    AccountStatus = "banned"
)

type Viewer struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	UserName  string        `json:"user_name"`
	Password  string        `json:"-"`
	Role      ViewerRole    `json:"role"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CanAuthenticate reports whether this account may act as a principal.
// Suspended and banned viewers are treated as anonymous even with a valid token.
func (v Viewer) CanAuthenticate() bool {
	return v.Status == AccountActive
}

type ViewerClaims struct {
	UserName string `json:"user_name"`
	jwt.StandardClaims
}
