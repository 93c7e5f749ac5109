// Package identity resolves "who is calling" for the workflow services: the
// user id from the validated session, plus an optional role looked up from the
// user_roles table.
package identity

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DENNYYESSAR/alx-polly/internal/middleware"
	"github.com/DENNYYESSAR/alx-polly/internal/models"
)

// Identity describes the current caller. The zero value is anonymous.
type Identity struct {
	UserID        uuid.UUID
	Role          string
	Authenticated bool
}

// Anonymous is the identity of an unauthenticated caller.
var Anonymous = Identity{}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Authenticated && i.Role == models.RoleAdmin
}

// RoleStore looks up a user's assigned role. "" means no role assigned.
type RoleStore interface {
	GetRole(ctx context.Context, userID uuid.UUID) (string, error)
}

// Resolver builds an Identity from the request context.
type Resolver struct {
	roles  RoleStore
	logger *zap.Logger
}

// NewResolver creates an identity resolver.
func NewResolver(roles RoleStore, logger *zap.Logger) *Resolver {
	return &Resolver{roles: roles, logger: logger}
}

// FromRequest resolves the caller of the given request. No session yields
// Anonymous. A failed role lookup is logged and treated as "no role": having
// no role is the normal case for regular users and must never block a flow.
func (r *Resolver) FromRequest(c *gin.Context) Identity {
	val, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return Anonymous
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		return Anonymous
	}

	id := Identity{UserID: userID, Authenticated: true}
	role, err := r.roles.GetRole(c.Request.Context(), userID)
	if err != nil {
		r.logger.Warn("role lookup failed, continuing without role",
			zap.String("user_id", userID.String()), zap.Error(err))
		return id
	}
	id.Role = role
	return id
}
