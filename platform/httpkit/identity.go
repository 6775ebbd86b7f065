// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity is the signed-in staff member as seen by handlers.
type Identity interface {
	StaffID() uuid.UUID
	// Name is the display name used as the default action author.
	Name() string
	Email() string
	IsAuthenticated() bool
}

type identity struct {
	staffID       uuid.UUID
	name          string
	email         string
	authenticated bool
}

func (i *identity) StaffID() uuid.UUID    { return i.staffID }
func (i *identity) Name() string          { return i.name }
func (i *identity) Email() string         { return i.email }
func (i *identity) IsAuthenticated() bool { return i.authenticated }

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if staff info is not present.
func GetIdentity(c *gin.Context) Identity {
	raw, ok := c.Get(ContextStaffIDKey)
	if !ok {
		return &identity{}
	}
	staffID, ok := raw.(uuid.UUID)
	if !ok {
		return &identity{}
	}

	return &identity{
		staffID:       staffID,
		name:          c.GetString(ContextStaffNameKey),
		email:         c.GetString(ContextStaffEmailKey),
		authenticated: true,
	}
}

// MustGetIdentity aborts with 401 and returns nil when nobody is signed in.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return nil
	}
	return id
}
