// Package auth identifies the caller of a request and gates admin routes
package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/wedding-api/internal/domain/guest"
	"github.com/gravadigital/wedding-api/internal/response"
	"github.com/gravadigital/wedding-api/internal/services"
)

const (
	// PasswordHeader carries a raw guest password
	PasswordHeader = "X-Auth-Password"
	actorKey       = "actor"
)

// Authorizer resolves a caller to an admin credential
type Authorizer interface {
	Authorize(ctx context.Context, caller services.Caller) (*guest.Credential, error)
}

// CallerFromRequest reads a bearer token and the password header
func CallerFromRequest(c *gin.Context) services.Caller {
	var caller services.Caller

	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			caller.Token = strings.TrimSpace(token)
		}
	}
	caller.Password = c.GetHeader(PasswordHeader)

	return caller
}

// AdminOnly aborts with 403 unless the caller resolves to an admin. It runs
// before any handler reads the body.
func AdminOnly(authorizer Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := authorizer.Authorize(c.Request.Context(), CallerFromRequest(c))
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// Actor returns the admin resolved by AdminOnly, or nil
func Actor(c *gin.Context) *guest.Credential {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*guest.Credential)
	return actor
}
