package server

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/matjarly/matjarly/internal/storecontext"
)

// AuthRequired verifies the bearer token and places the caller identity
// (and token-scoped store, when present) into the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		claims, err := s.issuer.Verify(strings.TrimSpace(raw))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := storecontext.WithIdentity(c.Request.Context(), storecontext.Identity{
			UserID: userID,
			Role:   claims.Role,
		})
		if claims.StoreID != "" {
			if storeID, err := snowflake.ParseString(claims.StoreID); err == nil && storeID != 0 {
				ctx = storecontext.WithStoreID(ctx, storeID)
			}
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole is the coarse gate; the authorization service re-checks
// ownership per store behind it.
func (s *Server) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := storecontext.IdentityFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}

// resolveStore scopes the request to a store via the central resolver
// and caches the result on the request context.
func (s *Server) resolveStore(c *gin.Context) (snowflake.ID, error) {
	ctx := c.Request.Context()
	storeID, err := s.resolver.Resolve(ctx, c.Query("storeId"))
	if err != nil {
		return 0, err
	}
	c.Request = c.Request.WithContext(storecontext.WithStoreID(ctx, storeID))
	return storeID, nil
}

// authorize gates a route on a capability-backed object/action pair in
// the resolved store.
func (s *Server) authorize(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := storecontext.IdentityFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		storeID, err := s.resolveStore(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		if err := s.authzSvc.Authorize(c.Request.Context(), identity.UserID, identity.Role, storeID, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// authorizePrimary gates a route on the caller being the store's
// primary owner.
func (s *Server) authorizePrimary() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := storecontext.IdentityFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		storeID, err := s.resolveStore(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		if err := s.authzSvc.AuthorizePrimary(c.Request.Context(), identity.UserID, identity.Role, storeID); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// rateLimit throttles a route per client IP. The bucket degrades open
// when redis is unavailable.
func (s *Server) rateLimit(name string, rate float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + name + ":" + c.ClientIP()
		res, err := s.limiter.Allow(c.Request.Context(), key, rate, burst)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}

func classifyErrorForLog(err error) (string, string) {
	out := mapError(err)
	return "api_error", out.Code
}
