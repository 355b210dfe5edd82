package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/matjarly/matjarly/internal/storecontext"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
)

func (s *Server) CreateUser(c *gin.Context) {
	var req userdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if req.Role.StoreScoped() {
		storeID, err := s.resolveStore(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		req.StoreID = &storeID
	}

	user, err := s.userSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, user)
}

func (s *Server) ListUsers(c *gin.Context) {
	var req userdomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	identity, _ := storecontext.IdentityFromContext(c.Request.Context())
	if identity.Role != string(userdomain.RoleSuperadmin) || c.Query("storeId") != "" {
		storeID, err := s.resolveStore(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		req.StoreID = &storeID
	}

	users, meta, err := s.userSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, users, meta)
}

func (s *Server) GetUser(c *gin.Context) {
	id, err := parseSnowflakeParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	user, err := s.userSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	identity, _ := storecontext.IdentityFromContext(c.Request.Context())
	if identity.Role != string(userdomain.RoleSuperadmin) {
		storeID, err := s.resolveStore(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		// Users outside the caller's store do not exist as far as
		// the caller is concerned.
		if user.StoreID == nil || *user.StoreID != storeID {
			AbortWithError(c, userdomain.ErrNotFound)
			return
		}
	}

	respondOK(c, user)
}

func (s *Server) UpdateUser(c *gin.Context) {
	var req userdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	identity, _ := storecontext.IdentityFromContext(c.Request.Context())
	if identity.Role != string(userdomain.RoleSuperadmin) {
		storeID, err := s.resolveStore(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		req.StoreID = &storeID
	}

	user, err := s.userSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, user)
}

func (s *Server) DeleteUser(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.userSvc.Delete(c.Request.Context(), &storeID, strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "User deleted", "تم حذف المستخدم", nil)
}
