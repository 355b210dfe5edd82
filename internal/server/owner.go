package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	ownerdomain "github.com/matjarly/matjarly/internal/owner/domain"
)

func (s *Server) AddOwner(c *gin.Context) {
	var req ownerdomain.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	req.StoreID = storeID

	owner, err := s.ownerSvc.Add(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, owner)
}

func (s *Server) ListOwners(c *gin.Context) {
	var req ownerdomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	owners, meta, err := s.ownerSvc.List(c.Request.Context(), storeID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, owners, meta)
}

func (s *Server) GetOwner(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	owner, err := s.ownerSvc.Get(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, owner)
}

func (s *Server) UpdateOwner(c *gin.Context) {
	var req ownerdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	owner, err := s.ownerSvc.Update(c.Request.Context(), storeID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, owner)
}

func (s *Server) TransferPrimaryOwner(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.ownerSvc.TransferPrimary(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Primary ownership transferred", "تم نقل الملكية الرئيسية", nil)
}

func (s *Server) RemoveOwner(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.ownerSvc.Remove(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Owner removed", "تمت إزالة المالك", nil)
}
