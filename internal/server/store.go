package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/matjarly/matjarly/internal/storecontext"
	storedomain "github.com/matjarly/matjarly/internal/store/domain"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
)

// storePathID resolves the :id path parameter; non-superadmins may
// only address the store their token or ownership resolves to.
func (s *Server) storePathID(c *gin.Context) (string, error) {
	id := strings.TrimSpace(c.Param("id"))

	identity, ok := storecontext.IdentityFromContext(c.Request.Context())
	if !ok {
		return "", ErrUnauthorized
	}
	if identity.Role == string(userdomain.RoleSuperadmin) {
		return id, nil
	}

	storeID, err := s.resolveStore(c)
	if err != nil {
		return "", err
	}
	if storeID.String() != id {
		return "", ErrForbidden
	}
	return id, nil
}

func (s *Server) CreateStore(c *gin.Context) {
	var req storedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.TrialDays = s.cfg.TrialDays

	store, err := s.storeSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, store)
}

func (s *Server) ListStores(c *gin.Context) {
	var req storedomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	stores, meta, err := s.storeSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, stores, meta)
}

func (s *Server) GetStore(c *gin.Context) {
	id, err := s.storePathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	store, err := s.storeSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, store)
}

func (s *Server) UpdateStore(c *gin.Context) {
	var req storedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	id, err := s.storePathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	req.ID = id

	store, err := s.storeSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, store)
}

type setStoreStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

func (s *Server) SetStoreStatus(c *gin.Context) {
	var req setStoreStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	store, err := s.storeSvc.SetStatus(c.Request.Context(),
		strings.TrimSpace(c.Param("id")),
		storedomain.StoreStatus(req.Status),
		storedomain.StatusReason(req.Reason),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, store)
}

func (s *Server) DeleteStore(c *gin.Context) {
	id, err := s.storePathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.storeSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Store deleted", "تم حذف المتجر", nil)
}
