package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	dmdomain "github.com/matjarly/matjarly/internal/deliverymethod/domain"
)

func (s *Server) CreateDeliveryMethod(c *gin.Context) {
	var req dmdomain.CreateRequest
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

	method, err := s.deliverySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, method)
}

func (s *Server) ListDeliveryMethods(c *gin.Context) {
	var req dmdomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	methods, meta, err := s.deliverySvc.List(c.Request.Context(), storeID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, methods, meta)
}

func (s *Server) GetDeliveryMethod(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	method, err := s.deliverySvc.Get(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, method)
}

func (s *Server) UpdateDeliveryMethod(c *gin.Context) {
	var req dmdomain.UpdateRequest
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

	method, err := s.deliverySvc.Update(c.Request.Context(), storeID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, method)
}

func (s *Server) SetDefaultDeliveryMethod(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	method, err := s.deliverySvc.SetDefault(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Default delivery method updated", "تم تحديث طريقة التوصيل الافتراضية", method)
}

func (s *Server) ToggleDeliveryMethodActive(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	method, err := s.deliverySvc.ToggleActive(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, method)
}

func (s *Server) DeleteDeliveryMethod(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.deliverySvc.Delete(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Delivery method deleted", "تم حذف طريقة التوصيل", nil)
}
