package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	pmdomain "github.com/matjarly/matjarly/internal/paymentmethod/domain"
)

func (s *Server) CreatePaymentMethod(c *gin.Context) {
	var req pmdomain.CreateRequest
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

	method, err := s.paymentSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, method)
}

func (s *Server) ListPaymentMethods(c *gin.Context) {
	var req pmdomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	methods, meta, err := s.paymentSvc.List(c.Request.Context(), storeID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, methods, meta)
}

func (s *Server) GetPaymentMethod(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	method, err := s.paymentSvc.Get(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, method)
}

func (s *Server) UpdatePaymentMethod(c *gin.Context) {
	var req pmdomain.UpdateRequest
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

	method, err := s.paymentSvc.Update(c.Request.Context(), storeID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, method)
}

func (s *Server) SetDefaultPaymentMethod(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	method, err := s.paymentSvc.SetDefault(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Default payment method updated", "تم تحديث طريقة الدفع الافتراضية", method)
}

func (s *Server) TogglePaymentMethodActive(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	method, err := s.paymentSvc.ToggleActive(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, method)
}

func (s *Server) DeletePaymentMethod(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.paymentSvc.Delete(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Payment method deleted", "تم حذف طريقة الدفع", nil)
}

// UploadPaymentMethodLogo stores an image and points the method's logo
// at it.
func (s *Server) UploadPaymentMethodLogo(c *gin.Context) {
	s.uploadPaymentMethodImage(c, "payment-methods/logos", func(req *pmdomain.UpdateRequest, url string) {
		req.LogoURL = &url
	})
}

// UploadPaymentMethodQR stores an image and points the method's QR code
// at it.
func (s *Server) UploadPaymentMethodQR(c *gin.Context) {
	s.uploadPaymentMethodImage(c, "payment-methods/qr", func(req *pmdomain.UpdateRequest, url string) {
		req.QRCodeURL = &url
	})
}

func (s *Server) uploadPaymentMethodImage(c *gin.Context, folder string, assign func(*pmdomain.UpdateRequest, string)) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, filename, err := readUpload(c, "file", maxImageBytes)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	url, _, err := s.uploader.Upload(c.Request.Context(), data, filename, folder)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	req := pmdomain.UpdateRequest{ID: strings.TrimSpace(c.Param("id"))}
	assign(&req, url)

	method, err := s.paymentSvc.Update(c.Request.Context(), storeID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, method)
}
