package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	storedomain "github.com/matjarly/matjarly/internal/store/domain"
)

// publicStore is the storefront view of a store; subscription fields
// stay private.
type publicStore struct {
	ID            string         `json:"id"`
	NameAr        string         `json:"nameAr"`
	NameEn        string         `json:"nameEn"`
	DescriptionAr string         `json:"descriptionAr"`
	DescriptionEn string         `json:"descriptionEn"`
	Slug          string         `json:"slug"`
	Phone         string         `json:"phone"`
	Address       string         `json:"address"`
	LogoURL       string         `json:"logoUrl"`
	Settings      map[string]any `json:"settings"`
}

func (s *Server) storefrontStore(c *gin.Context) (*storedomain.Store, bool) {
	store, err := s.storeSvc.GetBySlug(c.Request.Context(), strings.TrimSpace(c.Param("slug")))
	if err != nil {
		AbortWithError(c, err)
		return nil, false
	}
	// Deactivated stores disappear from the public surface.
	if store.Status != storedomain.StoreStatusActive {
		AbortWithError(c, storedomain.ErrNotFound)
		return nil, false
	}
	return store, true
}

func (s *Server) GetStorefront(c *gin.Context) {
	store, ok := s.storefrontStore(c)
	if !ok {
		return
	}

	respondOK(c, publicStore{
		ID:            store.ID.String(),
		NameAr:        store.NameAr,
		NameEn:        store.NameEn,
		DescriptionAr: store.DescriptionAr,
		DescriptionEn: store.DescriptionEn,
		Slug:          store.Slug,
		Phone:         store.Phone,
		Address:       store.Address,
		LogoURL:       store.LogoURL,
		Settings:      store.Settings,
	})
}

func (s *Server) GetStorefrontPaymentMethods(c *gin.Context) {
	store, ok := s.storefrontStore(c)
	if !ok {
		return
	}

	methods, err := s.paymentSvc.ListActive(c.Request.Context(), store.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, methods)
}

func (s *Server) GetStorefrontDeliveryMethods(c *gin.Context) {
	store, ok := s.storefrontStore(c)
	if !ok {
		return
	}

	methods, err := s.deliverySvc.ListActive(c.Request.Context(), store.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, methods)
}

func (s *Server) GetStorefrontSliders(c *gin.Context) {
	store, ok := s.storefrontStore(c)
	if !ok {
		return
	}

	sliders, err := s.sliderSvc.ListActive(c.Request.Context(), store.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, sliders)
}

// IncrementStorefrontSliderView is the public counterpart of the
// authenticated counter endpoints; keyed by slug, not store scope.
func (s *Server) IncrementStorefrontSliderView(c *gin.Context) {
	store, ok := s.storefrontStore(c)
	if !ok {
		return
	}

	if err := s.sliderSvc.IncrementView(c.Request.Context(), store.ID, strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, nil)
}

func (s *Server) IncrementStorefrontSliderClick(c *gin.Context) {
	store, ok := s.storefrontStore(c)
	if !ok {
		return
	}

	if err := s.sliderSvc.IncrementClick(c.Request.Context(), store.ID, strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, nil)
}
