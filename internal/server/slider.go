package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	sliderdomain "github.com/matjarly/matjarly/internal/slider/domain"
)

func (s *Server) CreateSlider(c *gin.Context) {
	var req sliderdomain.CreateRequest
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

	slider, err := s.sliderSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, slider)
}

func (s *Server) ListSliders(c *gin.Context) {
	var req sliderdomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	sliders, meta, err := s.sliderSvc.List(c.Request.Context(), storeID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, sliders, meta)
}

func (s *Server) GetSlider(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	slider, err := s.sliderSvc.Get(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, slider)
}

func (s *Server) UpdateSlider(c *gin.Context) {
	var req sliderdomain.UpdateRequest
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

	slider, err := s.sliderSvc.Update(c.Request.Context(), storeID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, slider)
}

func (s *Server) DeleteSlider(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.sliderSvc.Delete(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Slider deleted", "تم حذف السلايدر", nil)
}

// UploadSliderMedia accepts an image or a video depending on the
// slider's kind; videos get the larger cap.
func (s *Server) UploadSliderMedia(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	slider, err := s.sliderSvc.Get(c.Request.Context(), storeID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	maxBytes := int64(maxImageBytes)
	folder := "sliders/images"
	if slider.Kind == sliderdomain.KindVideo {
		maxBytes = maxVideoBytes
		folder = "sliders/videos"
	}

	data, filename, err := readUpload(c, "file", maxBytes)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	url, _, err := s.uploader.Upload(c.Request.Context(), data, filename, folder)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	req := sliderdomain.UpdateRequest{ID: id}
	if slider.Kind == sliderdomain.KindVideo {
		req.VideoURL = &url
	} else {
		req.ImageURL = &url
	}

	updated, err := s.sliderSvc.Update(c.Request.Context(), storeID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, updated)
}

func (s *Server) IncrementSliderView(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.sliderSvc.IncrementView(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, nil)
}

func (s *Server) IncrementSliderClick(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.sliderSvc.IncrementClick(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, nil)
}
