package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	subscriptiondomain "github.com/matjarly/matjarly/internal/subscription/domain"
)

func (s *Server) ActivateSubscription(c *gin.Context) {
	var req subscriptiondomain.ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.StoreID = strings.TrimSpace(c.Param("id"))

	store, err := s.subscriptionSvc.Activate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Subscription activated", "تم تفعيل الاشتراك", store)
}

type extendTrialRequest struct {
	Days int `json:"days" binding:"required"`
}

func (s *Server) ExtendTrial(c *gin.Context) {
	var req extendTrialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	store, err := s.subscriptionSvc.ExtendTrial(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Days)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Trial extended", "تم تمديد الفترة التجريبية", store)
}

type cancelSubscriptionRequest struct {
	Immediate bool `json:"immediate"`
}

func (s *Server) CancelSubscription(c *gin.Context) {
	var req cancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	store, err := s.subscriptionSvc.Cancel(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Immediate)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Subscription cancelled", "تم إلغاء الاشتراك", store)
}

// RunSubscriptionCheck is the manual trigger behind the scheduler's
// periodic sweep.
func (s *Server) RunSubscriptionCheck(c *gin.Context) {
	report, err := s.subscriptionSvc.RunCheck(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, report)
}
