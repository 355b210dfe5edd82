package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	cartdomain "github.com/matjarly/matjarly/internal/cart/domain"
	"github.com/matjarly/matjarly/internal/storecontext"
)

func (s *Server) cartScope(c *gin.Context) (snowflake.ID, snowflake.ID, error) {
	identity, ok := storecontext.IdentityFromContext(c.Request.Context())
	if !ok {
		return 0, 0, ErrUnauthorized
	}
	storeID, err := s.resolveStore(c)
	if err != nil {
		return 0, 0, err
	}
	return storeID, identity.UserID, nil
}

func (s *Server) GetCart(c *gin.Context) {
	storeID, userID, err := s.cartScope(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	cart, err := s.cartSvc.GetOpenCart(c.Request.Context(), storeID, userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, cart)
}

func (s *Server) AddCartItem(c *gin.Context) {
	var req cartdomain.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	storeID, userID, err := s.cartScope(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	cart, err := s.cartSvc.AddItem(c.Request.Context(), storeID, userID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, cart)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (s *Server) UpdateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	storeID, userID, err := s.cartScope(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	cart, err := s.cartSvc.UpdateItemQuantity(c.Request.Context(), storeID, userID, strings.TrimSpace(c.Param("itemId")), req.Quantity)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, cart)
}

func (s *Server) RemoveCartItem(c *gin.Context) {
	storeID, userID, err := s.cartScope(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	cart, err := s.cartSvc.RemoveItem(c.Request.Context(), storeID, userID, strings.TrimSpace(c.Param("itemId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, cart)
}

func (s *Server) ClearCart(c *gin.Context) {
	storeID, userID, err := s.cartScope(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.cartSvc.Clear(c.Request.Context(), storeID, userID); err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Cart cleared", "تم إفراغ السلة", nil)
}

func (s *Server) Checkout(c *gin.Context) {
	var req cartdomain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	storeID, userID, err := s.cartScope(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.cartSvc.Checkout(c.Request.Context(), storeID, userID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Order placed", "تم تقديم الطلب", order)
}

func (s *Server) GetOrder(c *gin.Context) {
	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.cartSvc.GetOrder(c.Request.Context(), storeID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, order)
}

func (s *Server) ListOrders(c *gin.Context) {
	var req cartdomain.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	storeID, err := s.resolveStore(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	orders, meta, err := s.cartSvc.ListOrders(c.Request.Context(), storeID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, orders, meta)
}
