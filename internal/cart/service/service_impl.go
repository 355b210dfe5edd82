package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	cartdomain "github.com/matjarly/matjarly/internal/cart/domain"
	"github.com/matjarly/matjarly/internal/clock"
	dmdomain "github.com/matjarly/matjarly/internal/deliverymethod/domain"
	pmdomain "github.com/matjarly/matjarly/internal/paymentmethod/domain"
	"github.com/matjarly/matjarly/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     cartdomain.Repository
	Payments pmdomain.Service
	Delivery dmdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     cartdomain.Repository
	payments pmdomain.Service
	delivery dmdomain.Service
}

func NewService(p Params) cartdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("cart.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		payments: p.Payments,
		delivery: p.Delivery,
	}
}

// GetOpenCart returns the client's open cart, creating one when none
// exists.
func (s *Service) GetOpenCart(ctx context.Context, storeID, userID snowflake.ID) (*cartdomain.Cart, error) {
	cart, err := s.repo.FindOpenCart(ctx, s.db, storeID, userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	now := s.clock.Now()
	cart = &cartdomain.Cart{
		ID:        s.genID.Generate(),
		StoreID:   storeID,
		UserID:    userID,
		Status:    cartdomain.CartStatusOpen,
		Items:     []cartdomain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertCart(ctx, s.db, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) AddItem(ctx context.Context, storeID, userID snowflake.ID, req cartdomain.AddItemRequest) (*cartdomain.Cart, error) {
	if req.Quantity < 1 {
		return nil, cartdomain.ErrInvalidQuantity
	}

	cart, err := s.GetOpenCart(ctx, storeID, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	item := &cartdomain.CartItem{
		ID:             s.genID.Generate(),
		CartID:         cart.ID,
		ProductName:    strings.TrimSpace(req.ProductName),
		UnitPriceCents: req.UnitPriceCents,
		Quantity:       req.Quantity,
		Notes:          strings.TrimSpace(req.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.InsertItem(ctx, s.db, item); err != nil {
		return nil, err
	}
	return s.GetOpenCart(ctx, storeID, userID)
}

func (s *Service) UpdateItemQuantity(ctx context.Context, storeID, userID snowflake.ID, itemID string, quantity int) (*cartdomain.Cart, error) {
	if quantity < 1 {
		return nil, cartdomain.ErrInvalidQuantity
	}

	cart, item, err := s.findItem(ctx, storeID, userID, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	item.UpdatedAt = s.clock.Now()
	if err := s.repo.UpdateItem(ctx, s.db, item); err != nil {
		return nil, err
	}
	return s.GetOpenCart(ctx, cart.StoreID, userID)
}

func (s *Service) RemoveItem(ctx context.Context, storeID, userID snowflake.ID, itemID string) (*cartdomain.Cart, error) {
	cart, item, err := s.findItem(ctx, storeID, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteItem(ctx, s.db, cart.ID, item.ID); err != nil {
		return nil, err
	}
	return s.GetOpenCart(ctx, storeID, userID)
}

func (s *Service) Clear(ctx context.Context, storeID, userID snowflake.ID) error {
	cart, err := s.GetOpenCart(ctx, storeID, userID)
	if err != nil {
		return err
	}
	return s.repo.DeleteItems(ctx, s.db, cart.ID)
}

// Checkout snapshots the open cart into an order. Both methods must be
// active in the store; totals include the delivery price.
func (s *Service) Checkout(ctx context.Context, storeID, userID snowflake.ID, req cartdomain.CheckoutRequest) (*cartdomain.Order, error) {
	cart, err := s.GetOpenCart(ctx, storeID, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, cartdomain.ErrCartEmpty
	}

	payment, err := s.payments.Get(ctx, storeID, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if !payment.IsActive {
		return nil, cartdomain.ErrMethodNotAvailable
	}

	delivery, err := s.delivery.Get(ctx, storeID, req.DeliveryMethodID)
	if err != nil {
		return nil, err
	}
	if !delivery.IsActive {
		return nil, cartdomain.ErrMethodNotAvailable
	}

	now := s.clock.Now()
	subtotal := cart.Subtotal()
	order := &cartdomain.Order{
		ID:      s.genID.Generate(),
		StoreID: storeID,
		UserID:  userID,
		CartID:  cart.ID,
		Status:  cartdomain.OrderStatusPlaced,

		SubtotalCents: subtotal,
		DeliveryCents: delivery.Price,
		TotalCents:    subtotal + delivery.Price,

		PaymentMethodID:     payment.ID,
		PaymentMethodTitle:  payment.TitleEn,
		PaymentMethodType:   string(payment.MethodType),
		DeliveryMethodID:    delivery.ID,
		DeliveryMethodTitle: delivery.TitleEn,

		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, cartdomain.OrderItem{
			ID:             s.genID.Generate(),
			OrderID:        order.ID,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			Notes:          item.Notes,
			CreatedAt:      now,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertOrder(ctx, tx, order); err != nil {
			return err
		}
		cart.Status = cartdomain.CartStatusCheckedOut
		cart.UpdatedAt = now
		return s.repo.UpdateCart(ctx, tx, cart)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("cart checked out",
		zap.String("store_id", storeID.String()),
		zap.String("order_id", order.ID.String()),
		zap.Int64("total_cents", order.TotalCents),
	)
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, storeID snowflake.ID, orderID string) (*cartdomain.Order, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(orderID))
	if err != nil || id == 0 {
		return nil, cartdomain.ErrInvalidOrderID
	}

	order, err := s.repo.FindOrderByID(ctx, s.db, storeID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, cartdomain.ErrOrderNotFound
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, storeID snowflake.ID, req cartdomain.ListOrdersRequest) ([]cartdomain.Order, pagination.Meta, error) {
	orders, total, err := s.repo.ListOrders(ctx, s.db, storeID, req)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return orders, pagination.BuildMeta(req.Pagination, total), nil
}

func (s *Service) findItem(ctx context.Context, storeID, userID snowflake.ID, itemID string) (*cartdomain.Cart, *cartdomain.CartItem, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(itemID))
	if err != nil || id == 0 {
		return nil, nil, cartdomain.ErrInvalidItemID
	}

	cart, err := s.GetOpenCart(ctx, storeID, userID)
	if err != nil {
		return nil, nil, err
	}
	for i := range cart.Items {
		if cart.Items[i].ID == id {
			return cart, &cart.Items[i], nil
		}
	}
	return nil, nil, cartdomain.ErrItemNotFound
}
