package service

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"storefront-service/internal/dto"
	"storefront-service/internal/model"
	"storefront-service/internal/repository"
	"storefront-service/internal/status"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Insert(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.Order, error)
	FindAll(ctx context.Context) ([]*model.Order, error)
	FindByStatusCode(ctx context.Context, code string) ([]*model.Order, error)
	AppendStatus(ctx context.Context, orderID string, record model.StatusRecord, setStatus bool, logistics map[string]interface{}) error
	MarkPaid(ctx context.Context, orderID string) error
}

// OrderPublisher emits lifecycle events to the broker; implementations must
// be safe to call with a down broker.
type OrderPublisher interface {
	PublishOrderPlaced(o *model.Order)
}

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderForbidden = errors.New("order belongs to another user")
	ErrOrderFinal     = errors.New("order is in a final state")
)

// CouponRejectedError carries the validation message for a coupon that was
// sent with checkout but did not pass.
type CouponRejectedError struct{ Message string }

func (e *CouponRejectedError) Error() string { return e.Message }

// Actor identifies who caused a status change.
type Actor struct {
	Type string // admin | system | customer
	Name string
}

type OrderService struct {
	orders      OrderRepository
	cart        *CartService
	coupons     *CouponService
	publisher   OrderPublisher
	deliveryFee float64
}

func NewOrderService(orders OrderRepository, cart *CartService, coupons *CouponService, publisher OrderPublisher, deliveryFee float64) *OrderService {
	return &OrderService{
		orders:      orders,
		cart:        cart,
		coupons:     coupons,
		publisher:   publisher,
		deliveryFee: deliveryFee,
	}
}

// PlaceOrder snapshots the user's cart into an immutable order, applies the
// coupon if one was sent, clears the cart and emits an order_placed event.
// Coupon redemption runs after the order insert as a conditional update; a
// crash between the two leaves the count low, never high.
func (s *OrderService) PlaceOrder(ctx context.Context, userID, userName string, req dto.PlaceOrderRequest) (*model.Order, error) {
	view, err := s.cart.View(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := view.Subtotal
	var couponCode string
	var discount float64
	if req.CouponCode != "" {
		result, err := s.coupons.Validate(ctx, req.CouponCode, subtotal)
		if err != nil {
			return nil, err
		}
		if !result.Success {
			return nil, &CouponRejectedError{Message: result.Message}
		}
		couponCode = NormalizeCode(req.CouponCode)
		discount = result.DiscountAmount
	}

	amount := Round2(math.Max(0, subtotal-discount) + s.deliveryFee)

	items := make([]model.OrderItem, 0, len(view.Items))
	for _, line := range view.Items {
		items = append(items, model.OrderItem{
			ProductID:       line.ProductID,
			Name:            line.Name,
			Size:            line.Size,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			LineTotal:       line.LineTotal,
		})
	}

	code, label := status.Resolve(string(status.Placed))
	now := time.Now().UTC()
	order := &model.Order{
		OrderNumber:    uuid.NewString(),
		UserID:         userID,
		Items:          items,
		Subtotal:       subtotal,
		CouponCode:     couponCode,
		CouponDiscount: discount,
		DeliveryFee:    s.deliveryFee,
		Amount:         amount,
		Address:        req.Address,
		PaymentMethod:  req.PaymentMethod,
		Payment:        false,
		Status:         label,
		StatusCode:     string(code),
		History: []model.StatusRecord{{
			Status:     label,
			StatusCode: string(code),
			Note:       "Order placed",
			ActorType:  "customer",
			ActorName:  userName,
			CreatedAt:  now,
		}},
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	if couponCode != "" {
		if err := s.coupons.Redeem(ctx, couponCode); err != nil {
			// order stands; the count stays low rather than blocking checkout
			log.Printf("coupon %s redemption after order %s: %v", couponCode, order.OrderNumber, err)
		}
	}

	if err := s.cart.ClearCart(ctx, userID); err != nil {
		log.Printf("failed to clear cart for %s: %v", userID, err)
	}

	if s.publisher != nil {
		s.publisher.PublishOrderPlaced(order)
	}
	return order, nil
}

// UpdateStatus resolves the incoming status (canonical code or legacy label)
// and appends exactly one history record. Logistics fields that are set merge
// into the order's summary; fields left empty keep their previous values.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, newStatus, note string, logistics model.Logistics, actor Actor) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if status.Code(order.StatusCode).Terminal() {
		return ErrOrderFinal
	}

	code, label := status.Resolve(newStatus)

	set := map[string]interface{}{}
	meta := map[string]string{}
	if logistics.Courier != "" {
		set["courier"] = logistics.Courier
		meta["courier"] = logistics.Courier
	}
	if logistics.TrackingNumber != "" {
		set["tracking_number"] = logistics.TrackingNumber
		meta["trackingNumber"] = logistics.TrackingNumber
	}
	if logistics.ExpectedDelivery != nil {
		set["expected_delivery"] = *logistics.ExpectedDelivery
		meta["expectedDelivery"] = logistics.ExpectedDelivery.Format(time.RFC3339)
	}
	if logistics.Warehouse != "" {
		set["warehouse"] = logistics.Warehouse
		meta["warehouse"] = logistics.Warehouse
	}
	if len(meta) == 0 {
		meta = nil
	}

	record := model.StatusRecord{
		Status:     label,
		StatusCode: string(code),
		Note:       note,
		ActorType:  actor.Type,
		ActorName:  actor.Name,
		Meta:       meta,
		CreatedAt:  time.Now().UTC(),
	}

	err = s.orders.AppendStatus(ctx, orderID, record, true, set)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrOrderNotFound
	}
	return err
}

// AddNote records a free-form note in the history without changing the
// order's status or logistics.
func (s *OrderService) AddNote(ctx context.Context, orderID, note string, actor Actor) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	record := model.StatusRecord{
		Status:     order.Status,
		StatusCode: order.StatusCode,
		Note:       note,
		ActorType:  actor.Type,
		ActorName:  actor.Name,
		CreatedAt:  time.Now().UTC(),
	}

	err = s.orders.AppendStatus(ctx, orderID, record, false, nil)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrOrderNotFound
	}
	return err
}

// Track returns one order, restricted to its owner unless the caller is an
// admin.
func (s *OrderService) Track(ctx context.Context, orderID, userID string, isAdmin bool) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, ErrOrderForbidden
	}
	return order, nil
}

func (s *OrderService) UserOrders(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.orders.FindByUserID(ctx, userID)
}

func (s *OrderService) AllOrders(ctx context.Context, statusFilter string) ([]*model.Order, error) {
	if statusFilter == "" {
		return s.orders.FindAll(ctx)
	}
	code, _ := status.Resolve(statusFilter)
	return s.orders.FindByStatusCode(ctx, string(code))
}

func (s *OrderService) MarkPaid(ctx context.Context, orderID string) error {
	err := s.orders.MarkPaid(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrOrderNotFound
	}
	return err
}
