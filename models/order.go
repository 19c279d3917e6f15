package models

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderDispatched OrderStatus = "dispatched"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRejected   OrderStatus = "rejected"
)

// ParseOrderStatus maps a caller-supplied status onto the closed set.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderDispatched, OrderDelivered, OrderCancelled, OrderRejected:
		return OrderStatus(s), true
	}
	return "", false
}

// orderTransitions is the full lifecycle adjacency. delivered, cancelled
// and rejected are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderRejected, OrderCancelled},
	OrderConfirmed:  {OrderDispatched, OrderCancelled},
	OrderDispatched: {OrderDelivered, OrderCancelled},
}

// CanTransition reports whether an order may move from s to target.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// PaymentStatus is the settlement state of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethods are the accepted settlement channels.
var PaymentMethods = []string{"cod", "online", "upi", "card"}

// IsValidPaymentMethod reports whether m is an accepted channel.
func IsValidPaymentMethod(m string) bool {
	for _, p := range PaymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

// OrderProduct is one line item. Total snapshots priceAfterGst x quantity
// at creation time and never changes afterwards.
type OrderProduct struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Total     float64            `json:"total" bson:"total"`
}

// Order joins one retailer and one wholesaler. Only the owning wholesaler
// mutates it, and only through status transitions.
type Order struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RetailerID         primitive.ObjectID `json:"retailerId" bson:"retailerId"`
	WholesalerID       primitive.ObjectID `json:"wholesalerId" bson:"wholesalerId"`
	Products           []OrderProduct     `json:"products" bson:"products"`
	Status             OrderStatus        `json:"status" bson:"status"`
	PaymentStatus      PaymentStatus      `json:"paymentStatus" bson:"paymentStatus"`
	PaymentMethod      string             `json:"paymentMethod" bson:"paymentMethod"`
	DeliveryAddress    string             `json:"deliveryAddress" bson:"deliveryAddress"`
	DeliveryDate       *time.Time         `json:"deliveryDate,omitempty" bson:"deliveryDate,omitempty"`
	OrderTotal         float64            `json:"orderTotal" bson:"orderTotal"`
	Notes              string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CancellationReason string             `json:"cancellationReason,omitempty" bson:"cancellationReason,omitempty"`
	VehicleNumber      string             `json:"vehicleNumber,omitempty" bson:"vehicleNumber,omitempty"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// OrderItemRequest is one requested product/quantity pair. Quantity is
// decoded as a float so non-integer values can be rejected explicitly
// instead of being truncated.
type OrderItemRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required"`
}

// CreateOrderRequest is the order creation body. The wholesaler id is
// always taken from the authenticated principal, never from this body.
type CreateOrderRequest struct {
	RetailerID      string             `json:"retailerId" validate:"required"`
	Products        []OrderItemRequest `json:"products" validate:"required,min=1,dive"`
	DeliveryAddress string             `json:"deliveryAddress" validate:"required"`
	DeliveryDate    *time.Time         `json:"deliveryDate,omitempty"`
	OrderTotal      float64            `json:"orderTotal"`
	PaymentMethod   string             `json:"paymentMethod,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	VehicleNumber   string             `json:"vehicleNumber,omitempty"`
}

// UpdateOrderStatusRequest drives one lifecycle transition.
type UpdateOrderStatusRequest struct {
	Status             string `json:"status" validate:"required"`
	CancellationReason string `json:"cancellationReason,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

// InvalidQuantityError rejects a line whose quantity is not an integer
// in the accepted range.
type InvalidQuantityError struct {
	ProductID string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity for product %s must be an integer of at least 1", e.ProductID)
}

// UnknownProductError rejects a line whose product id does not resolve.
type UnknownProductError struct {
	ProductID string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// BuildOrderLines prices the requested items against the supplied catalog
// snapshot (keyed by hex product id) using each product's current stored
// priceAfterGst, never a caller-supplied price. It returns the snapshotted
// line items and their exact sum.
func BuildOrderLines(items []OrderItemRequest, products map[string]*Product) ([]OrderProduct, float64, error) {
	lines := make([]OrderProduct, 0, len(items))
	var total float64

	for _, item := range items {
		// The upper bound keeps the float-to-int conversion below from
		// overflowing into a negative stored quantity.
		if item.Quantity < 1 || item.Quantity > math.MaxInt32 ||
			item.Quantity != math.Trunc(item.Quantity) {
			return nil, 0, &InvalidQuantityError{ProductID: item.ProductID}
		}
		product, ok := products[item.ProductID]
		if !ok {
			return nil, 0, &UnknownProductError{ProductID: item.ProductID}
		}
		qty := int(item.Quantity)
		lineTotal := product.PriceAfterGST * float64(qty)
		lines = append(lines, OrderProduct{
			ProductID: product.ID,
			Quantity:  qty,
			Total:     lineTotal,
		})
		total += lineTotal
	}
	return lines, total, nil
}

// OrderLineView joins a line item with its product's display fields for
// presentation; it never affects stored state.
type OrderLineView struct {
	OrderProduct `bson:",inline"`
	ProductName  string  `json:"productName,omitempty"`
	ProductImage string  `json:"productImage,omitempty"`
	UnitPrice    float64 `json:"priceAfterGst,omitempty"`
}

// OrderView is the presentation join returned by order reads and by
// creation: the order plus retailer and product display fields.
type OrderView struct {
	Order    Order            `json:"order"`
	Retailer *RetailerProfile `json:"retailer,omitempty"`
	Lines    []OrderLineView  `json:"lines,omitempty"`
}
