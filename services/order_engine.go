// services/order_engine.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mandisetu/mandisetu_backend/models"
)

// ProductFinder resolves catalog entries for pricing.
type ProductFinder interface {
	FindProducts(ctx context.Context, ids []primitive.ObjectID) (map[string]*models.Product, error)
}

// RetailerFinder resolves the ordering retailer's profile.
type RetailerFinder interface {
	FindRetailerProfile(ctx context.Context, id primitive.ObjectID) (*models.RetailerProfile, error)
}

var (
	// ErrMissingFields rejects a creation request without the required
	// retailer, products or delivery address.
	ErrMissingFields = errors.New("retailer id, products and delivery address are required")
	// ErrInvalidRetailerID rejects a malformed retailer id.
	ErrInvalidRetailerID = errors.New("invalid retailer id")
	// ErrRetailerNotFound rejects a retailer id that does not resolve.
	ErrRetailerNotFound = errors.New("retailer profile not found")
	// ErrInvalidPaymentMethod rejects an unknown settlement channel.
	ErrInvalidPaymentMethod = errors.New("payment method must be one of cod, online, upi, card")
)

// TotalMismatchError rejects an order whose caller-supplied total differs
// from the total computed off current catalog prices. The comparison is
// exact: any rounding drift on the client side is treated as tampering.
type TotalMismatchError struct {
	Calculated float64
	Supplied   float64
}

func (e *TotalMismatchError) Error() string {
	return fmt.Sprintf("order total mismatch: calculated %v, supplied %v", e.Calculated, e.Supplied)
}

// OrderDraft is a validated, priced order ready to persist, together
// with the display records resolved during validation.
type OrderDraft struct {
	Order    models.Order
	Retailer *models.RetailerProfile
	Products map[string]*models.Product
}

// OrderEngine validates order construction against the catalog and
// profile stores and assembles the immutable price snapshot. It reads
// from two stores during one logical write, so all cross-entity
// consistency checks live here.
type OrderEngine struct {
	products  ProductFinder
	retailers RetailerFinder
}

func NewOrderEngine(products ProductFinder, retailers RetailerFinder) *OrderEngine {
	return &OrderEngine{products: products, retailers: retailers}
}

// Build runs the full creation contract: required fields, retailer
// resolution, per-line quantity and product checks, pricing off current
// stored priceAfterGst, and the exact total equality check. The
// wholesaler id always comes from the authenticated principal.
//
// No lock prevents a product price changing between the reads here and
// the order insert; orders are immutable snapshots, so the race is
// benign.
func (e *OrderEngine) Build(ctx context.Context, wholesalerID primitive.ObjectID, req *models.CreateOrderRequest, now time.Time) (*OrderDraft, error) {
	if req.RetailerID == "" || len(req.Products) == 0 || req.DeliveryAddress == "" {
		return nil, ErrMissingFields
	}

	retailerID, err := primitive.ObjectIDFromHex(req.RetailerID)
	if err != nil {
		return nil, ErrInvalidRetailerID
	}

	retailer, err := e.retailers.FindRetailerProfile(ctx, retailerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRetailerNotFound
		}
		return nil, err
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cod"
	}
	if !models.IsValidPaymentMethod(paymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	// Malformed ids simply never resolve; BuildOrderLines reports them
	// as unknown products.
	var ids []primitive.ObjectID
	seen := make(map[string]bool)
	for _, item := range req.Products {
		if seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		if id, err := primitive.ObjectIDFromHex(item.ProductID); err == nil {
			ids = append(ids, id)
		}
	}

	products := map[string]*models.Product{}
	if len(ids) > 0 {
		products, err = e.products.FindProducts(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	lines, calculatedTotal, err := models.BuildOrderLines(req.Products, products)
	if err != nil {
		return nil, err
	}

	if calculatedTotal != req.OrderTotal {
		return nil, &TotalMismatchError{Calculated: calculatedTotal, Supplied: req.OrderTotal}
	}

	order := models.Order{
		RetailerID:      retailerID,
		WholesalerID:    wholesalerID,
		Products:        lines,
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
		PaymentMethod:   paymentMethod,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryDate:    req.DeliveryDate,
		OrderTotal:      calculatedTotal,
		Notes:           req.Notes,
		VehicleNumber:   req.VehicleNumber,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return &OrderDraft{Order: order, Retailer: retailer, Products: products}, nil
}

// View joins the order with the retailer and product display fields for
// the creation response. Read-only; stored state is the Order alone.
func (d *OrderDraft) View() *models.OrderView {
	lines := make([]models.OrderLineView, 0, len(d.Order.Products))
	for _, line := range d.Order.Products {
		view := models.OrderLineView{OrderProduct: line}
		if p, ok := d.Products[line.ProductID.Hex()]; ok {
			view.ProductName = p.ProductName
			view.ProductImage = p.ProductImage
			view.UnitPrice = p.PriceAfterGST
		}
		lines = append(lines, view)
	}
	return &models.OrderView{
		Order:    d.Order,
		Retailer: d.Retailer,
		Lines:    lines,
	}
}
