// controllers/order_controller.go
package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mandisetu/mandisetu_backend/config"
	"github.com/mandisetu/mandisetu_backend/middleware"
	"github.com/mandisetu/mandisetu_backend/models"
	"github.com/mandisetu/mandisetu_backend/repositories"
	"github.com/mandisetu/mandisetu_backend/services"
)

// OrderController manages the wholesaler-side order book: creation
// through the order engine, lifecycle transitions, and search. Every
// query is scoped to the authenticated wholesaler.
type OrderController struct {
	DB       *mongo.Client
	Engine   *services.OrderEngine
	Products *repositories.ProductRepository
	Profiles *repositories.ProfileRepository
}

func NewOrderController(db *mongo.Client) *OrderController {
	products := repositories.NewProductRepository(db)
	profiles := repositories.NewProfileRepository(db)
	return &OrderController{
		DB:       db,
		Engine:   services.NewOrderEngine(products, profiles),
		Products: products,
		Profiles: profiles,
	}
}

func (oc *OrderController) orders() *mongo.Collection {
	return config.GetCollection(oc.DB, "orders")
}

// CreateOrder records a retailer order placed through the authenticated
// wholesaler. Pricing always comes from the stored catalog; the caller's
// orderTotal is only accepted when it matches exactly.
func (oc *OrderController) CreateOrder(c echo.Context) error {
	wholesalerID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Unauthorized", nil))
	}

	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid request body", nil))
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	draft, err := oc.Engine.Build(ctx, wholesalerID, &req, time.Now())
	if err != nil {
		return orderBuildFailure(c, err)
	}

	result, err := oc.orders().InsertOne(ctx, draft.Order)
	if err != nil {
		log.Printf("Order insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to create order", nil))
	}
	draft.Order.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.ApiResponse(
		http.StatusCreated, true, "Order created successfully", draft.View()))
}

// orderBuildFailure maps engine errors onto the envelope.
func orderBuildFailure(c echo.Context, err error) error {
	var mismatch *services.TotalMismatchError
	var badQty *models.InvalidQuantityError
	var unknown *models.UnknownProductError

	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrInvalidRetailerID),
		errors.Is(err, services.ErrInvalidPaymentMethod):
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, err.Error(), nil))
	case errors.Is(err, services.ErrRetailerNotFound):
		return c.JSON(http.StatusNotFound, models.ApiResponse(
			http.StatusNotFound, false, "Retailer not found", nil))
	case errors.As(err, &badQty):
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, badQty.Error(), nil))
	case errors.As(err, &unknown):
		return c.JSON(http.StatusNotFound, models.ApiResponse(
			http.StatusNotFound, false, unknown.Error(), nil))
	case errors.As(err, &mismatch):
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false,
			fmt.Sprintf("Order total mismatch: expected %v", mismatch.Calculated),
			map[string]interface{}{
				"calculatedTotal": mismatch.Calculated,
				"suppliedTotal":   mismatch.Supplied,
			}))
	default:
		log.Printf("Order build failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to create order", nil))
	}
}

// GetAllOrders lists the caller's orders, newest first, with optional
// status filter and limit/offset paging.
func (oc *OrderController) GetAllOrders(c echo.Context) error {
	wholesalerID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Unauthorized", nil))
	}

	filter := bson.M{"wholesalerId": wholesalerID}
	if v := c.QueryParam("status"); v != "" {
		status, ok := models.ParseOrderStatus(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "Invalid order status", nil))
		}
		filter["status"] = status
	}

	limit := int64(20)
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}
	page := int64(1)
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			page = n
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := oc.orders().Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page-1)*limit).
		SetLimit(limit))
	if err != nil {
		log.Printf("Order list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to fetch orders", nil))
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		log.Printf("Order decode failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to fetch orders", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Orders retrieved successfully", map[string]interface{}{
			"orders": orders,
			"page":   page,
			"limit":  limit,
		}))
}

// GetOrderByID returns one owned order joined with its retailer and
// product display fields.
func (oc *OrderController) GetOrderByID(c echo.Context) error {
	wholesalerID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Unauthorized", nil))
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid order id", nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err = oc.orders().FindOne(ctx,
		bson.M{"_id": orderID, "wholesalerId": wholesalerID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ApiResponse(
				http.StatusNotFound, false, "Order not found", nil))
		}
		log.Printf("Order lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to fetch order", nil))
	}

	view, err := oc.orderView(ctx, &order)
	if err != nil {
		log.Printf("Order view assembly failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to fetch order", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Order retrieved successfully", view))
}

// orderView joins a stored order with current retailer and product
// display fields. Deleted products leave their lines with snapshot data
// only.
func (oc *OrderController) orderView(ctx context.Context, order *models.Order) (*models.OrderView, error) {
	retailer, err := oc.Profiles.FindRetailerProfile(ctx, order.RetailerID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(order.Products))
	for _, line := range order.Products {
		ids = append(ids, line.ProductID)
	}
	products, err := oc.Products.FindProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	draft := services.OrderDraft{Order: *order, Retailer: retailer, Products: products}
	return draft.View(), nil
}

// orderTransitionRefusal applies the lifecycle rules to one requested
// step and returns the client-facing refusal, or "" when the step is
// allowed.
func orderTransitionRefusal(current, target models.OrderStatus, cancellationReason string) string {
	if target == models.OrderCancelled && cancellationReason == "" {
		return "Cancellation reason is required"
	}
	if !current.CanTransition(target) {
		return fmt.Sprintf("Cannot change order status from %s to %s", current, target)
	}
	return ""
}

// transitionFilter scopes a status write to the owner and the observed
// status, so a concurrent transition leaves the write unmatched.
func transitionFilter(orderID, wholesalerID primitive.ObjectID, observed models.OrderStatus) bson.M {
	return bson.M{"_id": orderID, "wholesalerId": wholesalerID, "status": observed}
}

// UpdateOrderStatus moves an owned order one step along its lifecycle.
// Illegal transitions and terminal states are refused.
func (oc *OrderController) UpdateOrderStatus(c echo.Context) error {
	wholesalerID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Unauthorized", nil))
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid order id", nil))
	}

	var req models.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid request body", nil))
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	target, ok := models.ParseOrderStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid order status", nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err = oc.orders().FindOne(ctx,
		bson.M{"_id": orderID, "wholesalerId": wholesalerID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ApiResponse(
				http.StatusNotFound, false, "Order not found", nil))
		}
		log.Printf("Order lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to update order", nil))
	}

	if refusal := orderTransitionRefusal(order.Status, target, req.CancellationReason); refusal != "" {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, refusal, nil))
	}

	updates := bson.M{
		"status":    target,
		"updatedAt": time.Now(),
	}
	if req.CancellationReason != "" {
		updates["cancellationReason"] = req.CancellationReason
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}

	result, err := oc.orders().UpdateOne(ctx,
		transitionFilter(orderID, wholesalerID, order.Status),
		bson.M{"$set": updates})
	if err != nil {
		log.Printf("Order status update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to update order", nil))
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusConflict, models.ApiResponse(
			http.StatusConflict, false, "Order status changed concurrently. Please retry", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Order status updated successfully", map[string]interface{}{
			"orderId": orderID.Hex(),
			"status":  target,
		}))
}

// SearchOrders filters the caller's order book by status, payment
// method, vehicle number, retailer, date range and total range. All
// supplied conditions are ANDed.
func (oc *OrderController) SearchOrders(c echo.Context) error {
	wholesalerID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Unauthorized", nil))
	}

	filter := bson.M{"wholesalerId": wholesalerID}

	if v := c.QueryParam("status"); v != "" {
		filter["status"] = bson.M{
			"$regex": "^" + regexp.QuoteMeta(v) + "$", "$options": "i",
		}
	}
	if v := c.QueryParam("paymentMethod"); v != "" {
		filter["paymentMethod"] = bson.M{
			"$regex": "^" + regexp.QuoteMeta(v) + "$", "$options": "i",
		}
	}
	if v := c.QueryParam("vehicleNumber"); v != "" {
		filter["vehicleNumber"] = bson.M{
			"$regex": regexp.QuoteMeta(strings.TrimSpace(v)), "$options": "i",
		}
	}
	if v := c.QueryParam("retailerId"); v != "" {
		retailerID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "Invalid retailer id", nil))
		}
		filter["retailerId"] = retailerID
	}

	dateRange := bson.M{}
	if v := c.QueryParam("startDate"); v != "" {
		start, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "startDate must be RFC3339", nil))
		}
		dateRange["$gte"] = start
	}
	if v := c.QueryParam("endDate"); v != "" {
		end, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "endDate must be RFC3339", nil))
		}
		dateRange["$lte"] = end
	}
	if len(dateRange) > 0 {
		filter["createdAt"] = dateRange
	}

	totalRange := bson.M{}
	if v := c.QueryParam("minTotal"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "minTotal must be a number", nil))
		}
		totalRange["$gte"] = min
	}
	if v := c.QueryParam("maxTotal"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "maxTotal must be a number", nil))
		}
		totalRange["$lte"] = max
	}
	if len(totalRange) > 0 {
		filter["orderTotal"] = totalRange
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cursor, err := oc.orders().Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Printf("Order search failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to search orders", nil))
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		log.Printf("Order search decode failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to search orders", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Orders retrieved successfully", orders))
}
