// controllers/product_controller.go
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
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
	"github.com/mandisetu/mandisetu_backend/utils"
)

const (
	priceRefreshWindow = 7 * 24 * time.Hour
	priceWarningWindow = 3 * 24 * time.Hour
)

// ProductController manages a wholesaler's catalog: creation behind the
// KYC gate, ownership-scoped mutation, and the monitoring queries for
// stock, price age and competitive pricing.
type ProductController struct {
	DB *mongo.Client
}

func NewProductController(db *mongo.Client) *ProductController {
	return &ProductController{DB: db}
}

func (pc *ProductController) products() *mongo.Collection {
	return config.GetCollection(pc.DB, "products")
}

// requireCompletedKyc loads the caller's shop profile and refuses unless
// KYC review has completed.
func (pc *ProductController) requireCompletedKyc(ctx context.Context, wholesalerID primitive.ObjectID) (int, string) {
	var profile models.ShopProfile
	err := config.GetCollection(pc.DB, "shopProfiles").
		FindOne(ctx, bson.M{"wholesalerId": wholesalerID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return http.StatusForbidden, "Complete your shop details before listing products"
		}
		log.Printf("Shop profile lookup failed for %s: %v", wholesalerID.Hex(), err)
		return http.StatusInternalServerError, "Failed to verify KYC status"
	}
	if profile.KycStatus != models.KycCompleted {
		return http.StatusForbidden, "KYC verification must be completed before listing products"
	}
	return 0, ""
}

// parseProductForm reads the shared create/update form fields onto the
// product. Required-ness differs between create and update, so blank
// checks stay with the callers.
func parseProductForm(c echo.Context, p *models.Product, partial bool) (int, string) {
	if v := c.FormValue("productName"); v != "" || !partial {
		if !utils.IsValidProductName(v) {
			return http.StatusBadRequest, "Product name must be 2-100 letters, digits or spaces"
		}
		p.ProductName = v
	}

	if v := c.FormValue("categoryName"); v != "" || !partial {
		if !utils.IsValidCategoryName(v) {
			return http.StatusBadRequest, "Category name must be 2-50 letters, digits or spaces"
		}
		p.CategoryName = v
	}

	if v := c.FormValue("productDescription"); v != "" {
		p.ProductDescription = v
	}

	if v := c.FormValue("priceBeforeGst"); v != "" || !partial {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price <= 0 {
			return http.StatusBadRequest, "priceBeforeGst must be a positive number"
		}
		p.PriceBeforeGST = price
	}

	if v := c.FormValue("gstCategory"); v != "" || !partial {
		if !models.IsValidGSTCategory(v) {
			return http.StatusBadRequest, "gstCategory must be exempted or applicable"
		}
		p.GSTCategory = models.GSTCategory(v)
	}

	if v := c.FormValue("gstPercent"); v != "" {
		pct, err := strconv.ParseFloat(v, 64)
		if err != nil || pct < 0 || pct > 100 {
			return http.StatusBadRequest, "gstPercent must be between 0 and 100"
		}
		p.GSTPercent = pct
	}
	if p.GSTCategory == models.GSTExempted {
		p.GSTPercent = 0
	}

	if v := c.FormValue("priceUnit"); v != "" || !partial {
		if !models.IsValidPriceUnit(v) {
			return http.StatusBadRequest, "priceUnit must be one of per kg, per dozen, per piece"
		}
		p.PriceUnit = v
	}

	if v := c.FormValue("stock"); v != "" || !partial {
		stock, err := strconv.Atoi(v)
		if err != nil || stock < 0 {
			return http.StatusBadRequest, "stock must be a non-negative integer"
		}
		p.Stock = stock
	}

	if v := c.FormValue("minimumRequired"); v != "" {
		min, err := strconv.Atoi(v)
		if err != nil || min < 0 {
			return http.StatusBadRequest, "minimumRequired must be a non-negative integer"
		}
		p.MinimumRequired = min
	}

	if raw := c.FormValue("filters"); raw != "" {
		var filters []models.ProductFilter
		if err := json.Unmarshal([]byte(raw), &filters); err != nil {
			return http.StatusBadRequest, "filters must be a JSON array of key/value pairs"
		}
		p.Filters = filters
	}

	return 0, ""
}

// CreateProduct lists a new product. Only KYC-completed wholesalers may
// list; every new listing enters admin review as Pending.
func (pc *ProductController) CreateProduct(c echo.Context) error {
	wholesalerID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Unauthorized", nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if code, msg := pc.requireCompletedKyc(ctx, wholesalerID); code != 0 {
		return c.JSON(code, models.ApiResponse(code, false, msg, nil))
	}

	product := models.Product{WholesalerID: wholesalerID}
	if code, msg := parseProductForm(c, &product, false); code != 0 {
		return c.JSON(code, models.ApiResponse(code, false, msg, nil))
	}
	if product.GSTCategory == models.GSTApplicable && c.FormValue("gstPercent") == "" {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "gstPercent is required when GST is applicable", nil))
	}

	count, err := config.GetCollection(pc.DB, "categories").
		CountDocuments(ctx, bson.M{"name": product.CategoryName})
	if err != nil {
		log.Printf("Category lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to create product", nil))
	}
	if count == 0 {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Unknown category", nil))
	}

	file, err := c.FormFile("productImage")
	if err != nil || file == nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Product image is required", nil))
	}
	if err := utils.ValidateFileType(file.Filename, "image"); err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, err.Error(), nil))
	}
	imageURL, err := utils.SaveUpload(file, "image", "products")
	if err != nil {
		log.Printf("Product image upload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to save product image", nil))
	}
	product.ProductImage = imageURL

	now := time.Now()
	product.ApprovalStatus = models.ApprovalPending
	product.CreatedAt = now
	product.UpdatedAt = now
	product.Reprice(now)

	result, err := pc.products().InsertOne(ctx, product)
	if err != nil {
		log.Printf("Product insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to create product", nil))
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.ApiResponse(
		http.StatusCreated, true, "Product created successfully and is pending verification", product))
}

// listOwn runs an ownership-scoped find and writes the standard list
// response.
func (pc *ProductController) listOwn(c echo.Context, extra bson.M, message string) error {
	wholesalerID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Unauthorized", nil))
	}

	filter := bson.M{"wholesalerId": wholesalerID}
	for k, v := range extra {
		filter[k] = v
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := pc.products().Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Printf("Product list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to fetch products", nil))
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		log.Printf("Product decode failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to fetch products", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(http.StatusOK, true, message, products))
}

func (pc *ProductController) GetAllProducts(c echo.Context) error {
	return pc.listOwn(c, bson.M{}, "Products retrieved successfully")
}

func (pc *ProductController) GetPendingProducts(c echo.Context) error {
	return pc.listOwn(c, bson.M{"approvalStatus": models.ApprovalPending}, "Pending products retrieved successfully")
}

func (pc *ProductController) GetVerifiedProducts(c echo.Context) error {
	return pc.listOwn(c, bson.M{"approvalStatus": models.ApprovalVerified}, "Verified products retrieved successfully")
}

func (pc *ProductController) GetRejectedProducts(c echo.Context) error {
	return pc.listOwn(c, bson.M{"approvalStatus": models.ApprovalRejected}, "Rejected products retrieved successfully")
}

// GetOutOfStockProducts lists products whose stock has fallen to or below
// their configured minimum.
func (pc *ProductController) GetOutOfStockProducts(c echo.Context) error {
	return pc.listOwn(c, bson.M{
		"$expr": bson.M{"$lte": bson.A{"$stock", "$minimumRequired"}},
	}, "Out-of-stock products retrieved successfully")
}

// UpdateProduct edits an owned product. Any change to the price or GST
// fields recomputes priceAfterGst and restarts the price-age clock.
func (pc *ProductController) UpdateProduct(c echo.Context) error {
	wholesalerID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Unauthorized", nil))
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid product id", nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var product models.Product
	err = pc.products().FindOne(ctx,
		bson.M{"_id": productID, "wholesalerId": wholesalerID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ApiResponse(
				http.StatusNotFound, false, "Product not found", nil))
		}
		log.Printf("Product lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to update product", nil))
	}

	priceTouched := c.FormValue("priceBeforeGst") != "" ||
		c.FormValue("gstCategory") != "" || c.FormValue("gstPercent") != ""

	if code, msg := parseProductForm(c, &product, true); code != 0 {
		return c.JSON(code, models.ApiResponse(code, false, msg, nil))
	}

	if file, err := c.FormFile("productImage"); err == nil && file != nil {
		if err := utils.ValidateFileType(file.Filename, "image"); err != nil {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, err.Error(), nil))
		}
		imageURL, err := utils.SaveUpload(file, "image", "products")
		if err != nil {
			log.Printf("Product image upload failed: %v", err)
			return c.JSON(http.StatusInternalServerError, models.ApiResponse(
				http.StatusInternalServerError, false, "Failed to save product image", nil))
		}
		product.ProductImage = imageURL
	}

	now := time.Now()
	product.UpdatedAt = now
	if priceTouched {
		product.Reprice(now)
	}

	_, err = pc.products().ReplaceOne(ctx,
		bson.M{"_id": productID, "wholesalerId": wholesalerID}, product)
	if err != nil {
		log.Printf("Product update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to update product", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Product updated successfully", product))
}

// DeleteProduct removes an owned product. Past orders keep their price
// snapshots, so deletion never rewrites order history.
func (pc *ProductController) DeleteProduct(c echo.Context) error {
	wholesalerID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Unauthorized", nil))
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid product id", nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := pc.products().DeleteOne(ctx,
		bson.M{"_id": productID, "wholesalerId": wholesalerID})
	if err != nil {
		log.Printf("Product delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to delete product", nil))
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.ApiResponse(
			http.StatusNotFound, false, "Product not found", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Product deleted successfully", nil))
}

// GetHighPricedProducts flags the caller's verified products priced above
// the cheapest same-named verified listing from any other wholesaler.
// Products nobody else sells are never flagged.
func (pc *ProductController) GetHighPricedProducts(c echo.Context) error {
	wholesalerID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Unauthorized", nil))
	}

	limit := int64(100)
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}

	ownFilter := bson.M{
		"wholesalerId":   wholesalerID,
		"approvalStatus": models.ApprovalVerified,
	}
	if q := c.QueryParam("searchQuery"); q != "" {
		if len(strings.TrimSpace(q)) < 2 {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "searchQuery must be at least 2 characters", nil))
		}
		pattern := bson.M{
			"$regex": regexp.QuoteMeta(strings.TrimSpace(q)), "$options": "i",
		}
		ownFilter["$or"] = bson.A{
			bson.M{"productName": pattern},
			bson.M{"productDescription": pattern},
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	cursor, err := pc.products().Find(ctx, ownFilter, options.Find().SetLimit(limit))
	if err != nil {
		log.Printf("High price query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to compare prices", nil))
	}
	defer cursor.Close(ctx)

	own := []models.Product{}
	if err := cursor.All(ctx, &own); err != nil {
		log.Printf("High price decode failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to compare prices", nil))
	}

	if len(own) == 0 {
		return c.JSON(http.StatusOK, models.ApiResponse(
			http.StatusOK, true, "Price comparison completed", []models.HighPriceEntry{}))
	}

	names := make([]string, 0, len(own))
	for _, p := range own {
		names = append(names, p.ProductName)
	}

	// Cheapest competing pre-GST price per product name.
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"productName":    bson.M{"$in": names},
			"wholesalerId":   bson.M{"$ne": wholesalerID},
			"approvalStatus": models.ApprovalVerified,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$productName",
			"minPrice": bson.M{"$min": "$priceBeforeGst"},
		}}},
	}
	aggCursor, err := pc.products().Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("High price aggregation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to compare prices", nil))
	}
	defer aggCursor.Close(ctx)

	var mins []struct {
		Name     string  `bson:"_id"`
		MinPrice float64 `bson:"minPrice"`
	}
	if err := aggCursor.All(ctx, &mins); err != nil {
		log.Printf("High price aggregation decode failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to compare prices", nil))
	}

	minByName := make(map[string]float64, len(mins))
	for _, m := range mins {
		minByName[m.Name] = m.MinPrice
	}

	entries := []models.HighPriceEntry{}
	for _, p := range own {
		min, ok := minByName[p.ProductName]
		if !ok || p.PriceBeforeGST <= min {
			continue
		}
		diff := p.PriceBeforeGST - min
		entries = append(entries, models.HighPriceEntry{
			Product:              p,
			MinPrice:             min,
			PriceDifference:      diff,
			PercentageDifference: diff / min * 100,
		})
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Price comparison completed", entries))
}

// GetExpiringPrices lists products whose price is 3 to 7 days old and
// will hit the weekly refresh deadline soon.
func (pc *ProductController) GetExpiringPrices(c echo.Context) error {
	wholesalerID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Unauthorized", nil))
	}

	now := time.Now()
	filter := bson.M{
		"wholesalerId": wholesalerID,
		"lastPriceUpdate": bson.M{
			"$gt":  now.Add(-priceRefreshWindow),
			"$lte": now.Add(-priceWarningWindow),
		},
	}

	entries, err := pc.priceAgeEntries(filter, now, false)
	if err != nil {
		log.Printf("Price age query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to fetch price ages", nil))
	}
	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Expiring prices retrieved successfully", entries))
}

// GetExpiredPrices lists products whose price is over 7 days old.
func (pc *ProductController) GetExpiredPrices(c echo.Context) error {
	wholesalerID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Unauthorized", nil))
	}

	now := time.Now()
	filter := bson.M{
		"wholesalerId":    wholesalerID,
		"lastPriceUpdate": bson.M{"$lte": now.Add(-priceRefreshWindow)},
	}

	entries, err := pc.priceAgeEntries(filter, now, true)
	if err != nil {
		log.Printf("Price age query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to fetch price ages", nil))
	}
	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Expired prices retrieved successfully", entries))
}

func (pc *ProductController) priceAgeEntries(filter bson.M, now time.Time, expired bool) ([]models.PriceAgeEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := pc.products().Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "lastPriceUpdate", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	entries := make([]models.PriceAgeEntry, 0, len(products))
	for _, p := range products {
		age := now.Sub(p.LastPriceUpdate)
		entry := models.PriceAgeEntry{
			Product:         p,
			LastPriceUpdate: p.LastPriceUpdate,
			ExpiryDate:      p.LastPriceUpdate.Add(priceRefreshWindow),
		}
		if expired {
			entry.DaysSinceUpdate = int(age.Hours() / 24)
		} else {
			entry.DaysRemaining = int((priceRefreshWindow - age).Hours() / 24)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// combinedSearchConditions translates the search query params into the
// ANDed condition list, always anchored to the owning wholesaler. A
// non-nil error carries the client-facing message.
func combinedSearchConditions(wholesalerID primitive.ObjectID, params url.Values) ([]bson.M, error) {
	conditions := []bson.M{{"wholesalerId": wholesalerID}}

	if q := strings.TrimSpace(params.Get("search")); q != "" {
		if len(q) < 2 {
			return nil, errors.New("search must be at least 2 characters")
		}
		pattern := bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
		conditions = append(conditions, bson.M{"$or": []bson.M{
			{"productName": pattern},
			{"productDescription": pattern},
			{"categoryName": pattern},
		}})
	}

	if category := params.Get("category"); category != "" {
		conditions = append(conditions, bson.M{"categoryName": category})
	}

	priceRange := bson.M{}
	if v := params.Get("minPrice"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("minPrice must be a number")
		}
		priceRange["$gte"] = min
	}
	if v := params.Get("maxPrice"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("maxPrice must be a number")
		}
		priceRange["$lte"] = max
	}
	if len(priceRange) > 0 {
		conditions = append(conditions, bson.M{"priceBeforeGst": priceRange})
	}

	switch params.Get("inStock") {
	case "true":
		conditions = append(conditions, bson.M{"stock": bson.M{"$gt": 0}})
	case "false":
		conditions = append(conditions, bson.M{"stock": bson.M{"$lte": 0}})
	}

	// Arbitrary attributes arrive as filters.<key>=<value> query params.
	for key, values := range params {
		if !strings.HasPrefix(key, "filters.") || len(values) == 0 {
			continue
		}
		conditions = append(conditions, bson.M{"filters": bson.M{"$elemMatch": bson.M{
			"key":   strings.TrimPrefix(key, "filters."),
			"value": values[0],
		}}})
	}
	return conditions, nil
}

// CombinedSearchAndFilter searches the caller's catalog by text,
// category, price range, stock and arbitrary filter attributes, all
// conditions ANDed, with limit/offset paging.
func (pc *ProductController) CombinedSearchAndFilter(c echo.Context) error {
	wholesalerID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ApiResponse(
			http.StatusUnauthorized, false, "Unauthorized", nil))
	}

	conditions, err := combinedSearchConditions(wholesalerID, c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, err.Error(), nil))
	}

	limit := int64(10)
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

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	filter := bson.M{"$and": conditions}

	// Fetch one extra row to learn whether another page exists.
	cursor, err := pc.products().Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page-1)*limit).
		SetLimit(limit+1))
	if err != nil {
		log.Printf("Combined search failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to search products", nil))
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		log.Printf("Combined search decode failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to search products", nil))
	}

	hasMore := int64(len(products)) > limit
	if hasMore {
		products = products[:limit]
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Products retrieved successfully", map[string]interface{}{
			"products": products,
			"page":     page,
			"limit":    limit,
			"hasMore":  hasMore,
		}))
}
