// controllers/category_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mandisetu/mandisetu_backend/config"
	"github.com/mandisetu/mandisetu_backend/models"
	"github.com/mandisetu/mandisetu_backend/utils"
)

// CategoryController manages the admin-curated product category list.
// Writes are admin-only; reads are open to authenticated users.
type CategoryController struct {
	DB *mongo.Client
}

func NewCategoryController(db *mongo.Client) *CategoryController {
	return &CategoryController{DB: db}
}

// CreateCategory adds a category. Names are unique case-sensitively; the
// unique index is the arbiter, not a pre-read.
func (cc *CategoryController) CreateCategory(c echo.Context) error {
	var req models.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid request body", nil))
	}

	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}
	if !utils.IsValidCategoryName(req.Name) {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Category name must be 2-50 letters, digits or spaces", nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := config.GetCollection(cc.DB, "categories").InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "A category with this name already exists", nil))
		}
		log.Printf("Category insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to create category", nil))
	}
	category.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.ApiResponse(
		http.StatusCreated, true, "Category created successfully", category))
}

// GetAllCategories lists every category, newest first.
func (cc *CategoryController) GetAllCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection(cc.DB, "categories").
		Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Printf("Category list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to fetch categories", nil))
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		log.Printf("Category decode failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to fetch categories", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Categories retrieved successfully", categories))
}

// UpdateCategory renames a category or changes its description.
func (cc *CategoryController) UpdateCategory(c echo.Context) error {
	categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid category id", nil))
	}

	var req models.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid request body", nil))
	}

	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}
	if !utils.IsValidCategoryName(req.Name) {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Category name must be 2-50 letters, digits or spaces", nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection(cc.DB, "categories").UpdateOne(ctx,
		bson.M{"_id": categoryID},
		bson.M{"$set": bson.M{
			"name":        req.Name,
			"description": req.Description,
			"updatedAt":   time.Now(),
		}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.ApiResponse(
				http.StatusBadRequest, false, "A category with this name already exists", nil))
		}
		log.Printf("Category update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to update category", nil))
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.ApiResponse(
			http.StatusNotFound, false, "Category not found", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Category updated successfully", nil))
}

// DeleteCategory removes a category. Existing products keep their stored
// category name; listings are not rewritten retroactively.
func (cc *CategoryController) DeleteCategory(c echo.Context) error {
	categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ApiResponse(
			http.StatusBadRequest, false, "Invalid category id", nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection(cc.DB, "categories").
		DeleteOne(ctx, bson.M{"_id": categoryID})
	if err != nil {
		log.Printf("Category delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ApiResponse(
			http.StatusInternalServerError, false, "Failed to delete category", nil))
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.ApiResponse(
			http.StatusNotFound, false, "Category not found", nil))
	}

	return c.JSON(http.StatusOK, models.ApiResponse(
		http.StatusOK, true, "Category deleted successfully", nil))
}
