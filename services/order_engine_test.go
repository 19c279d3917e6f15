package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mandisetu/mandisetu_backend/models"
)

type fakeProductFinder struct {
	products map[string]*models.Product
}

func (f *fakeProductFinder) FindProducts(_ context.Context, ids []primitive.ObjectID) (map[string]*models.Product, error) {
	found := make(map[string]*models.Product)
	for _, id := range ids {
		if p, ok := f.products[id.Hex()]; ok {
			found[id.Hex()] = p
		}
	}
	return found, nil
}

type fakeRetailerFinder struct {
	profiles map[string]*models.RetailerProfile
}

func (f *fakeRetailerFinder) FindRetailerProfile(_ context.Context, id primitive.ObjectID) (*models.RetailerProfile, error) {
	if p, ok := f.profiles[id.Hex()]; ok {
		return p, nil
	}
	return nil, mongo.ErrNoDocuments
}

func testEngine(t *testing.T) (*OrderEngine, primitive.ObjectID, primitive.ObjectID, primitive.ObjectID) {
	t.Helper()

	retailerID := primitive.NewObjectID()
	productA := primitive.NewObjectID()
	productB := primitive.NewObjectID()

	products := &fakeProductFinder{products: map[string]*models.Product{
		productA.Hex(): {ID: productA, ProductName: "Basmati Rice", PriceAfterGST: 50},
		productB.Hex(): {ID: productB, ProductName: "Toor Dal", PriceAfterGST: 30},
	}}
	retailers := &fakeRetailerFinder{profiles: map[string]*models.RetailerProfile{
		retailerID.Hex(): {RetailerID: retailerID, Name: "Kumar Stores"},
	}}

	return NewOrderEngine(products, retailers), retailerID, productA, productB
}

func TestBuildOrder(t *testing.T) {
	engine, retailerID, productA, productB := testEngine(t)
	wholesalerID := primitive.NewObjectID()
	now := time.Now()

	draft, err := engine.Build(context.Background(), wholesalerID, &models.CreateOrderRequest{
		RetailerID: retailerID.Hex(),
		Products: []models.OrderItemRequest{
			{ProductID: productA.Hex(), Quantity: 2},
			{ProductID: productB.Hex(), Quantity: 1},
		},
		DeliveryAddress: "14 Market Road",
		OrderTotal:      130,
	}, now)

	require.NoError(t, err)
	require.Equal(t, models.OrderPending, draft.Order.Status)
	require.Equal(t, models.PaymentPending, draft.Order.PaymentStatus)
	require.Equal(t, "cod", draft.Order.PaymentMethod)
	require.Equal(t, wholesalerID, draft.Order.WholesalerID)
	require.Equal(t, retailerID, draft.Order.RetailerID)
	require.Equal(t, 130.0, draft.Order.OrderTotal)
	require.Len(t, draft.Order.Products, 2)
	require.Equal(t, 100.0, draft.Order.Products[0].Total)
	require.Equal(t, "Kumar Stores", draft.Retailer.Name)
}

func TestBuildOrderTotalMismatch(t *testing.T) {
	engine, retailerID, productA, _ := testEngine(t)

	_, err := engine.Build(context.Background(), primitive.NewObjectID(), &models.CreateOrderRequest{
		RetailerID: retailerID.Hex(),
		Products: []models.OrderItemRequest{
			{ProductID: productA.Hex(), Quantity: 2},
		},
		DeliveryAddress: "14 Market Road",
		OrderTotal:      101,
	}, time.Now())

	var mismatch *TotalMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, 100.0, mismatch.Calculated)
	require.Equal(t, 101.0, mismatch.Supplied)
}

func TestBuildOrderMissingFields(t *testing.T) {
	engine, retailerID, productA, _ := testEngine(t)

	_, err := engine.Build(context.Background(), primitive.NewObjectID(), &models.CreateOrderRequest{
		RetailerID: retailerID.Hex(),
		Products: []models.OrderItemRequest{
			{ProductID: productA.Hex(), Quantity: 1},
		},
	}, time.Now())

	require.ErrorIs(t, err, ErrMissingFields)
}

func TestBuildOrderUnknownRetailer(t *testing.T) {
	engine, _, productA, _ := testEngine(t)

	_, err := engine.Build(context.Background(), primitive.NewObjectID(), &models.CreateOrderRequest{
		RetailerID: primitive.NewObjectID().Hex(),
		Products: []models.OrderItemRequest{
			{ProductID: productA.Hex(), Quantity: 1},
		},
		DeliveryAddress: "14 Market Road",
		OrderTotal:      50,
	}, time.Now())

	require.ErrorIs(t, err, ErrRetailerNotFound)
}

func TestBuildOrderMalformedRetailerID(t *testing.T) {
	engine, _, productA, _ := testEngine(t)

	_, err := engine.Build(context.Background(), primitive.NewObjectID(), &models.CreateOrderRequest{
		RetailerID: "not-an-id",
		Products: []models.OrderItemRequest{
			{ProductID: productA.Hex(), Quantity: 1},
		},
		DeliveryAddress: "14 Market Road",
		OrderTotal:      50,
	}, time.Now())

	require.ErrorIs(t, err, ErrInvalidRetailerID)
}

func TestBuildOrderUnknownProduct(t *testing.T) {
	engine, retailerID, _, _ := testEngine(t)
	missing := primitive.NewObjectID().Hex()

	_, err := engine.Build(context.Background(), primitive.NewObjectID(), &models.CreateOrderRequest{
		RetailerID: retailerID.Hex(),
		Products: []models.OrderItemRequest{
			{ProductID: missing, Quantity: 1},
		},
		DeliveryAddress: "14 Market Road",
		OrderTotal:      50,
	}, time.Now())

	var unknown *models.UnknownProductError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, missing, unknown.ProductID)
}

func TestBuildOrderInvalidPaymentMethod(t *testing.T) {
	engine, retailerID, productA, _ := testEngine(t)

	_, err := engine.Build(context.Background(), primitive.NewObjectID(), &models.CreateOrderRequest{
		RetailerID: retailerID.Hex(),
		Products: []models.OrderItemRequest{
			{ProductID: productA.Hex(), Quantity: 1},
		},
		DeliveryAddress: "14 Market Road",
		OrderTotal:      50,
		PaymentMethod:   "cheque",
	}, time.Now())

	require.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestOrderDraftView(t *testing.T) {
	engine, retailerID, productA, productB := testEngine(t)

	draft, err := engine.Build(context.Background(), primitive.NewObjectID(), &models.CreateOrderRequest{
		RetailerID: retailerID.Hex(),
		Products: []models.OrderItemRequest{
			{ProductID: productA.Hex(), Quantity: 2},
			{ProductID: productB.Hex(), Quantity: 1},
		},
		DeliveryAddress: "14 Market Road",
		OrderTotal:      130,
	}, time.Now())
	require.NoError(t, err)

	view := draft.View()
	require.Len(t, view.Lines, 2)
	require.Equal(t, "Basmati Rice", view.Lines[0].ProductName)
	require.Equal(t, 50.0, view.Lines[0].UnitPrice)
	require.Equal(t, "Kumar Stores", view.Retailer.Name)
}
