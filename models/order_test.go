package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to OrderStatus
	}{
		{OrderPending, OrderConfirmed},
		{OrderPending, OrderRejected},
		{OrderPending, OrderCancelled},
		{OrderConfirmed, OrderDispatched},
		{OrderConfirmed, OrderCancelled},
		{OrderDispatched, OrderDelivered},
		{OrderDispatched, OrderCancelled},
	}
	for _, tt := range allowed {
		require.True(t, tt.from.CanTransition(tt.to), "%s -> %s should be allowed", tt.from, tt.to)
	}

	forbidden := []struct {
		from, to OrderStatus
	}{
		{OrderPending, OrderDispatched},
		{OrderPending, OrderDelivered},
		{OrderConfirmed, OrderDelivered},
		{OrderConfirmed, OrderRejected},
		{OrderDispatched, OrderConfirmed},
		{OrderDelivered, OrderCancelled},
		{OrderCancelled, OrderPending},
		{OrderRejected, OrderConfirmed},
		{OrderPending, OrderPending},
	}
	for _, tt := range forbidden {
		require.False(t, tt.from.CanTransition(tt.to), "%s -> %s should be refused", tt.from, tt.to)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	require.True(t, OrderDelivered.Terminal())
	require.True(t, OrderCancelled.Terminal())
	require.True(t, OrderRejected.Terminal())
	require.False(t, OrderPending.Terminal())
	require.False(t, OrderConfirmed.Terminal())
	require.False(t, OrderDispatched.Terminal())
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus("confirmed")
	require.True(t, ok)
	require.Equal(t, OrderConfirmed, status)

	_, ok = ParseOrderStatus("Confirmed")
	require.False(t, ok)

	_, ok = ParseOrderStatus("shipped")
	require.False(t, ok)
}

func catalogWith(prices map[string]float64) map[string]*Product {
	products := make(map[string]*Product, len(prices))
	for hex, price := range prices {
		id, _ := primitive.ObjectIDFromHex(hex)
		products[hex] = &Product{ID: id, PriceAfterGST: price}
	}
	return products
}

func TestBuildOrderLines(t *testing.T) {
	idA := primitive.NewObjectID().Hex()
	idB := primitive.NewObjectID().Hex()
	catalog := catalogWith(map[string]float64{idA: 50, idB: 30})

	lines, total, err := BuildOrderLines([]OrderItemRequest{
		{ProductID: idA, Quantity: 2},
		{ProductID: idB, Quantity: 1},
	}, catalog)

	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, 130.0, total)
	require.Equal(t, 100.0, lines[0].Total)
	require.Equal(t, 2, lines[0].Quantity)
	require.Equal(t, 30.0, lines[1].Total)
}

func TestBuildOrderLinesRejectsFractionalQuantity(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	catalog := catalogWith(map[string]float64{id: 50})

	_, _, err := BuildOrderLines([]OrderItemRequest{
		{ProductID: id, Quantity: 1.5},
	}, catalog)

	var badQty *InvalidQuantityError
	require.ErrorAs(t, err, &badQty)
	require.Equal(t, id, badQty.ProductID)
}

func TestBuildOrderLinesRejectsZeroQuantity(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	catalog := catalogWith(map[string]float64{id: 50})

	_, _, err := BuildOrderLines([]OrderItemRequest{
		{ProductID: id, Quantity: 0},
	}, catalog)

	var badQty *InvalidQuantityError
	require.ErrorAs(t, err, &badQty)
}

func TestBuildOrderLinesRejectsOverflowingQuantity(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	catalog := catalogWith(map[string]float64{id: 50})

	// 1e19 is a whole float but overflows the int conversion into a
	// negative quantity if allowed through.
	for _, qty := range []float64{1e19, math.MaxInt32 + 1, math.Inf(1)} {
		_, _, err := BuildOrderLines([]OrderItemRequest{
			{ProductID: id, Quantity: qty},
		}, catalog)

		var badQty *InvalidQuantityError
		require.ErrorAs(t, err, &badQty, "quantity %g should be rejected", qty)
	}

	lines, _, err := BuildOrderLines([]OrderItemRequest{
		{ProductID: id, Quantity: math.MaxInt32},
	}, catalog)
	require.NoError(t, err)
	require.Equal(t, math.MaxInt32, lines[0].Quantity)
}

func TestBuildOrderLinesRejectsUnknownProduct(t *testing.T) {
	missing := primitive.NewObjectID().Hex()

	_, _, err := BuildOrderLines([]OrderItemRequest{
		{ProductID: missing, Quantity: 1},
	}, map[string]*Product{})

	var unknown *UnknownProductError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, missing, unknown.ProductID)
}

func TestPaymentMethodValidation(t *testing.T) {
	for _, m := range []string{"cod", "online", "upi", "card"} {
		require.True(t, IsValidPaymentMethod(m))
	}
	require.False(t, IsValidPaymentMethod("cheque"))
	require.False(t, IsValidPaymentMethod("COD"))
}
