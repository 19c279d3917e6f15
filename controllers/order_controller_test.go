package controllers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mandisetu/mandisetu_backend/models"
)

func TestOrderTransitionRefusal(t *testing.T) {
	require.Empty(t, orderTransitionRefusal(models.OrderPending, models.OrderConfirmed, ""))
	require.Empty(t, orderTransitionRefusal(models.OrderConfirmed, models.OrderCancelled, "stock shortage"))

	require.Equal(t, "Cancellation reason is required",
		orderTransitionRefusal(models.OrderPending, models.OrderCancelled, ""))

	require.Equal(t, "Cannot change order status from pending to delivered",
		orderTransitionRefusal(models.OrderPending, models.OrderDelivered, ""))
	require.Equal(t, "Cannot change order status from delivered to cancelled",
		orderTransitionRefusal(models.OrderDelivered, models.OrderCancelled, "too late"))
}

func TestTransitionFilterGuardsObservedStatus(t *testing.T) {
	orderID := primitive.NewObjectID()
	wholesalerID := primitive.NewObjectID()

	filter := transitionFilter(orderID, wholesalerID, models.OrderPending)

	require.Equal(t, bson.M{
		"_id":          orderID,
		"wholesalerId": wholesalerID,
		"status":       models.OrderPending,
	}, filter)
}
