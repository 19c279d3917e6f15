package controllers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func searchConditions(t *testing.T, owner primitive.ObjectID, params url.Values) []bson.M {
	t.Helper()
	conditions, err := combinedSearchConditions(owner, params)
	require.NoError(t, err)
	return conditions
}

func TestCombinedSearchConditionsAnchorsOwner(t *testing.T) {
	owner := primitive.NewObjectID()

	conditions := searchConditions(t, owner, url.Values{})

	require.Len(t, conditions, 1)
	require.Equal(t, bson.M{"wholesalerId": owner}, conditions[0])
}

func TestCombinedSearchConditionsStock(t *testing.T) {
	owner := primitive.NewObjectID()

	inStock := searchConditions(t, owner, url.Values{"inStock": {"true"}})
	require.Contains(t, inStock, bson.M{"stock": bson.M{"$gt": 0}})

	outOfStock := searchConditions(t, owner, url.Values{"inStock": {"false"}})
	require.Contains(t, outOfStock, bson.M{"stock": bson.M{"$lte": 0}})

	unfiltered := searchConditions(t, owner, url.Values{"inStock": {"maybe"}})
	require.Len(t, unfiltered, 1)
}

func TestCombinedSearchConditionsPriceRange(t *testing.T) {
	owner := primitive.NewObjectID()

	conditions := searchConditions(t, owner, url.Values{
		"minPrice": {"10"},
		"maxPrice": {"99.5"},
	})

	require.Contains(t, conditions, bson.M{
		"priceBeforeGst": bson.M{"$gte": 10.0, "$lte": 99.5},
	})

	_, err := combinedSearchConditions(owner, url.Values{"minPrice": {"cheap"}})
	require.EqualError(t, err, "minPrice must be a number")
}

func TestCombinedSearchConditionsShortSearch(t *testing.T) {
	owner := primitive.NewObjectID()

	_, err := combinedSearchConditions(owner, url.Values{"search": {"r"}})
	require.EqualError(t, err, "search must be at least 2 characters")

	conditions := searchConditions(t, owner, url.Values{"search": {"rice"}})
	require.Len(t, conditions, 2)
}

func TestCombinedSearchConditionsFilterAttributes(t *testing.T) {
	owner := primitive.NewObjectID()

	conditions := searchConditions(t, owner, url.Values{
		"filters.grade": {"A"},
	})

	require.Contains(t, conditions, bson.M{"filters": bson.M{"$elemMatch": bson.M{
		"key":   "grade",
		"value": "A",
	}}})
}
