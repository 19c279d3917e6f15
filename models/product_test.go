package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPriceAfterGST(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		category GSTCategory
		percent  float64
		want     float64
	}{
		{"applicable five percent", 100, GSTApplicable, 5, 105},
		{"applicable eighteen percent", 200, GSTApplicable, 18, 236},
		{"exempted ignores percent", 100, GSTExempted, 12, 100},
		{"zero percent keeps base", 100, GSTApplicable, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, PriceAfterGST(tt.base, tt.category, tt.percent))
		})
	}
}

func TestReprice(t *testing.T) {
	now := time.Now()
	p := Product{
		PriceBeforeGST: 100,
		GSTCategory:    GSTApplicable,
		GSTPercent:     5,
	}

	p.Reprice(now)

	require.Equal(t, 105.0, p.PriceAfterGST)
	require.Equal(t, now, p.LastPriceUpdate)
}

func TestRepriceExempted(t *testing.T) {
	p := Product{
		PriceBeforeGST: 50,
		GSTCategory:    GSTExempted,
		GSTPercent:     18,
	}

	p.Reprice(time.Now())

	require.Equal(t, 50.0, p.PriceAfterGST)
}

func TestPriceUnitValidation(t *testing.T) {
	require.True(t, IsValidPriceUnit("per kg"))
	require.True(t, IsValidPriceUnit("per dozen"))
	require.True(t, IsValidPriceUnit("per piece"))
	require.False(t, IsValidPriceUnit("per litre"))
	require.False(t, IsValidPriceUnit(""))
}

func TestGSTCategoryValidation(t *testing.T) {
	require.True(t, IsValidGSTCategory("exempted"))
	require.True(t, IsValidGSTCategory("applicable"))
	require.False(t, IsValidGSTCategory("Exempted"))
	require.False(t, IsValidGSTCategory("none"))
}
