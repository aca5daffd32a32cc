package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finanzas/internal/money"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestToBase(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		want   string
	}{
		{name: "Whole", amount: "100", rate: "3.75", want: "375"},
		{name: "RoundsHalfUp", amount: "10.01", rate: "3.745", want: "37.49"},
		{name: "SmallAmount", amount: "0.99", rate: "3.7712", want: "3.73"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.ToBase(d(tt.amount), d(tt.rate))
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestFromBase(t *testing.T) {
	assert.True(t, d("100").Equal(money.FromBase(d("375"), d("3.75"))))
	assert.True(t, money.FromBase(d("10"), decimal.Zero).IsZero())
}

func TestPercent(t *testing.T) {
	assert.True(t, d("80.5").Equal(money.Percent(d("8450"), d("10500"), 1)))
	assert.True(t, d("33.3").Equal(money.Percent(d("2"), d("6"), 1)))
	assert.True(t, d("12.3").Equal(money.Percent(d("246.99"), d("2000"), 1)))
	assert.True(t, d("12.35").Equal(money.Percent(d("246.99"), d("2000"), 2)))
	assert.True(t, money.Percent(d("5"), decimal.Zero, 1).IsZero())
}

func TestParseCurrency(t *testing.T) {
	c, err := money.ParseCurrency("")
	require.NoError(t, err)
	assert.Equal(t, money.PEN, c)

	c, err = money.ParseCurrency(" usd ")
	require.NoError(t, err)
	assert.Equal(t, money.USD, c)

	_, err = money.ParseCurrency("EUR")
	assert.Error(t, err)
}
