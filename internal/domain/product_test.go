package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pence(n int64) *int64 { return &n }

func TestEffectivePrice(t *testing.T) {
	cases := []struct {
		name string
		p    Product
		want int64
	}{
		{"no sale", Product{PricePence: 1999}, 1999},
		{"on sale, lower", Product{PricePence: 1999, SalePricePence: pence(1499), IsOnSale: true}, 1499},
		{"on sale, no sale price", Product{PricePence: 1999, IsOnSale: true}, 1999},
		{"sale price set, flag off", Product{PricePence: 1999, SalePricePence: pence(1499)}, 1999},
		{"sale price not lower", Product{PricePence: 1999, SalePricePence: pence(2499), IsOnSale: true}, 1999},
		{"sale price equal", Product{PricePence: 1999, SalePricePence: pence(1999), IsOnSale: true}, 1999},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.EffectivePrice())
		})
	}
}
