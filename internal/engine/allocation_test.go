package engine

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSharesBasic(t *testing.T) {
	// 15000 capital, full weight, price 150 => 100 shares
	got := Shares(d("15000"), d("100"), d("150"))
	if !got.Equal(d("100")) {
		t.Errorf("shares = %v, want 100", got)
	}
}

func TestSharesFractional(t *testing.T) {
	// 10000 * 33 / 100 / 123.45
	got := Shares(d("10000"), d("33"), d("123.45"))
	want := d("3300").Div(d("123.45"))
	if !got.Equal(want) {
		t.Errorf("shares = %v, want %v", got, want)
	}
}

func TestSharesZeroPriceSameAsOne(t *testing.T) {
	zero := Shares(d("5000"), d("40"), decimal.Zero)
	one := Shares(d("5000"), d("40"), d("1"))
	if !zero.Equal(one) {
		t.Errorf("price=0 shares %v != price=1 shares %v", zero, one)
	}
	if !zero.Equal(d("2000")) {
		t.Errorf("shares = %v, want 2000", zero)
	}
}

func TestSharesZeroWeight(t *testing.T) {
	for _, capital := range []string{"0", "15000", "999999999999"} {
		if got := Shares(d(capital), decimal.Zero, d("150")); !got.IsZero() {
			t.Errorf("capital %s: shares = %v, want 0", capital, got)
		}
	}
}

func TestSharesZeroCapital(t *testing.T) {
	if got := Shares(decimal.Zero, d("100"), d("150")); !got.IsZero() {
		t.Errorf("shares = %v, want 0", got)
	}
}

func TestSharesOutOfRangeWeightPassesThrough(t *testing.T) {
	// 150% weight over-allocates proportionally, by design.
	got := Shares(d("1000"), d("150"), d("1"))
	if !got.Equal(d("1500")) {
		t.Errorf("shares = %v, want 1500", got)
	}
}
