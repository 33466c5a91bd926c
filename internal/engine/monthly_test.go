package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dividendlab/divstat/internal/domain"
)

var quarterlyPortfolio = domain.Portfolio{
	ID:   "p1",
	Name: "Quarterly",
	Items: []domain.Holding{
		{
			Symbol:        "SCHD",
			Weight:        d("100"),
			Price:         d("150"),
			LastDivAmount: d("0.2"),
			PaymentMonths: []int{2, 5, 8, 11},
		},
	},
}

func TestProjectMonthlyIncomeUSD(t *testing.T) {
	months := ProjectMonthlyIncome(quarterlyPortfolio, d("15000"), domain.USD, d("1425.5"))

	if len(months) != MonthsInCycle {
		t.Fatalf("got %d months, want 12", len(months))
	}

	paying := map[int]bool{2: true, 5: true, 8: true, 11: true}
	for m := 1; m <= 12; m++ {
		got := months[m-1]
		if paying[m] {
			// 100 shares * 0.2 = 20
			if !got.Equal(d("20")) {
				t.Errorf("month %d = %v, want 20", m, got)
			}
		} else if !got.IsZero() {
			t.Errorf("month %d = %v, want 0", m, got)
		}
	}
}

func TestProjectMonthlyIncomeKRWRounding(t *testing.T) {
	months := ProjectMonthlyIncome(quarterlyPortfolio, d("15000"), domain.KRW, d("1425.5"))

	// 20 USD * 1425.5 = 28510, rounded to whole won
	if !months[1].Equal(d("28510")) {
		t.Errorf("Feb KRW = %v, want 28510", months[1])
	}
	if !months[0].IsZero() {
		t.Errorf("Jan KRW = %v, want 0", months[0])
	}
}

func TestProjectMonthlyIncomeSumsAcrossHoldings(t *testing.T) {
	p := domain.Portfolio{
		Items: []domain.Holding{
			{Weight: d("50"), Price: d("100"), LastDivAmount: d("1"), PaymentMonths: []int{1}},
			{Weight: d("50"), Price: d("50"), LastDivAmount: d("0.5"), PaymentMonths: []int{1, 7}},
		},
	}

	months := ProjectMonthlyIncome(p, d("10000"), domain.USD, d("1425.5"))

	// Jan: 50 shares * 1 + 100 shares * 0.5 = 100
	if !months[0].Equal(d("100")) {
		t.Errorf("Jan = %v, want 100", months[0])
	}
	// Jul: only the second holding pays
	if !months[6].Equal(d("50")) {
		t.Errorf("Jul = %v, want 50", months[6])
	}
	if !months[2].IsZero() {
		t.Errorf("Mar = %v, want 0", months[2])
	}
}

func TestProjectMonthlyIncomeEmptyPaymentMonths(t *testing.T) {
	p := domain.Portfolio{
		Items: []domain.Holding{
			{Weight: d("100"), Price: d("10"), LastDivAmount: d("1")},
		},
	}

	months := ProjectMonthlyIncome(p, d("1000"), domain.USD, d("1425.5"))
	for m, v := range months {
		if !v.IsZero() {
			t.Errorf("month %d = %v, want 0", m+1, v)
		}
	}
}

func TestProjectMonthlyIncomeIgnoresBadMonths(t *testing.T) {
	p := domain.Portfolio{
		Items: []domain.Holding{
			{Weight: d("100"), Price: d("1"), LastDivAmount: d("1"), PaymentMonths: []int{0, 3, 3, 13, -1}},
		},
	}

	months := ProjectMonthlyIncome(p, d("100"), domain.USD, d("1425.5"))

	// Duplicate 3s count once; 0, 13 and -1 are dropped.
	if !months[2].Equal(d("100")) {
		t.Errorf("Mar = %v, want 100", months[2])
	}
	total := decimal.Zero
	for _, v := range months {
		total = total.Add(v)
	}
	if !total.Equal(d("100")) {
		t.Errorf("total = %v, want 100", total)
	}
}

func TestProjectMonthlyIncomeZeroWeightAllCapitals(t *testing.T) {
	p := domain.Portfolio{
		Items: []domain.Holding{
			{Weight: decimal.Zero, Price: d("150"), LastDivAmount: d("5"), PaymentMonths: []int{1, 2, 3}},
		},
	}

	for _, capital := range []string{"0", "15000", "1000000000000"} {
		months := ProjectMonthlyIncome(p, d(capital), domain.USD, d("1425.5"))
		for m, v := range months {
			if !v.IsZero() {
				t.Errorf("capital %s month %d = %v, want 0", capital, m+1, v)
			}
		}
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel(1); got != "Jan" {
		t.Errorf("MonthLabel(1) = %q, want Jan", got)
	}
	if got := MonthLabel(12); got != "Dec" {
		t.Errorf("MonthLabel(12) = %q, want Dec", got)
	}
}
