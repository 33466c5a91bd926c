package engine

import (
	"github.com/shopspring/decimal"

	"github.com/dividendlab/divstat/internal/domain"
)

// Override is a global what-if capital substituted for every portfolio's
// own stored capital. The amount is always held in USD regardless of
// which field the user typed into; the other currency's display value is
// derived on demand and never stored, so the two paired inputs cannot
// drift apart. EntryCurrency records which field was edited last.
type Override struct {
	AmountUSD     decimal.Decimal `json:"amount_usd"`
	EntryCurrency domain.Currency `json:"entry_currency"`
}

// CapitalPolicy decides, per portfolio, whether downstream math uses the
// portfolio's own stored capital or the global override. It is a
// two-state value: no override (each portfolio uses its own capital) or
// override set (every portfolio uses the same amount). The policy is
// transient, recomputed per display session, and never persisted.
type CapitalPolicy struct {
	override *Override
}

// NewCapitalPolicy returns a policy in the portfolio-own state.
func NewCapitalPolicy() *CapitalPolicy {
	return &CapitalPolicy{}
}

// SetOverrideUSD enters the override state with an amount typed in USD.
func (p *CapitalPolicy) SetOverrideUSD(amount decimal.Decimal) {
	p.override = &Override{AmountUSD: amount, EntryCurrency: domain.USD}
}

// SetOverrideKRW enters the override state with an amount typed in KRW,
// converting once to the USD single source of truth.
func (p *CapitalPolicy) SetOverrideKRW(amount, rate decimal.Decimal) {
	p.override = &Override{AmountUSD: domain.ToBase(amount, rate), EntryCurrency: domain.KRW}
}

// Reset returns to the portfolio-own state, clearing the override.
func (p *CapitalPolicy) Reset() {
	p.override = nil
}

// Override returns the current override, if set.
func (p *CapitalPolicy) Override() (Override, bool) {
	if p.override == nil {
		return Override{}, false
	}
	return *p.override, true
}

// Resolve returns the capital to use for one portfolio: the override
// amount when set, otherwise the portfolio's own stored capital. It is
// evaluated fresh on every call; nothing is cached across state
// transitions, so a single override instantly re-derives every dependent
// figure.
func (p *CapitalPolicy) Resolve(pf domain.Portfolio) decimal.Decimal {
	if p.override != nil {
		return p.override.AmountUSD
	}
	return pf.TotalCapital
}

// DisplayAmounts returns the paired USD and KRW input values for the
// current override. The non-entry field is always derived through the
// converter, never read from independent state.
func (p *CapitalPolicy) DisplayAmounts(rate decimal.Decimal) (usd, krw decimal.Decimal, ok bool) {
	if p.override == nil {
		return decimal.Zero, decimal.Zero, false
	}
	usd = p.override.AmountUSD
	krw = domain.ToSecondary(usd, rate)
	return usd, krw, true
}
