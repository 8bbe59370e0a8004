package domain

// QuotaLimits holds the tier-derived admission constants. Premium values are
// configuration, not architecture; the defaults mirror long-standing
// production behavior.
type QuotaLimits struct {
	PremiumDailyCap    int
	PremiumMaxPerOrder int
}

// DefaultQuotaLimits returns the stock limits.
func DefaultQuotaLimits() QuotaLimits {
	return QuotaLimits{PremiumDailyCap: 999, PremiumMaxPerOrder: 50}
}

// MaxDaily returns the total quantity a worker of the given tier may
// accumulate on one calendar date.
func (q QuotaLimits) MaxDaily(tier Tier) int {
	switch tier {
	case TierPremium:
		return q.PremiumDailyCap
	case TierPlus:
		return 2
	default:
		return 1
	}
}

// ClampQuantity folds a caller-requested quantity into the legal range for
// the tier. NORMAL always orders exactly one; out-of-range requests for the
// other tiers collapse to one rather than failing.
func (q QuotaLimits) ClampQuantity(tier Tier, requested int) int {
	switch tier {
	case TierPremium:
		if requested >= 1 && requested <= q.PremiumMaxPerOrder {
			return requested
		}
		return 1
	case TierPlus:
		if requested == 1 || requested == 2 {
			return requested
		}
		return 1
	default:
		return 1
	}
}

// Admissible decides whether a submission fits the worker's remaining daily
// quota. It returns the clamped quantity that would be admitted and whether
// admission is allowed. Pure and deterministic.
func (q QuotaLimits) Admissible(tier Tier, alreadyOrdered, requested int) (int, bool) {
	allowed := q.ClampQuantity(tier, requested)
	return allowed, alreadyOrdered+allowed <= q.MaxDaily(tier)
}
