package domain

import "time"

// Tier classifies a worker for daily quota purposes.
type Tier string

const (
	TierNormal  Tier = "NORMAL"
	TierPlus    Tier = "PLUS"
	TierPremium Tier = "PREMIUM"
)

// Worker is a directory record. The identity key is a normalized national
// ID string, unique and immutable after creation.
type Worker struct {
	ID          int64
	IdentityKey string
	Name        string
	Company     string
	CostCenter  *string
	Tier        Tier
	CreatedAt   time.Time
}

// EffectiveTier returns the worker tier, defaulting to NORMAL for
// unrecognized values coming out of storage.
func (w *Worker) EffectiveTier() Tier {
	switch w.Tier {
	case TierPlus, TierPremium:
		return w.Tier
	default:
		return TierNormal
	}
}
