package usecase

import "streamhaven/domain/model"

// FreeEpisodeThreshold is the fixed free-tier policy: episodes with order at
// or below it are playable without a subscription. It is not per-series
// configuration, and this is the only place the rule is written down. Listing
// annotation and playback enforcement both go through Decide so they cannot
// drift.
const FreeEpisodeThreshold = 2

type EntitlementReason string

const (
	ReasonFreeTier             EntitlementReason = "FREE_TIER"
	ReasonSubscribed           EntitlementReason = "SUBSCRIBED"
	ReasonSubscriptionRequired EntitlementReason = "SUBSCRIPTION_REQUIRED"
)

type Decision struct {
	Allowed bool              `json:"allowed"`
	Reason  EntitlementReason `json:"reason"`
}

// Decide is the entitlement rule. Pure and deterministic: no I/O, no clock.
func Decide(episode model.Episode, state model.SubscriptionState) Decision {
	if episode.Order <= FreeEpisodeThreshold {
		return Decision{Allowed: true, Reason: ReasonFreeTier}
	}
	if state.IsEntitled {
		return Decision{Allowed: true, Reason: ReasonSubscribed}
	}
	return Decision{Allowed: false, Reason: ReasonSubscriptionRequired}
}
