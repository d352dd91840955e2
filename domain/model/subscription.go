package model

import "time"

type SubscriptionPlan string

const (
	PlanWeekly  SubscriptionPlan = "weekly"
	PlanMonthly SubscriptionPlan = "monthly"
)

type SubscriptionStatus string

const (
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionExpired  SubscriptionStatus = "expired"
)

// Subscription is a billing record owned by the billing collaborator. This
// engine only reads it; the most recent record per viewer is canonical.
type Subscription struct {
	ID        int64              `json:"id"`
	ViewerID  string             `json:"viewer_id"`
	Plan      SubscriptionPlan   `json:"plan"`
	Status    SubscriptionStatus `json:"status"`
	StartDate time.Time          `json:"start_date"`
	RenewsAt  time.Time          `json:"renews_at"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// IsEntitling reports whether the subscription grants access to gated
// episodes. Expiry-by-date is the renewal job's concern, not ours.
func (s Subscription) IsEntitling() bool {
	return s.Status == SubscriptionActive || s.Status == SubscriptionTrial
}

// RenewalHorizon recomputes when a subscription renews from its start date.
// The stored renews_at column is never trusted; handlers used to disagree on
// the arithmetic, so it lives in exactly one place now.
func RenewalHorizon(plan SubscriptionPlan, start time.Time) time.Time {
	switch plan {
	case PlanWeekly:
		return start.AddDate(0, 0, 7)
	case PlanMonthly:
		return start.AddDate(0, 0, 30)
	}
	return start
}

// SubscriptionState is the normalized view the entitlement rule consumes.
type SubscriptionState struct {
	IsEntitled bool               `json:"is_entitled"`
	Plan       SubscriptionPlan   `json:"plan,omitempty"`
	Status     SubscriptionStatus `json:"status,omitempty"`
	RenewsAt   *time.Time         `json:"renews_at,omitempty"`
}
