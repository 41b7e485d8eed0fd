package models

import "time"

// Follow is an accepted, directed follow edge. The composite unique
// index is the final backstop against duplicate edges under concurrent
// requests.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

// Follow request statuses. A request only ever moves pending→accepted or
// pending→rejected; a rejected row is purged when the sender re-requests.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// FollowRequest is a proposal to follow a private account.
type FollowRequest struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"index"`
	ReceiverID uint      `json:"receiver_id" gorm:"index"`
	Status     string    `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Outcomes of a follow attempt, so callers can render the right UI state.
const (
	FollowOutcomeFollowing = "following"
	FollowOutcomeRequested = "requested"
)

// PendingFollowRequest is a pending request enriched with the sender's
// profile summary.
type PendingFollowRequest struct {
	RequestID uint        `json:"request_id"`
	Sender    UserCompact `json:"sender"`
	CreatedAt time.Time   `json:"created_at"`
}

type RespondFollowRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
}
