package models

import "time"

// Interaction target types.
const (
	TargetPost    = "post"
	TargetReel    = "reel"
	TargetComment = "comment"
)

// Interaction kinds.
const (
	KindLike  = "like"
	KindView  = "view"
	KindSave  = "save"
	KindShare = "share"
)

// Interaction is a generic (actor, target, kind) membership edge backing
// likes, views, saves and shares. Destination is only meaningful for
// shares and is stored as "" rather than NULL so the composite unique
// index makes the empty destination occupy its own slot.
type Interaction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ActorID     uint      `json:"actor_id" gorm:"index;uniqueIndex:idx_actor_target_kind"`
	TargetType  string    `json:"target_type" gorm:"size:10;uniqueIndex:idx_actor_target_kind"`
	TargetID    uint      `json:"target_id" gorm:"index;uniqueIndex:idx_actor_target_kind"`
	Kind        string    `json:"kind" gorm:"size:10;uniqueIndex:idx_actor_target_kind"`
	Destination string    `json:"destination,omitempty" gorm:"size:100;default:'';uniqueIndex:idx_actor_target_kind"`
	CreatedAt   time.Time `json:"created_at"`
}

// Toggle outcomes.
const (
	ToggleAdded   = "added"
	ToggleRemoved = "removed"
)

type ShareRequest struct {
	Destination string `json:"destination" validate:"omitempty,max=100"`
}
