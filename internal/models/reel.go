package models

import "time"

// Reel is a short video. Reels are a discovery surface: the reels feed
// is global and not filtered by the follow graph.
type Reel struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index"`
	Caption    string    `json:"caption"`
	VideoURL   string    `json:"video_url"`
	AssetID    string    `json:"-"`
	ViewCount  int64     `json:"view_count" gorm:"default:0"`
	ShareCount int64     `json:"share_count" gorm:"default:0"`
	IsArchived bool      `json:"is_archived" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time `json:"updated_at"`
}
