package models

import "time"

// Post is a media post. ViewCount and ShareCount are denormalized
// counters maintained by the interaction ledger inside its transactions.
type Post struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	UserID     uint        `json:"user_id" gorm:"index"`
	Caption    string      `json:"caption"`
	ViewCount  int64       `json:"view_count" gorm:"default:0"`
	ShareCount int64       `json:"share_count" gorm:"default:0"`
	CreatedAt  time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Media      []PostMedia `json:"media" gorm:"foreignKey:PostID"`
}

// PostMedia is one uploaded image/video belonging to a post. AssetID is
// the media-store id used for compensating deletes.
type PostMedia struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	MediaURL  string    `json:"media_url"`
	MediaType string    `json:"media_type" gorm:"size:10"` // "image" or "video"
	AssetID   string    `json:"-"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdatePostRequest struct {
	Caption string `json:"caption" validate:"required,max=2200"`
}
