package models

import "time"

// FeedPost is one enriched home-feed entry: the post row, its author
// summary, aggregate counts and the viewer-specific liked flag, all
// computed in a single batched pass.
type FeedPost struct {
	PostID       uint        `json:"post_id"`
	Caption      string      `json:"caption"`
	CreatedAt    time.Time   `json:"created_at"`
	ViewCount    int64       `json:"view_count"`
	ShareCount   int64       `json:"share_count"`
	LikeCount    int64       `json:"like_count"`
	CommentCount int64       `json:"comment_count"`
	IsLiked      bool        `json:"is_liked"`
	Author       UserCompact `json:"author"`
	Media        []PostMedia `json:"media"`
}

// FeedReel is one enriched reels-feed entry.
type FeedReel struct {
	ReelID       uint        `json:"reel_id"`
	Caption      string      `json:"caption"`
	VideoURL     string      `json:"video_url"`
	CreatedAt    time.Time   `json:"created_at"`
	ViewCount    int64       `json:"view_count"`
	ShareCount   int64       `json:"share_count"`
	LikeCount    int64       `json:"like_count"`
	CommentCount int64       `json:"comment_count"`
	IsLiked      bool        `json:"is_liked"`
	Author       UserCompact `json:"author"`
}
