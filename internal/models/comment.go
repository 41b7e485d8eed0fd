package models

import "time"

// Comment belongs to one content item (post or reel, shared table keyed
// by target type+id). ParentID, when set, must reference a comment on
// the same content item; nil means top-level. The tree is unbounded in
// depth even though the UI renders one level.
type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TargetType string    `json:"target_type" gorm:"size:10;index:idx_comment_target"`
	TargetID   uint      `json:"target_id" gorm:"index:idx_comment_target"`
	UserID     uint      `json:"user_id" gorm:"index"`
	ParentID   *uint     `json:"parent_id" gorm:"index"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=2200"`
	ParentID *uint  `json:"parent_id" validate:"omitempty,min=1"`
}

// CommentNodeRow is one flat row of the comments-for-target query:
// the comment, its author summary and its aggregate like count.
type CommentNodeRow struct {
	ID         uint      `json:"id"`
	ParentID   *uint     `json:"parent_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	LikeCount  int64     `json:"like_count"`
	AuthorID   uint      `json:"-"`
	Username   string    `json:"-"`
	FullName   string    `json:"-"`
	ProfilePic string    `json:"-"`
}

// CommentNode is a node of the reconstructed comment forest.
type CommentNode struct {
	ID        uint           `json:"id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	LikeCount int64          `json:"like_count"`
	Author    UserCompact    `json:"author"`
	Replies   []*CommentNode `json:"replies"`
}
