package repositories

import (
	"time"

	"github.com/tahmid-rayat/momentgram/backend/internal/apperrors"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"gorm.io/gorm"
)

// FeedRepository assembles enriched, paginated feeds. Author info,
// aggregate counts and the viewer-liked flag come from one grouped
// query; media arrives in one batched fetch. The query count stays
// constant regardless of page size.
type FeedRepository interface {
	HomeFeed(viewerID uint, page, limit int) ([]models.FeedPost, error)
	ReelsFeed(viewerID uint, limit int) ([]models.FeedReel, error)
	SavedPosts(viewerID uint, page, limit int) ([]models.FeedPost, error)
}

// PostgresFeedRepository implements FeedRepository
type PostgresFeedRepository struct {
	db *gorm.DB
}

func NewPostgresFeedRepository(db *gorm.DB) *PostgresFeedRepository {
	return &PostgresFeedRepository{db: db}
}

// feedPostRow is the flat result of the home-feed aggregate query.
type feedPostRow struct {
	PostID       uint      `gorm:"column:post_id"`
	Caption      string    `gorm:"column:caption"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	ViewCount    int64     `gorm:"column:view_count"`
	ShareCount   int64     `gorm:"column:share_count"`
	AuthorID     uint      `gorm:"column:author_id"`
	Username     string    `gorm:"column:username"`
	FullName     string    `gorm:"column:full_name"`
	ProfilePic   string    `gorm:"column:profile_pic"`
	LikeCount    int64     `gorm:"column:like_count"`
	CommentCount int64     `gorm:"column:comment_count"`
	ViewerLiked  int       `gorm:"column:viewer_liked"`
}

type feedReelRow struct {
	ReelID       uint      `gorm:"column:reel_id"`
	Caption      string    `gorm:"column:caption"`
	VideoURL     string    `gorm:"column:video_url"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	ViewCount    int64     `gorm:"column:view_count"`
	ShareCount   int64     `gorm:"column:share_count"`
	AuthorID     uint      `gorm:"column:author_id"`
	Username     string    `gorm:"column:username"`
	FullName     string    `gorm:"column:full_name"`
	ProfilePic   string    `gorm:"column:profile_pic"`
	LikeCount    int64     `gorm:"column:like_count"`
	CommentCount int64     `gorm:"column:comment_count"`
	ViewerLiked  int       `gorm:"column:viewer_liked"`
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return page, limit
}

// HomeFeed returns posts authored by the viewer and the users they
// follow, newest first with the post id as tie-break so pagination is
// stable when timestamps collide. A page beyond the last yields an
// empty slice, not an error.
func (r *PostgresFeedRepository) HomeFeed(viewerID uint, page, limit int) ([]models.FeedPost, error) {
	page, limit = clampPage(page, limit)
	offset := (page - 1) * limit

	var rows []feedPostRow
	err := r.db.Table("posts p").
		Select(`p.id AS post_id, p.caption, p.created_at, p.view_count, p.share_count,
			u.id AS author_id, u.username, u.full_name, u.profile_pic,
			COUNT(DISTINCT l.id) AS like_count,
			COUNT(DISTINCT c.id) AS comment_count,
			MAX(CASE WHEN l.actor_id = ? THEN 1 ELSE 0 END) AS viewer_liked`, viewerID).
		Joins("JOIN users u ON u.id = p.user_id").
		Joins("LEFT JOIN interactions l ON l.target_type = ? AND l.target_id = p.id AND l.kind = ?",
			models.TargetPost, models.KindLike).
		Joins("LEFT JOIN comments c ON c.target_type = ? AND c.target_id = p.id", models.TargetPost).
		Where("p.user_id = ? OR p.user_id IN (?)", viewerID,
			r.db.Table("follows").Select("following_id").Where("follower_id = ?", viewerID)).
		Group("p.id, p.caption, p.created_at, p.view_count, p.share_count, u.id, u.username, u.full_name, u.profile_pic").
		Order("p.created_at DESC, p.id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return r.enrichPosts(rows)
}

// enrichPosts attaches each post's ordered media list from one batched
// fetch keyed by post id.
func (r *PostgresFeedRepository) enrichPosts(rows []feedPostRow) ([]models.FeedPost, error) {
	postIDs := make([]uint, len(rows))
	for i, row := range rows {
		postIDs[i] = row.PostID
	}

	mediaMap := make(map[uint][]models.PostMedia)
	if len(postIDs) > 0 {
		var media []models.PostMedia
		err := r.db.Where("post_id IN ?", postIDs).
			Order("post_id, position").
			Find(&media).Error
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		for _, m := range media {
			mediaMap[m.PostID] = append(mediaMap[m.PostID], m)
		}
	}

	feed := make([]models.FeedPost, len(rows))
	for i, row := range rows {
		media := mediaMap[row.PostID]
		if media == nil {
			media = []models.PostMedia{}
		}
		feed[i] = models.FeedPost{
			PostID:       row.PostID,
			Caption:      row.Caption,
			CreatedAt:    row.CreatedAt,
			ViewCount:    row.ViewCount,
			ShareCount:   row.ShareCount,
			LikeCount:    row.LikeCount,
			CommentCount: row.CommentCount,
			IsLiked:      row.ViewerLiked == 1,
			Author: models.UserCompact{
				ID:         row.AuthorID,
				Username:   row.Username,
				FullName:   row.FullName,
				ProfilePic: row.ProfilePic,
			},
			Media: media,
		}
	}
	return feed, nil
}

// ReelsFeed returns all non-archived reels globally, newest first, with
// the same batched aggregation shape as the home feed. Reels are a
// discovery surface, so there is no follow-graph filter.
func (r *PostgresFeedRepository) ReelsFeed(viewerID uint, limit int) ([]models.FeedReel, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}

	var rows []feedReelRow
	err := r.db.Table("reels rl").
		Select(`rl.id AS reel_id, rl.caption, rl.video_url, rl.created_at, rl.view_count, rl.share_count,
			u.id AS author_id, u.username, u.full_name, u.profile_pic,
			COUNT(DISTINCT l.id) AS like_count,
			COUNT(DISTINCT c.id) AS comment_count,
			MAX(CASE WHEN l.actor_id = ? THEN 1 ELSE 0 END) AS viewer_liked`, viewerID).
		Joins("JOIN users u ON u.id = rl.user_id").
		Joins("LEFT JOIN interactions l ON l.target_type = ? AND l.target_id = rl.id AND l.kind = ?",
			models.TargetReel, models.KindLike).
		Joins("LEFT JOIN comments c ON c.target_type = ? AND c.target_id = rl.id", models.TargetReel).
		Where("rl.is_archived = ?", false).
		Group("rl.id, rl.caption, rl.video_url, rl.created_at, rl.view_count, rl.share_count, u.id, u.username, u.full_name, u.profile_pic").
		Order("rl.created_at DESC, rl.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	feed := make([]models.FeedReel, len(rows))
	for i, row := range rows {
		feed[i] = models.FeedReel{
			ReelID:       row.ReelID,
			Caption:      row.Caption,
			VideoURL:     row.VideoURL,
			CreatedAt:    row.CreatedAt,
			ViewCount:    row.ViewCount,
			ShareCount:   row.ShareCount,
			LikeCount:    row.LikeCount,
			CommentCount: row.CommentCount,
			IsLiked:      row.ViewerLiked == 1,
			Author: models.UserCompact{
				ID:         row.AuthorID,
				Username:   row.Username,
				FullName:   row.FullName,
				ProfilePic: row.ProfilePic,
			},
		}
	}
	return feed, nil
}

// SavedPosts returns the viewer's bookmarked posts, most recently saved
// first, enriched like the home feed.
func (r *PostgresFeedRepository) SavedPosts(viewerID uint, page, limit int) ([]models.FeedPost, error) {
	page, limit = clampPage(page, limit)
	offset := (page - 1) * limit

	var rows []feedPostRow
	err := r.db.Table("posts p").
		Select(`p.id AS post_id, p.caption, p.created_at, p.view_count, p.share_count,
			u.id AS author_id, u.username, u.full_name, u.profile_pic,
			COUNT(DISTINCT l.id) AS like_count,
			COUNT(DISTINCT c.id) AS comment_count,
			MAX(CASE WHEN l.actor_id = ? THEN 1 ELSE 0 END) AS viewer_liked`, viewerID).
		Joins("JOIN users u ON u.id = p.user_id").
		Joins("JOIN interactions s ON s.target_type = ? AND s.target_id = p.id AND s.kind = ? AND s.actor_id = ?",
			models.TargetPost, models.KindSave, viewerID).
		Joins("LEFT JOIN interactions l ON l.target_type = ? AND l.target_id = p.id AND l.kind = ?",
			models.TargetPost, models.KindLike).
		Joins("LEFT JOIN comments c ON c.target_type = ? AND c.target_id = p.id", models.TargetPost).
		Group("p.id, p.caption, p.created_at, p.view_count, p.share_count, u.id, u.username, u.full_name, u.profile_pic, s.created_at, s.id").
		Order("s.created_at DESC, s.id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return r.enrichPosts(rows)
}
