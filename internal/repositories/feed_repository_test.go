package repositories

import (
	"testing"
	"time"

	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setPostCreatedAt(t *testing.T, db *gorm.DB, postID uint, ts time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("created_at", ts).Error)
}

func TestHomeFeedVisibility(t *testing.T) {
	db := newTestDB(t)
	feedRepo := NewPostgresFeedRepository(db)
	followRepo := NewPostgresFollowRepository(db)

	viewer := createTestUser(t, db, "viewer", false)
	followed := createTestUser(t, db, "followed", false)
	stranger := createTestUser(t, db, "stranger", false)

	_, err := followRepo.Follow(viewer.ID, followed.ID)
	require.NoError(t, err)

	own := createTestPost(t, db, viewer.ID, "mine")
	theirs := createTestPost(t, db, followed.ID, "followed post")
	createTestPost(t, db, stranger.ID, "not visible")

	feed, err := feedRepo.HomeFeed(viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	ids := []uint{feed[0].PostID, feed[1].PostID}
	assert.ElementsMatch(t, []uint{own.ID, theirs.ID}, ids)
}

func TestHomeFeedOrderingAndTieBreak(t *testing.T) {
	db := newTestDB(t)
	feedRepo := NewPostgresFeedRepository(db)
	viewer := createTestUser(t, db, "viewer", false)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	older := createTestPost(t, db, viewer.ID, "older")
	twinA := createTestPost(t, db, viewer.ID, "twin a")
	twinB := createTestPost(t, db, viewer.ID, "twin b")
	setPostCreatedAt(t, db, older.ID, base.Add(-time.Hour))
	setPostCreatedAt(t, db, twinA.ID, base)
	setPostCreatedAt(t, db, twinB.ID, base)

	feed, err := feedRepo.HomeFeed(viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, feed, 3)

	// Equal timestamps fall back to id descending, so the order is
	// deterministic across calls.
	assert.Equal(t, twinB.ID, feed[0].PostID)
	assert.Equal(t, twinA.ID, feed[1].PostID)
	assert.Equal(t, older.ID, feed[2].PostID)
}

func TestHomeFeedPagination(t *testing.T) {
	db := newTestDB(t)
	feedRepo := NewPostgresFeedRepository(db)
	viewer := createTestUser(t, db, "viewer", false)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		p := createTestPost(t, db, viewer.ID, "post")
		setPostCreatedAt(t, db, p.ID, base.Add(time.Duration(i)*time.Minute))
	}

	pageOne, err := feedRepo.HomeFeed(viewer.ID, 1, 2)
	require.NoError(t, err)
	require.Len(t, pageOne, 2)

	// Page zero clamps to page one.
	pageZero, err := feedRepo.HomeFeed(viewer.ID, 0, 2)
	require.NoError(t, err)
	require.Len(t, pageZero, 2)
	assert.Equal(t, pageOne[0].PostID, pageZero[0].PostID)
	assert.Equal(t, pageOne[1].PostID, pageZero[1].PostID)

	pageThree, err := feedRepo.HomeFeed(viewer.ID, 3, 2)
	require.NoError(t, err)
	assert.Len(t, pageThree, 1)

	// Beyond the last page: empty, not an error.
	beyond, err := feedRepo.HomeFeed(viewer.ID, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestHomeFeedAggregates(t *testing.T) {
	db := newTestDB(t)
	feedRepo := NewPostgresFeedRepository(db)
	interactionRepo := NewPostgresInteractionRepository(db)
	commentRepo := NewPostgresCommentRepository(db)

	viewer := createTestUser(t, db, "viewer", false)
	other := createTestUser(t, db, "other", false)
	post := createTestPost(t, db, viewer.ID, "aggregated")

	_, err := interactionRepo.Toggle(viewer.ID, models.TargetPost, post.ID, models.KindLike)
	require.NoError(t, err)
	_, err = interactionRepo.Toggle(other.ID, models.TargetPost, post.ID, models.KindLike)
	require.NoError(t, err)

	require.NoError(t, commentRepo.CreateComment(&models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID, UserID: other.ID, Content: "nice",
	}))
	require.NoError(t, commentRepo.CreateComment(&models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID, UserID: viewer.ID, Content: "thanks",
	}))

	feed, err := feedRepo.HomeFeed(viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	assert.Equal(t, int64(2), feed[0].LikeCount)
	assert.Equal(t, int64(2), feed[0].CommentCount)
	assert.True(t, feed[0].IsLiked)
	assert.Equal(t, "viewer", feed[0].Author.Username)

	// Same post through another viewer's eyes: liked flag flips per viewer.
	_, err = NewPostgresFollowRepository(db).Follow(other.ID, viewer.ID)
	require.NoError(t, err)
	otherFeed, err := feedRepo.HomeFeed(other.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, otherFeed, 1)
	assert.True(t, otherFeed[0].IsLiked)
	assert.Equal(t, int64(2), otherFeed[0].LikeCount)
}

func TestHomeFeedMediaAttached(t *testing.T) {
	db := newTestDB(t)
	feedRepo := NewPostgresFeedRepository(db)
	postRepo := NewPostgresPostRepository(db)
	viewer := createTestUser(t, db, "viewer", false)

	post := &models.Post{UserID: viewer.ID, Caption: "carousel"}
	media := []models.PostMedia{
		{MediaURL: "https://cdn.example.com/a.jpg", MediaType: "image", Position: 0},
		{MediaURL: "https://cdn.example.com/b.jpg", MediaType: "image", Position: 1},
	}
	require.NoError(t, postRepo.CreatePostWithMedia(post, media))

	bare := createTestPost(t, db, viewer.ID, "no media")

	feed, err := feedRepo.HomeFeed(viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	byID := map[uint]models.FeedPost{}
	for _, fp := range feed {
		byID[fp.PostID] = fp
	}

	require.Len(t, byID[post.ID].Media, 2)
	assert.Equal(t, "https://cdn.example.com/a.jpg", byID[post.ID].Media[0].MediaURL)
	assert.Equal(t, "https://cdn.example.com/b.jpg", byID[post.ID].Media[1].MediaURL)

	// A post without media carries an empty list, not null.
	require.NotNil(t, byID[bare.ID].Media)
	assert.Empty(t, byID[bare.ID].Media)
}

func TestReelsFeedSkipsArchived(t *testing.T) {
	db := newTestDB(t)
	feedRepo := NewPostgresFeedRepository(db)
	reelRepo := NewPostgresReelRepository(db)
	viewer := createTestUser(t, db, "viewer", false)
	other := createTestUser(t, db, "other", false)

	visible := &models.Reel{UserID: other.ID, Caption: "up", VideoURL: "v1"}
	require.NoError(t, reelRepo.CreateReel(visible))
	archived := &models.Reel{UserID: other.ID, Caption: "down", VideoURL: "v2"}
	require.NoError(t, reelRepo.CreateReel(archived))
	require.NoError(t, reelRepo.SetArchived(archived.ID, true))

	feed, err := feedRepo.ReelsFeed(viewer.ID, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, visible.ID, feed[0].ReelID)
	assert.Equal(t, "other", feed[0].Author.Username)
}

func TestSavedPostsOrderedBySaveTime(t *testing.T) {
	db := newTestDB(t)
	feedRepo := NewPostgresFeedRepository(db)
	interactionRepo := NewPostgresInteractionRepository(db)
	viewer := createTestUser(t, db, "viewer", false)
	author := createTestUser(t, db, "author", false)

	first := createTestPost(t, db, author.ID, "saved first")
	second := createTestPost(t, db, author.ID, "saved second")
	createTestPost(t, db, author.ID, "never saved")

	_, err := interactionRepo.Toggle(viewer.ID, models.TargetPost, first.ID, models.KindSave)
	require.NoError(t, err)
	_, err = interactionRepo.Toggle(viewer.ID, models.TargetPost, second.ID, models.KindSave)
	require.NoError(t, err)

	saved, err := feedRepo.SavedPosts(viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, saved, 2)

	// Most recently saved first, regardless of post age.
	assert.Equal(t, second.ID, saved[0].PostID)
	assert.Equal(t, first.ID, saved[1].PostID)
}
