package repositories

import (
	"testing"

	"github.com/tahmid-rayat/momentgram/backend/internal/apperrors"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentAndReply(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := createTestUser(t, db, "alice", false)
	post := createTestPost(t, db, alice.ID, "hello")

	root := &models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID, UserID: alice.ID, Content: "first",
	}
	require.NoError(t, repo.CreateComment(root))

	reply := &models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID, UserID: alice.ID,
		ParentID: &root.ID, Content: "reply",
	}
	require.NoError(t, repo.CreateComment(reply))

	count, err := repo.CountFor(models.TargetPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCreateReplyParentMustMatchTarget(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := createTestUser(t, db, "alice", false)
	postA := createTestPost(t, db, alice.ID, "a")
	postB := createTestPost(t, db, alice.ID, "b")

	parent := &models.Comment{
		TargetType: models.TargetPost, TargetID: postA.ID, UserID: alice.ID, Content: "on a",
	}
	require.NoError(t, repo.CreateComment(parent))

	// Replying under a different post rejects the parent.
	crossPost := &models.Comment{
		TargetType: models.TargetPost, TargetID: postB.ID, UserID: alice.ID,
		ParentID: &parent.ID, Content: "wrong thread",
	}
	err := repo.CreateComment(crossPost)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	// Nonexistent parent id.
	missing := uint(9999)
	orphan := &models.Comment{
		TargetType: models.TargetPost, TargetID: postA.ID, UserID: alice.ID,
		ParentID: &missing, Content: "no parent",
	}
	err = repo.CreateComment(orphan)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCommentsForBuildsForest(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	interactionRepo := NewPostgresInteractionRepository(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	post := createTestPost(t, db, alice.ID, "threaded")

	rootA := &models.Comment{TargetType: models.TargetPost, TargetID: post.ID, UserID: alice.ID, Content: "root a"}
	require.NoError(t, repo.CreateComment(rootA))
	replyA := &models.Comment{TargetType: models.TargetPost, TargetID: post.ID, UserID: bob.ID, ParentID: &rootA.ID, Content: "reply"}
	require.NoError(t, repo.CreateComment(replyA))
	rootB := &models.Comment{TargetType: models.TargetPost, TargetID: post.ID, UserID: bob.ID, Content: "root b"}
	require.NoError(t, repo.CreateComment(rootB))

	_, err := interactionRepo.Toggle(bob.ID, models.TargetComment, rootA.ID, models.KindLike)
	require.NoError(t, err)

	forest, err := repo.CommentsFor(models.TargetPost, post.ID)
	require.NoError(t, err)
	require.Len(t, forest, 2)

	assert.Equal(t, rootA.ID, forest[0].ID)
	assert.Equal(t, "alice", forest[0].Author.Username)
	assert.Equal(t, int64(1), forest[0].LikeCount)
	require.Len(t, forest[0].Replies, 1)
	assert.Equal(t, replyA.ID, forest[0].Replies[0].ID)
	assert.Equal(t, "bob", forest[0].Replies[0].Author.Username)

	assert.Equal(t, rootB.ID, forest[1].ID)
	assert.Empty(t, forest[1].Replies)
}

func TestCommentsForScopedToTarget(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := createTestUser(t, db, "alice", false)
	post := createTestPost(t, db, alice.ID, "post")
	reel := &models.Reel{UserID: alice.ID, Caption: "reel", VideoURL: "v"}
	require.NoError(t, db.Create(reel).Error)

	require.NoError(t, repo.CreateComment(&models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID, UserID: alice.ID, Content: "on post",
	}))
	require.NoError(t, repo.CreateComment(&models.Comment{
		TargetType: models.TargetReel, TargetID: reel.ID, UserID: alice.ID, Content: "on reel",
	}))

	postForest, err := repo.CommentsFor(models.TargetPost, post.ID)
	require.NoError(t, err)
	require.Len(t, postForest, 1)
	assert.Equal(t, "on post", postForest[0].Content)

	reelForest, err := repo.CommentsFor(models.TargetReel, reel.ID)
	require.NoError(t, err)
	require.Len(t, reelForest, 1)
	assert.Equal(t, "on reel", reelForest[0].Content)
}

func TestDeleteComment(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := createTestUser(t, db, "alice", false)
	post := createTestPost(t, db, alice.ID, "hello")

	comment := &models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID, UserID: alice.ID, Content: "gone soon",
	}
	require.NoError(t, repo.CreateComment(comment))
	require.NoError(t, repo.DeleteComment(comment.ID))

	err := repo.DeleteComment(comment.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
