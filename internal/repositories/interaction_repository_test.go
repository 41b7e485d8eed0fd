package repositories

import (
	"testing"

	"github.com/tahmid-rayat/momentgram/backend/internal/apperrors"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresInteractionRepository(db)
	alice := createTestUser(t, db, "alice", false)
	post := createTestPost(t, db, alice.ID, "hello")

	outcome, err := repo.Toggle(alice.ID, models.TargetPost, post.ID, models.KindLike)
	require.NoError(t, err)
	assert.Equal(t, models.ToggleAdded, outcome)

	liked, err := repo.IsSetBy(alice.ID, models.TargetPost, post.ID, models.KindLike)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := repo.Count(models.TargetPost, post.ID, models.KindLike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Second toggle removes the edge; the ledger ends where it started.
	outcome, err = repo.Toggle(alice.ID, models.TargetPost, post.ID, models.KindLike)
	require.NoError(t, err)
	assert.Equal(t, models.ToggleRemoved, outcome)

	count, err = repo.Count(models.TargetPost, post.ID, models.KindLike)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestToggleKindsAreIndependent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresInteractionRepository(db)
	alice := createTestUser(t, db, "alice", false)
	post := createTestPost(t, db, alice.ID, "hello")

	_, err := repo.Toggle(alice.ID, models.TargetPost, post.ID, models.KindLike)
	require.NoError(t, err)
	_, err = repo.Toggle(alice.ID, models.TargetPost, post.ID, models.KindSave)
	require.NoError(t, err)

	// Removing the save leaves the like intact.
	outcome, err := repo.Toggle(alice.ID, models.TargetPost, post.ID, models.KindSave)
	require.NoError(t, err)
	assert.Equal(t, models.ToggleRemoved, outcome)

	liked, err := repo.IsSetBy(alice.ID, models.TargetPost, post.ID, models.KindLike)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestRecordViewCountsOncePerActor(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresInteractionRepository(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	post := createTestPost(t, db, alice.ID, "hello")

	first, err := repo.RecordView(bob.ID, models.TargetPost, post.ID)
	require.NoError(t, err)
	assert.True(t, first)

	// Repeats acknowledge without counting.
	for i := 0; i < 5; i++ {
		again, err := repo.RecordView(bob.ID, models.TargetPost, post.ID)
		require.NoError(t, err)
		assert.False(t, again)
	}

	var refreshed models.Post
	require.NoError(t, db.First(&refreshed, post.ID).Error)
	assert.Equal(t, int64(1), refreshed.ViewCount)

	// A different viewer counts separately.
	first, err = repo.RecordView(alice.ID, models.TargetPost, post.ID)
	require.NoError(t, err)
	assert.True(t, first)

	require.NoError(t, db.First(&refreshed, post.ID).Error)
	assert.Equal(t, int64(2), refreshed.ViewCount)
}

func TestRecordViewUnsupportedTarget(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresInteractionRepository(db)

	_, err := repo.RecordView(1, models.TargetComment, 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidOperation))
}

func TestCreateShareDestinationSlots(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresInteractionRepository(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	post := createTestPost(t, db, alice.ID, "hello")

	// Empty destination is a slot of its own.
	require.NoError(t, repo.CreateShare(bob.ID, models.TargetPost, post.ID, ""))
	err := repo.CreateShare(bob.ID, models.TargetPost, post.ID, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	// Distinct destinations each count.
	require.NoError(t, repo.CreateShare(bob.ID, models.TargetPost, post.ID, "dm:carol"))
	require.NoError(t, repo.CreateShare(bob.ID, models.TargetPost, post.ID, "external"))
	err = repo.CreateShare(bob.ID, models.TargetPost, post.ID, "dm:carol")
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	var refreshed models.Post
	require.NoError(t, db.First(&refreshed, post.ID).Error)
	assert.Equal(t, int64(3), refreshed.ShareCount)

	count, err := repo.Count(models.TargetPost, post.ID, models.KindShare)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestSetTargetIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresInteractionRepository(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	p1 := createTestPost(t, db, alice.ID, "one")
	p2 := createTestPost(t, db, alice.ID, "two")
	p3 := createTestPost(t, db, alice.ID, "three")

	_, err := repo.Toggle(bob.ID, models.TargetPost, p1.ID, models.KindLike)
	require.NoError(t, err)
	_, err = repo.Toggle(bob.ID, models.TargetPost, p3.ID, models.KindLike)
	require.NoError(t, err)

	flags, err := repo.SetTargetIDs(bob.ID, models.TargetPost, []uint{p1.ID, p2.ID, p3.ID}, models.KindLike)
	require.NoError(t, err)
	assert.True(t, flags[p1.ID])
	assert.False(t, flags[p2.ID])
	assert.True(t, flags[p3.ID])

	empty, err := repo.SetTargetIDs(bob.ID, models.TargetPost, nil, models.KindLike)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
