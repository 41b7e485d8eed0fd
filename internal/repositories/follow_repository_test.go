package repositories

import (
	"testing"

	"github.com/tahmid-rayat/momentgram/backend/internal/apperrors"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowSelf(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestUser(t, db, "alice", false)

	_, err := repo.Follow(alice.ID, alice.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidOperation))
}

func TestFollowMissingTarget(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestUser(t, db, "alice", false)

	_, err := repo.Follow(alice.ID, 9999)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestFollowPublicAccount(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)

	outcome, err := repo.Follow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FollowOutcomeFollowing, outcome)

	following, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// The edge is directed.
	reverse, err := repo.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	// Following again is a conflict, not a second edge.
	_, err = repo.Follow(alice.ID, bob.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	count, err := repo.GetFollowersCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFollowPrivateAccountCreatesRequest(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", true)

	outcome, err := repo.Follow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FollowOutcomeRequested, outcome)

	// No edge until the request is accepted.
	following, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// A second attempt while one is pending is a conflict.
	_, err = repo.Follow(alice.ID, bob.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	pending, err := repo.PendingRequests(bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, alice.ID, pending[0].Sender.ID)
	assert.Equal(t, "alice", pending[0].Sender.Username)
}

func TestAcceptFollowRequest(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", true)

	_, err := repo.Follow(alice.ID, bob.ID)
	require.NoError(t, err)
	pending, err := repo.PendingRequests(bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	request, err := repo.RespondToRequest(pending[0].RequestID, bob.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, request.Status)

	following, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// The request is no longer pending; responding again is NotFound.
	_, err = repo.RespondToRequest(pending[0].RequestID, bob.ID, true)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestRejectFollowRequestAllowsReRequest(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", true)

	_, err := repo.Follow(alice.ID, bob.ID)
	require.NoError(t, err)
	pending, err := repo.PendingRequests(bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	request, err := repo.RespondToRequest(pending[0].RequestID, bob.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, request.Status)

	following, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// Rejection does not lock the sender out.
	outcome, err := repo.Follow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FollowOutcomeRequested, outcome)

	// The stale rejected row was purged; only the fresh pending one remains.
	var count int64
	require.NoError(t, db.Model(&models.FollowRequest{}).
		Where("sender_id = ? AND receiver_id = ?", alice.ID, bob.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRespondToRequestWrongReceiver(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", true)
	mallory := createTestUser(t, db, "mallory", false)

	_, err := repo.Follow(alice.ID, bob.ID)
	require.NoError(t, err)
	pending, err := repo.PendingRequests(bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = repo.RespondToRequest(pending[0].RequestID, mallory.ID, true)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	// Still pending for the real receiver.
	pending, err = repo.PendingRequests(bob.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestUnfollow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)

	_, err := repo.Follow(alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Unfollow(alice.ID, bob.ID))

	following, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// Nothing left to remove.
	err = repo.Unfollow(alice.ID, bob.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestGetFollowersAndFollowing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	carol := createTestUser(t, db, "carol", false)

	_, err := repo.Follow(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.Follow(carol.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.Follow(alice.ID, carol.ID)
	require.NoError(t, err)

	followers, err := repo.GetFollowers(bob.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := repo.GetFollowing(alice.ID)
	require.NoError(t, err)
	assert.Len(t, following, 2)

	ids, err := repo.GetFollowingIDs(alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{bob.ID, carol.ID}, ids)
}
