package repositories

import (
	"testing"
	"time"

	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id uint, parentID *uint, content string, ts time.Time) models.CommentNodeRow {
	return models.CommentNodeRow{
		ID:        id,
		ParentID:  parentID,
		Content:   content,
		CreatedAt: ts,
		AuthorID:  1,
		Username:  "alice",
	}
}

func ptr(id uint) *uint { return &id }

func TestBuildCommentForestEmpty(t *testing.T) {
	forest := BuildCommentForest(nil)
	assert.Empty(t, forest)
}

func TestBuildCommentForestNesting(t *testing.T) {
	base := time.Now()
	rows := []models.CommentNodeRow{
		row(1, nil, "first root", base),
		row(2, ptr(1), "reply to 1", base.Add(time.Minute)),
		row(3, nil, "second root", base.Add(2*time.Minute)),
		row(4, ptr(2), "reply to reply", base.Add(3*time.Minute)),
	}

	forest := BuildCommentForest(rows)

	require.Len(t, forest, 2)
	assert.Equal(t, uint(1), forest[0].ID)
	assert.Equal(t, uint(3), forest[1].ID)

	require.Len(t, forest[0].Replies, 1)
	assert.Equal(t, uint(2), forest[0].Replies[0].ID)

	require.Len(t, forest[0].Replies[0].Replies, 1)
	assert.Equal(t, uint(4), forest[0].Replies[0].Replies[0].ID)

	assert.Empty(t, forest[1].Replies)
}

func TestBuildCommentForestPreservesSiblingOrder(t *testing.T) {
	base := time.Now()
	rows := []models.CommentNodeRow{
		row(1, nil, "root", base),
		row(2, ptr(1), "oldest reply", base.Add(time.Minute)),
		row(3, ptr(1), "middle reply", base.Add(2*time.Minute)),
		row(4, ptr(1), "newest reply", base.Add(3*time.Minute)),
	}

	forest := BuildCommentForest(rows)

	require.Len(t, forest, 1)
	require.Len(t, forest[0].Replies, 3)
	assert.Equal(t, uint(2), forest[0].Replies[0].ID)
	assert.Equal(t, uint(3), forest[0].Replies[1].ID)
	assert.Equal(t, uint(4), forest[0].Replies[2].ID)
}

func TestBuildCommentForestOrphanPromotedToRoot(t *testing.T) {
	base := time.Now()
	rows := []models.CommentNodeRow{
		row(1, nil, "root", base),
		row(2, ptr(99), "parent missing", base.Add(time.Minute)),
	}

	forest := BuildCommentForest(rows)

	require.Len(t, forest, 2)
	assert.Equal(t, uint(1), forest[0].ID)
	assert.Equal(t, uint(2), forest[1].ID)
}

func TestBuildCommentForestDeepChain(t *testing.T) {
	base := time.Now()
	rows := []models.CommentNodeRow{row(1, nil, "depth 0", base)}
	for i := uint(2); i <= 10; i++ {
		rows = append(rows, row(i, ptr(i-1), "deeper", base.Add(time.Duration(i)*time.Second)))
	}

	forest := BuildCommentForest(rows)

	require.Len(t, forest, 1)
	node := forest[0]
	depth := 0
	for len(node.Replies) > 0 {
		require.Len(t, node.Replies, 1)
		node = node.Replies[0]
		depth++
	}
	assert.Equal(t, 9, depth)
}
