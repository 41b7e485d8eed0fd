package repositories

import "github.com/tahmid-rayat/momentgram/backend/internal/models"

// BuildCommentForest reconstructs the threaded comment forest from flat
// rows ordered chronologically. Two passes: the first builds the
// id→node lookup, the second attaches each row either to its parent's
// reply list or to the root list, preserving the input order. A row
// whose parent is missing from the working set is promoted to a root
// instead of being dropped. Depth is unbounded.
func BuildCommentForest(rows []models.CommentNodeRow) []*models.CommentNode {
	nodes := make(map[uint]*models.CommentNode, len(rows))
	for _, row := range rows {
		nodes[row.ID] = &models.CommentNode{
			ID:        row.ID,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
			LikeCount: row.LikeCount,
			Author: models.UserCompact{
				ID:         row.AuthorID,
				Username:   row.Username,
				FullName:   row.FullName,
				ProfilePic: row.ProfilePic,
			},
			Replies: []*models.CommentNode{},
		}
	}

	roots := make([]*models.CommentNode, 0, len(rows))
	for _, row := range rows {
		node := nodes[row.ID]
		if row.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*row.ParentID]
		if !ok {
			// Orphaned reply; shouldn't happen while the same-target
			// parent constraint holds, but never fail on it.
			roots = append(roots, node)
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}
	return roots
}
