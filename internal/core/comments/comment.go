package comments

import (
	"time"
)

// Comment is a single entry in a post's reply tree. ParentID is nil for
// top-level comments. Depth is computed and clamped at write time: 0 for
// top-level, parent depth + 1 for replies, never above the configured maximum.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	ParentID  *string   `json:"parentId,omitempty" db:"parent_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	Depth     int       `json:"depth" db:"depth"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CreateCommentRequest carries the caller-supplied fields for a new comment.
// AuthorID comes from the authenticated context.
type CreateCommentRequest struct {
	PostID   string  `json:"-"`
	AuthorID string  `json:"-"`
	Content  string  `json:"content"`
	ParentID *string `json:"parentId"`
}

// ThreadNode is one comment in the rendered tree, with its like count and
// replies in creation order.
type ThreadNode struct {
	Comment *Comment      `json:"comment"`
	Likes   int64         `json:"likes"`
	Replies []*ThreadNode `json:"replies"`
}
