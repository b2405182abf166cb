package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a social media post stored in MongoDB
type Post struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        uint               `json:"user_id" bson:"user_id"` // author, fixed at creation
	Content       string             `json:"content" bson:"content"`
	LikesCount    int                `json:"likes_count" bson:"likes_count"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// PostQuery filters post listings. A nil AuthorIDs means any author;
// a non-nil empty slice matches nothing.
type PostQuery struct {
	AuthorIDs []uint
	Search    string
	Before    *PostCursor
}

// PostCursor marks a position in a newest-first listing. Only posts strictly
// older than the cursor (by created_at, then _id) are returned.
type PostCursor struct {
	CreatedAt time.Time
	ID        primitive.ObjectID
}

// Cursor returns the position just after p
func (p Post) Cursor() *PostCursor {
	return &PostCursor{CreatedAt: p.CreatedAt, ID: p.ID}
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}

// EnrichedPost is a post with author info
type EnrichedPost struct {
	Post
	Author UserCompact `json:"author"`
}
