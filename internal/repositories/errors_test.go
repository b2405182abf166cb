package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"gorm not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"wrapped gorm not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), ErrNotFound},
		{"mongo no documents", mongo.ErrNoDocuments, ErrNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, ErrDuplicate},
		{"passthrough", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translate(tt.in))
		})
	}
}

func TestPostFilter(t *testing.T) {
	t.Run("empty query matches everything", func(t *testing.T) {
		assert.Empty(t, postFilter(models.PostQuery{}))
	})

	t.Run("authors and escaped search", func(t *testing.T) {
		f := postFilter(models.PostQuery{AuthorIDs: []uint{1, 2}, Search: "a.b"})
		assert.Equal(t, bson.M{"$in": []uint{1, 2}}, f["user_id"])
		assert.Equal(t, primitive.Regex{Pattern: `a\.b`, Options: "i"}, f["content"])
	})
}

func TestPostFilterCursor(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	id := primitive.NewObjectIDFromTimestamp(at)

	f := postFilter(models.PostQuery{Before: &models.PostCursor{CreatedAt: at, ID: id}})
	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Equal(t, bson.M{"created_at": bson.M{"$lt": at}}, or[0])
	assert.Equal(t, bson.M{"created_at": at, "_id": bson.M{"$lt": id}}, or[1])
}

func TestUnreadKey(t *testing.T) {
	assert.Equal(t, "notifications:unread:42", unreadKey(42))
}

func TestListPostsNoAuthorsSkipsQuery(t *testing.T) {
	repo := &MongoPostRepository{}
	posts, total, err := repo.ListPosts(context.Background(), models.PostQuery{AuthorIDs: []uint{}}, 0, 10)
	assert.NoError(t, err)
	assert.Empty(t, posts)
	assert.Zero(t, total)
}

func TestMalformedPostIDIsNotFound(t *testing.T) {
	repo := &MongoPostRepository{}
	_, err := repo.GetPostByID(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeletePost(context.Background(), "xyz"), ErrNotFound)
}
