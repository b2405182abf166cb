package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/mocks"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newFeedFixture(batch int64) (*feedService, *mocks.FollowRepository, *mocks.PostRepository, *mocks.UserRepository) {
	followRepo := new(mocks.FollowRepository)
	postRepo := new(mocks.PostRepository)
	userRepo := new(mocks.UserRepository)
	svc := NewFeedService(followRepo, postRepo, userRepo).(*feedService)
	svc.batch = batch
	return svc, followRepo, postRepo, userRepo
}

// feedPosts returns n posts newest first, one second apart
func feedPosts(n int, authorID uint) []models.Post {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	out := make([]models.Post, n)
	for i := range out {
		at := base.Add(-time.Duration(i) * time.Second)
		out[i] = models.Post{ID: primitive.NewObjectIDFromTimestamp(at), UserID: authorID, CreatedAt: at}
	}
	return out
}

func TestFeedService_GetFeed(t *testing.T) {
	ctx := context.Background()
	params := models.PaginationParams{Page: 2, PageSize: 5}

	t.Run("follows nobody", func(t *testing.T) {
		svc, followRepo, postRepo, _ := newFeedFixture(50)
		followRepo.On("GetFollowingIDs", ctx, uint(1)).Return([]uint{}, nil).Once()

		res, err := svc.GetFeed(ctx, 1, params)

		require.NoError(t, err)
		assert.Empty(t, res.Data)
		assert.NotNil(t, res.Data)
		assert.Zero(t, res.TotalItems)
		postRepo.AssertNotCalled(t, "ListPosts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("pages posts of followed users", func(t *testing.T) {
		svc, followRepo, postRepo, userRepo := newFeedFixture(50)
		posts := feedPosts(2, 3)
		followRepo.On("GetFollowingIDs", ctx, uint(1)).Return([]uint{3, 4}, nil).Once()
		postRepo.On("ListPosts", ctx, models.PostQuery{AuthorIDs: []uint{3, 4}}, int64(5), int64(5)).
			Return(posts, int64(7), nil).Once()
		userRepo.On("GetUsersByIDs", ctx, []uint{3}).
			Return([]models.User{{ID: 3, Username: "carol"}}, nil).Once()

		res, err := svc.GetFeed(ctx, 1, params)

		require.NoError(t, err)
		require.Len(t, res.Data, 2)
		assert.Equal(t, "carol", res.Data[0].Author.Username)
		assert.Equal(t, int64(7), res.TotalItems)
		assert.True(t, res.HasPrev)
		assert.False(t, res.HasNext)
	})
}

func TestFeedService_Stream(t *testing.T) {
	ctx := context.Background()

	t.Run("walks batches by cursor", func(t *testing.T) {
		svc, followRepo, postRepo, _ := newFeedFixture(2)
		posts := feedPosts(3, 3)
		followRepo.On("GetFollowingIDs", ctx, uint(1)).Return([]uint{3}, nil).Once()
		postRepo.On("ListPosts", ctx, mock.MatchedBy(func(q models.PostQuery) bool {
			return q.Before == nil
		}), int64(0), int64(2)).Return(posts[:2], int64(3), nil).Once()
		postRepo.On("ListPosts", ctx, mock.MatchedBy(func(q models.PostQuery) bool {
			return q.Before != nil && q.Before.ID == posts[1].ID && q.Before.CreatedAt.Equal(posts[1].CreatedAt)
		}), int64(0), int64(2)).Return(posts[2:], int64(1), nil).Once()

		var got []primitive.ObjectID
		for p, err := range svc.Stream(ctx, 1) {
			require.NoError(t, err)
			got = append(got, p.ID)
		}

		assert.Equal(t, []primitive.ObjectID{posts[0].ID, posts[1].ID, posts[2].ID}, got)
		postRepo.AssertExpectations(t)
	})

	t.Run("stops when consumer breaks", func(t *testing.T) {
		svc, followRepo, postRepo, _ := newFeedFixture(2)
		posts := feedPosts(2, 3)
		followRepo.On("GetFollowingIDs", ctx, uint(1)).Return([]uint{3}, nil).Once()
		postRepo.On("ListPosts", ctx, mock.Anything, int64(0), int64(2)).Return(posts, int64(2), nil).Once()

		n := 0
		for range svc.Stream(ctx, 1) {
			n++
			break
		}

		assert.Equal(t, 1, n)
		postRepo.AssertNumberOfCalls(t, "ListPosts", 1)
	})

	t.Run("yields error", func(t *testing.T) {
		svc, followRepo, _, _ := newFeedFixture(2)
		boom := errors.New("db down")
		followRepo.On("GetFollowingIDs", ctx, uint(1)).Return(nil, boom).Once()

		var errs []error
		for _, err := range svc.Stream(ctx, 1) {
			errs = append(errs, err)
		}

		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], boom)
	})

	t.Run("restarts with fresh following set", func(t *testing.T) {
		svc, followRepo, postRepo, _ := newFeedFixture(2)
		followRepo.On("GetFollowingIDs", ctx, uint(1)).Return([]uint{}, nil).Once()
		followRepo.On("GetFollowingIDs", ctx, uint(1)).Return([]uint{3}, nil).Once()
		postRepo.On("ListPosts", ctx, models.PostQuery{AuthorIDs: []uint{3}}, int64(0), int64(2)).
			Return(feedPosts(1, 3), int64(1), nil).Once()

		seq := svc.Stream(ctx, 1)
		count := func() int {
			n := 0
			for range seq {
				n++
			}
			return n
		}

		assert.Equal(t, 0, count())
		assert.Equal(t, 1, count())
		followRepo.AssertExpectations(t)
	})
}
