package handlers

import (
	"errors"
	"iter"
	"net/http"
	"strings"
	"testing"

	"github.com/anonto42/socialfeed/backend/internal/mocks"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func seqOf(posts []models.Post, tail error) iter.Seq2[models.Post, error] {
	return func(yield func(models.Post, error) bool) {
		for _, p := range posts {
			if !yield(p, nil) {
				return
			}
		}
		if tail != nil {
			yield(models.Post{}, tail)
		}
	}
}

func newFeedServer(userID uint) (*mocks.FeedService, *echo.Echo) {
	svc := new(mocks.FeedService)
	return svc, newTestServer(userID, NewFeedHandler(svc, zap.NewNop()).RegisterFeedRoutes)
}

func TestFeedHandler_GetFeed(t *testing.T) {
	svc, e := newFeedServer(1)
	posts := []models.EnrichedPost{{Post: models.Post{ID: primitive.NewObjectID(), UserID: 2}}}
	svc.On("GetFeed", mock.Anything, uint(1), firstPage).Return(models.NewPaginatedResponse(posts, firstPage, 1), nil)

	rec := doRequest(e, http.MethodGet, "/api/v1/feed", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[models.PaginatedResponse[models.EnrichedPost]](t, rec).Data, 1)
	svc.AssertExpectations(t)
}

func TestFeedHandler_StreamFeed(t *testing.T) {
	posts := []models.Post{
		{ID: primitive.NewObjectID(), UserID: 2, Content: "newest"},
		{ID: primitive.NewObjectID(), UserID: 3, Content: "older"},
		{ID: primitive.NewObjectID(), UserID: 2, Content: "oldest"},
	}

	t.Run("all", func(t *testing.T) {
		svc, e := newFeedServer(1)
		svc.On("Stream", mock.Anything, uint(1)).Return(seqOf(posts, nil))

		rec := doRequest(e, http.MethodGet, "/api/v1/feed/stream", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/x-ndjson", rec.Header().Get(echo.HeaderContentType))
		lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], `"newest"`)
		assert.Contains(t, lines[2], `"oldest"`)
	})

	t.Run("limit", func(t *testing.T) {
		svc, e := newFeedServer(1)
		svc.On("Stream", mock.Anything, uint(1)).Return(seqOf(posts, errors.New("never reached")))

		rec := doRequest(e, http.MethodGet, "/api/v1/feed/stream?limit=2", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, strings.Split(strings.TrimSpace(rec.Body.String()), "\n"), 2)
	})

	t.Run("error after first post is logged", func(t *testing.T) {
		svc := new(mocks.FeedService)
		core, logs := observer.New(zap.InfoLevel)
		e := newTestServer(1, NewFeedHandler(svc, zap.New(core)).RegisterFeedRoutes)
		svc.On("Stream", mock.Anything, uint(1)).Return(seqOf(posts[:1], errors.New("mongo: cursor killed")))

		rec := doRequest(e, http.MethodGet, "/api/v1/feed/stream", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, strings.Split(strings.TrimSpace(rec.Body.String()), "\n"), 1)
		entries := logs.FilterMessage("feed stream aborted").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.EqualValues(t, 1, fields["sent"])
		assert.Equal(t, "mongo: cursor killed", fields["error"])
	})

	t.Run("bad limit", func(t *testing.T) {
		svc, e := newFeedServer(1)

		rec := doRequest(e, http.MethodGet, "/api/v1/feed/stream?limit=-1", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Stream", mock.Anything, mock.Anything)
	})
}
