package services

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
)

// usersByID loads the given users in one round trip
func usersByID(ctx context.Context, users repositories.UserRepository, ids []uint) (map[uint]models.UserCompact, error) {
	out := make(map[uint]models.UserCompact, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	found, err := users.GetUsersByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	for i := range found {
		out[found[i].ID] = found[i].ToCompact()
	}
	return out, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func enrichPosts(ctx context.Context, users repositories.UserRepository, posts []models.Post) ([]models.EnrichedPost, error) {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.UserID
	}
	authors, err := usersByID(ctx, users, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.EnrichedPost, len(posts))
	for i, p := range posts {
		author, ok := authors[p.UserID]
		if !ok {
			author = models.UserCompact{ID: p.UserID}
		}
		out[i] = models.EnrichedPost{Post: p, Author: author}
	}
	return out, nil
}
