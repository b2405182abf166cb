package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory stand-in for the Postgres and Mongo stores that
// keeps their uniqueness and atomicity rules, so services can be exercised
// together without mocks.
type memStore struct {
	mu            sync.Mutex
	now           time.Time
	nextID        uint
	users         map[uint]models.User
	follows       []models.Follow
	posts         map[string]models.Post
	comments      map[uint]models.Comment
	likes         []models.Like
	notifications []models.Notification
}

var (
	_ repositories.UserRepository         = (*memStore)(nil)
	_ repositories.FollowRepository       = (*memStore)(nil)
	_ repositories.PostRepository         = (*memStore)(nil)
	_ repositories.CommentRepository      = (*memStore)(nil)
	_ repositories.LikeRepository         = (*memStore)(nil)
	_ repositories.NotificationRepository = (*memStore)(nil)
	_ repositories.PostCascadeRepository  = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		now:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		users:    map[uint]models.User{},
		posts:    map[string]models.Post{},
		comments: map[uint]models.Comment{},
	}
}

// tick advances the store clock so every write gets a distinct timestamp
func (m *memStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

// users

func (m *memStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = m.id()
	user.CreatedAt = m.tick()
	m.users[user.ID] = *user
	return nil
}

func (m *memStore) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) findUser(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Username == username })
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Email == email })
}

func (m *memStore) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.FirebaseUID != nil && *u.FirebaseUID == uid })
}

func (m *memStore) GetUsersByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memStore) UpdateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memStore) SearchUsers(_ context.Context, query string, params models.PaginationParams) ([]models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(query)) {
			out = append(out, u)
		}
	}
	slices.SortFunc(out, func(a, b models.User) int { return int(a.ID) - int(b.ID) })
	return page(out, params.Offset(), params.Limit()), int64(len(out)), nil
}

func (m *memStore) Exists(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[id]
	return ok, nil
}

// follows

func (m *memStore) CreateFollow(_ context.Context, followerID, followingID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.followIndex(followerID, followingID) >= 0 {
		return false, nil
	}
	m.follows = append(m.follows, models.Follow{ID: m.id(), FollowerID: followerID, FollowingID: followingID, CreatedAt: m.tick()})
	return true, nil
}

func (m *memStore) followIndex(followerID, followingID uint) int {
	return slices.IndexFunc(m.follows, func(f models.Follow) bool {
		return f.FollowerID == followerID && f.FollowingID == followingID
	})
}

func (m *memStore) DeleteFollow(_ context.Context, followerID, followingID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.followIndex(followerID, followingID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	m.follows = slices.Delete(m.follows, i, i+1)
	return nil
}

func (m *memStore) IsFollowing(_ context.Context, followerID, followingID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.followIndex(followerID, followingID) >= 0, nil
}

func (m *memStore) edges(userID uint, followers bool) []models.User {
	var out []models.User
	for _, f := range m.follows {
		switch {
		case followers && f.FollowingID == userID:
			out = append(out, m.users[f.FollowerID])
		case !followers && f.FollowerID == userID:
			out = append(out, m.users[f.FollowingID])
		}
	}
	return out
}

func (m *memStore) GetFollowers(_ context.Context, userID uint, params models.PaginationParams) ([]models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.edges(userID, true)
	return page(all, params.Offset(), params.Limit()), int64(len(all)), nil
}

func (m *memStore) GetFollowing(_ context.Context, userID uint, params models.PaginationParams) ([]models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.edges(userID, false)
	return page(all, params.Offset(), params.Limit()), int64(len(all)), nil
}

func (m *memStore) GetFollowersCount(_ context.Context, userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.edges(userID, true))), nil
}

func (m *memStore) GetFollowingCount(_ context.Context, userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.edges(userID, false))), nil
}

func (m *memStore) GetFollowingIDs(_ context.Context, userID uint) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []uint
	for _, f := range m.follows {
		if f.FollowerID == userID {
			ids = append(ids, f.FollowingID)
		}
	}
	return ids, nil
}

// posts

func (m *memStore) CreatePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = m.tick()
	post.UpdatedAt = post.CreatedAt
	m.posts[post.ID.Hex()] = *post
	return nil
}

func (m *memStore) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

// ListPosts mirrors the Mongo query: newest first with _id as tie-break,
// strictly before the cursor when one is given.
func (m *memStore) ListPosts(_ context.Context, query models.PostQuery, skip, limit int64) ([]models.Post, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Post
	for _, p := range m.posts {
		if query.AuthorIDs != nil && !slices.Contains(query.AuthorIDs, p.UserID) {
			continue
		}
		if query.Search != "" && !strings.Contains(strings.ToLower(p.Content), strings.ToLower(query.Search)) {
			continue
		}
		if c := query.Before; c != nil && comparePosts(p, models.Post{ID: c.ID, CreatedAt: c.CreatedAt}) <= 0 {
			continue
		}
		out = append(out, p)
	}
	slices.SortFunc(out, comparePosts)
	return page(out, int(skip), int(limit)), int64(len(out)), nil
}

// comparePosts orders newer posts first
func comparePosts(a, b models.Post) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.ID.Hex(), a.ID.Hex())
}

func (m *memStore) UpdatePostContent(_ context.Context, id, content string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p.Content = content
	p.UpdatedAt = m.tick()
	m.posts[id] = p
	return &p, nil
}

func (m *memStore) DeletePost(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *memStore) IncrementLikesCount(_ context.Context, postID string, delta int) error {
	return m.bump(postID, func(p *models.Post) { p.LikesCount += delta })
}

func (m *memStore) IncrementCommentsCount(_ context.Context, postID string, delta int) error {
	return m.bump(postID, func(p *models.Post) { p.CommentsCount += delta })
}

func (m *memStore) bump(postID string, apply func(*models.Post)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[postID]
	if !ok {
		return repositories.ErrNotFound
	}
	apply(&p)
	m.posts[postID] = p
	return nil
}

// comments

func (m *memStore) CreateComment(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment.ID = m.id()
	comment.CreatedAt = m.tick()
	m.comments[comment.ID] = *comment
	return nil
}

func (m *memStore) GetCommentByID(_ context.Context, id uint) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (m *memStore) GetCommentsByPostID(_ context.Context, postID string, params models.PaginationParams) ([]models.Comment, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Comment
	for _, c := range m.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b models.Comment) int { return int(a.ID) - int(b.ID) })
	return page(out, params.Offset(), params.Limit()), int64(len(out)), nil
}

func (m *memStore) UpdateComment(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[comment.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.comments[comment.ID] = *comment
	return nil
}

func (m *memStore) DeleteComment(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

// likes

// CreateLike writes the like and its notification together or not at all
func (m *memStore) CreateLike(_ context.Context, like *models.Like, notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.likeIndex(like.PostID, like.UserID) >= 0 {
		return repositories.ErrDuplicate
	}
	like.ID = m.id()
	like.CreatedAt = m.tick()
	m.likes = append(m.likes, *like)
	if notification != nil {
		m.insertNotification(notification)
	}
	return nil
}

func (m *memStore) likeIndex(postID string, userID uint) int {
	return slices.IndexFunc(m.likes, func(l models.Like) bool {
		return l.PostID == postID && l.UserID == userID
	})
}

func (m *memStore) DeleteLike(_ context.Context, postID string, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.likeIndex(postID, userID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	m.likes = slices.Delete(m.likes, i, i+1)
	return nil
}

func (m *memStore) GetLikesCountByPostID(_ context.Context, postID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, l := range m.likes {
		if l.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) HasUserLikedPost(_ context.Context, postID string, userID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.likeIndex(postID, userID) >= 0, nil
}

// notifications

func (m *memStore) insertNotification(n *models.Notification) {
	n.ID = m.id()
	n.CreatedAt = m.tick()
	m.notifications = append(m.notifications, *n)
}

func (m *memStore) CreateNotification(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertNotification(n)
	return nil
}

func (m *memStore) GetByID(_ context.Context, id uint) (*models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notifications {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) GetByRecipientID(_ context.Context, recipientID uint, query models.NotificationQuery, params models.PaginationParams) ([]models.Notification, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.notifications {
		if n.RecipientID != recipientID || (query.UnreadOnly && n.IsRead) {
			continue
		}
		out = append(out, n)
	}
	slices.Reverse(out)
	return page(out, params.Offset(), params.Limit()), int64(len(out)), nil
}

func (m *memStore) GetUnreadCount(_ context.Context, recipientID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, x := range m.notifications {
		if x.RecipientID == recipientID && !x.IsRead {
			n++
		}
	}
	return n, nil
}

func (m *memStore) MarkAsRead(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notifications {
		if m.notifications[i].ID == id {
			m.notifications[i].IsRead = true
		}
	}
	return nil
}

func (m *memStore) MarkAllAsRead(_ context.Context, recipientID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var changed int64
	for i := range m.notifications {
		if n := &m.notifications[i]; n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			changed++
		}
	}
	return changed, nil
}

// cascade

func (m *memStore) PurgePost(_ context.Context, postID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.comments {
		if c.PostID == postID {
			delete(m.comments, id)
		}
	}
	m.likes = slices.DeleteFunc(m.likes, func(l models.Like) bool { return l.PostID == postID })
	return nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	return items[offset:min(offset+limit, len(items))]
}
