package repositories

import (
	"context"
	"regexp"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context, query models.PostQuery, skip, limit int64) ([]models.Post, int64, error)
	UpdatePostContent(ctx context.Context, id, content string) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	IncrementLikesCount(ctx context.Context, postID string, delta int) error
	IncrementCommentsCount(ctx context.Context, postID string, delta int) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts"), now: time.Now}
}

// EnsureIndexes creates the indexes backing feed and author listings
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
	})
	return err
}

// CreatePost assigns the id and timestamps and inserts the post
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	now := r.now().UTC()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now
	post.LikesCount = 0
	post.CommentsCount = 0
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by its hex id. A malformed id is reported as ErrNotFound.
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var post models.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post); err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// ListPosts returns posts newest first, ties broken by id.
// A non-nil empty AuthorIDs matches nothing.
func (r *MongoPostRepository) ListPosts(ctx context.Context, query models.PostQuery, skip, limit int64) ([]models.Post, int64, error) {
	if query.AuthorIDs != nil && len(query.AuthorIDs) == 0 {
		return nil, 0, nil
	}

	filter := postFilter(query)
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func postFilter(query models.PostQuery) bson.M {
	filter := bson.M{}
	if len(query.AuthorIDs) > 0 {
		filter["user_id"] = bson.M{"$in": query.AuthorIDs}
	}
	if query.Search != "" {
		filter["content"] = primitive.Regex{Pattern: regexp.QuoteMeta(query.Search), Options: "i"}
	}
	if c := query.Before; c != nil {
		filter["$or"] = bson.A{
			bson.M{"created_at": bson.M{"$lt": c.CreatedAt}},
			bson.M{"created_at": c.CreatedAt, "_id": bson.M{"$lt": c.ID}},
		}
	}
	return filter
}

// UpdatePostContent replaces the content and returns the updated post
func (r *MongoPostRepository) UpdatePostContent(ctx context.Context, id, content string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"content":    content,
			"updated_at": r.now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&post); err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementLikesCount adjusts the denormalised likes counter by delta
func (r *MongoPostRepository) IncrementLikesCount(ctx context.Context, postID string, delta int) error {
	return r.incr(ctx, postID, "likes_count", delta)
}

// IncrementCommentsCount adjusts the denormalised comments counter by delta
func (r *MongoPostRepository) IncrementCommentsCount(ctx context.Context, postID string, delta int) error {
	return r.incr(ctx, postID, "comments_count", delta)
}

func (r *MongoPostRepository) incr(ctx context.Context, postID, field string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{field: delta}})
	return err
}
