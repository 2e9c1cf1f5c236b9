// Package mongodb stores posts in a MongoDB collection.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"Boardgames/internal/core/posts"
)

// PostsCollection is the collection the site's posts have always lived in
const PostsCollection = "userposts"

const titleIndexName = "title_unique"

// postDocument is the stored shape of a post
type postDocument struct {
	CreatedAt      time.Time     `bson:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt"`
	UserID         string        `bson:"userId,omitempty"`
	Author         string        `bson:"author"`
	Title          string        `bson:"title"`
	SubTitle       string        `bson:"subTitle"`
	Paragraph      string        `bson:"paragraph"`
	Img            string        `bson:"img,omitempty"`
	PublicID       string        `bson:"publicId,omitempty"`
	SubmissionTime string        `bson:"submissionTime,omitempty"`
	Date           string        `bson:"date,omitempty"`
	ID             bson.ObjectID `bson:"_id,omitempty"`
}

type mongoPostRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewPostRepository creates a MongoDB post repository on db and makes sure
// the unique title index exists.
func NewPostRepository(ctx context.Context, db *mongo.Database) (posts.Repository, error) {
	if db == nil {
		return nil, errors.New("mongodb: database handle is nil")
	}

	r := &mongoPostRepo{
		coll: db.Collection(PostsCollection),
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// ensureIndexes creates the unique title index. Uniqueness is settled here,
// not by the service's check-then-insert, so concurrent creates with the
// same title cannot both succeed.
func (r *mongoPostRepo) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(titleIndexName),
	})
	if err != nil {
		return fmt.Errorf("failed to create title index: %w", err)
	}
	return nil
}

func (r *mongoPostRepo) List(ctx context.Context) ([]*posts.Post, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	result := make([]*posts.Post, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toPost())
	}
	return result, nil
}

func (r *mongoPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, posts.NewNotFoundError("post", id)
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}}, id)
}

func (r *mongoPostRepo) GetByTitle(ctx context.Context, title string) (*posts.Post, error) {
	return r.findOne(ctx, bson.D{{Key: "title", Value: title}}, title)
}

func (r *mongoPostRepo) findOne(ctx context.Context, filter bson.D, key string) (*posts.Post, error) {
	var doc postDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, posts.NewNotFoundError("post", key)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return doc.toPost(), nil
}

func (r *mongoPostRepo) Create(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	if missing := post.MissingFields(); len(missing) > 0 {
		return nil, posts.NewIncompleteFormError(missing)
	}

	now := r.now()
	doc := fromPost(post)
	doc.ID = bson.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, posts.NewTitleExistsError()
		}
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	post.ID = doc.ID.Hex()
	post.CreatedAt = now
	post.UpdatedAt = now
	return post, nil
}

// UpdateByID sets every mutable field, so omitted optional fields end up
// cleared. Creation stamps are never touched.
func (r *mongoPostRepo) UpdateByID(ctx context.Context, id string, in posts.PostInput) (*posts.Post, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, posts.NewNotFoundError("post", id)
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "userId", Value: in.UserID},
		{Key: "author", Value: in.Author},
		{Key: "title", Value: in.Title},
		{Key: "subTitle", Value: in.SubTitle},
		{Key: "paragraph", Value: in.Paragraph},
		{Key: "img", Value: in.Img},
		{Key: "publicId", Value: in.PublicID},
		{Key: "updatedAt", Value: r.now()},
	}}}

	var doc postDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, posts.NewNotFoundError("post", id)
		case mongo.IsDuplicateKeyError(err):
			return nil, posts.NewTitleExistsError()
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return doc.toPost(), nil
}

func (r *mongoPostRepo) DeleteByID(ctx context.Context, id string) (*posts.Post, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, posts.NewNotFoundError("post", id)
	}

	var doc postDocument
	err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, posts.NewNotFoundError("post", id)
		}
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}
	return doc.toPost(), nil
}

func (r *mongoPostRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts: %w", err)
	}
	return res.DeletedCount, nil
}

// parseID reports false for anything that is not a 24-hex ObjectID.
// Callers treat that exactly like a missing record.
func parseID(id string) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, false
	}
	return oid, true
}

func fromPost(p *posts.Post) postDocument {
	return postDocument{
		UserID:         p.UserID,
		Author:         p.Author,
		Title:          p.Title,
		SubTitle:       p.SubTitle,
		Paragraph:      p.Paragraph,
		Img:            p.Img,
		PublicID:       p.PublicID,
		SubmissionTime: p.SubmissionTime,
		Date:           p.Date,
	}
}

func (d *postDocument) toPost() *posts.Post {
	return &posts.Post{
		ID:             d.ID.Hex(),
		UserID:         d.UserID,
		Author:         d.Author,
		Title:          d.Title,
		SubTitle:       d.SubTitle,
		Paragraph:      d.Paragraph,
		Img:            d.Img,
		PublicID:       d.PublicID,
		SubmissionTime: d.SubmissionTime,
		Date:           d.Date,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
