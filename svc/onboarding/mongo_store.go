package onboarding

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const mongoCollection = "onboarding_progress"

type mongoProgress struct {
	UserID      string         `bson:"_id"`
	CurrentStep string         `bson:"current_step,omitempty"`
	Fields      map[string]any `bson:"fields"`
	LastUpdated time.Time      `bson:"last_updated"`
}

func (d mongoProgress) progress() *Progress {
	p := &Progress{
		UserID:      d.UserID,
		CurrentStep: d.CurrentStep,
		Fields:      d.Fields,
		LastUpdated: d.LastUpdated,
	}
	if p.Fields == nil {
		p.Fields = map[string]any{}
	}
	return p
}

// MongoStore keeps one document per user. Merges use $set on dotted paths so
// concurrent writers touching different keys do not clobber each other.
// Field names must not contain dots or start with '$'; ProgressService
// enforces that.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore stores progress in the onboarding_progress collection of db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(mongoCollection)}
}

func (s *MongoStore) Load(ctx context.Context, userID string) (*Progress, error) {
	var doc mongoProgress
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: userID}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return doc.progress(), nil
}

func (s *MongoStore) Merge(ctx context.Context, userID string, fields map[string]any, at time.Time) (*Progress, error) {
	set := bson.D{{Key: "last_updated", Value: at}}
	for k, v := range fields {
		set = append(set, bson.E{Key: "fields." + k, Value: v})
	}

	update := bson.D{{Key: "$set", Value: set}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc mongoProgress
	err := s.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: userID}}, update, opts).Decode(&doc)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return doc.progress(), nil
}

func (s *MongoStore) SetCurrentStep(ctx context.Context, userID string, step Step, at time.Time) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "current_step", Value: string(step)},
		{Key: "last_updated", Value: at},
	}}}
	_, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: userID}}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *MongoStore) Clear(ctx context.Context, userID string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: userID}}); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}
