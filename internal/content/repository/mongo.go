package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lawfolio/lawfolio/backend/site-service/internal/content"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoContentRepo stores each singleton as {_id: key, fields: {...}, updatedAt}.
// Merges are expressed as $set on "fields.<name>" so untouched fields survive.
type MongoContentRepo struct {
	col *mongo.Collection
}

func NewMongoContentRepo(db *mongo.Database) *MongoContentRepo {
	return &MongoContentRepo{col: db.Collection(ContentCollection)}
}

func (m *MongoContentRepo) Get(ctx context.Context, key content.Key) (*content.Document, error) {
	var d content.Document
	err := m.col.FindOne(ctx, bson.M{"_id": key}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	if d.Fields == nil {
		d.Fields = content.Fields{}
	}
	return &d, nil
}

func (m *MongoContentRepo) Merge(ctx context.Context, key content.Key, fields content.Fields, at time.Time) error {
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, bson.M{"_id": key}, bson.M{"$set": contentSet(fields, at)}, opts)
	return err
}

func contentSet(fields content.Fields, at time.Time) bson.M {
	set := bson.M{"updatedAt": at}
	for k, v := range fields {
		set["fields."+k] = v
	}
	return set
}

// MongoServiceRepo stores service entries keyed by generated string ids.
type MongoServiceRepo struct {
	col *mongo.Collection
}

func NewMongoServiceRepo(db *mongo.Database) *MongoServiceRepo {
	col := db.Collection(ServiceCollection)
	ensureIndex(col, mongo.IndexModel{Keys: bson.D{{Key: "order", Value: 1}}})
	return &MongoServiceRepo{col: col}
}

func (m *MongoServiceRepo) List(ctx context.Context) ([]content.ServiceEntry, error) {
	cur, err := m.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []content.ServiceEntry{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoServiceRepo) Create(ctx context.Context, s *content.ServiceEntry) error {
	_, err := m.col.InsertOne(ctx, s)
	return err
}

func (m *MongoServiceRepo) Update(ctx context.Context, id string, patch content.ServicePatch, at time.Time) error {
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": serviceSet(patch, at)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return content.ErrNotFound
	}
	return nil
}

func serviceSet(patch content.ServicePatch, at time.Time) bson.M {
	set := bson.M{"updatedAt": at}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Icon != nil {
		set["icon"] = *patch.Icon
	}
	if patch.Order != nil {
		set["order"] = *patch.Order
	}
	return set
}

func (m *MongoServiceRepo) Delete(ctx context.Context, id string) error {
	_, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// MongoMessageRepo stores the contact inbox.
type MongoMessageRepo struct {
	col *mongo.Collection
}

func NewMongoMessageRepo(db *mongo.Database) *MongoMessageRepo {
	col := db.Collection(MessageCollection)
	ensureIndex(col, mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}})
	return &MongoMessageRepo{col: col}
}

func (m *MongoMessageRepo) List(ctx context.Context) ([]content.MessageEntry, error) {
	cur, err := m.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	out := []content.MessageEntry{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoMessageRepo) Create(ctx context.Context, msg *content.MessageEntry) error {
	_, err := m.col.InsertOne(ctx, msg)
	return err
}

func (m *MongoMessageRepo) Delete(ctx context.Context, id string) error {
	_, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func ensureIndex(col *mongo.Collection, model mongo.IndexModel) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := col.Indexes().CreateOne(ctx, model); err != nil {
		logger.Warnf("create index on %s: %v", col.Name(), err)
	}
}
