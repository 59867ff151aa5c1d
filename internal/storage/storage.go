package storage

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tiendalabs/supermercado/config"
	"github.com/tiendalabs/supermercado/internal/domain"
)

// ErrNotFound reports that no document matched the given id or filter.
// Callers decide whether that maps to a 404.
var ErrNotFound = errors.New("document not found")

// Store is the narrow document-store surface the handlers depend on.
// Every operation performs exactly one round trip and is attempted once.
type Store interface {
	// Insert persists doc and returns the store-assigned id.
	Insert(ctx context.Context, collection string, doc any) (string, error)
	// FindByID decodes the id-matching document into out, or ErrNotFound.
	FindByID(ctx context.Context, collection, id string, out any) error
	// FindOne decodes the first filter-matching document into out, or ErrNotFound.
	FindOne(ctx context.Context, collection string, filter any, out any) error
	// FindAll decodes every document in the collection into out (a slice pointer).
	FindAll(ctx context.Context, collection string, out any) error
	// UpdateByID applies fields as a $set on the id-matching document.
	// A zero matched count maps to ErrNotFound.
	UpdateByID(ctx context.Context, collection, id string, fields any) error
	// DeleteByID removes the id-matching document. A zero deleted count
	// maps to ErrNotFound.
	DeleteByID(ctx context.Context, collection, id string) error
}

// Database is the MongoDB-backed Store.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ Store = (*Database)(nil)

// Connect opens a client against cfg.Database and verifies it with a ping.
func Connect(ctx context.Context, cfg *config.AppConfig) (*Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URL))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "pinging mongodb")
	}
	return &Database{
		client: client,
		db:     client.Database(cfg.Database.Name),
	}, nil
}

func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the application relies on. Only the
// unique email index on users exists beyond the default _id lookups.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	_, err := d.db.Collection(domain.CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return errors.Wrap(err, "creating users email index")
}

func (d *Database) Insert(ctx context.Context, collection string, doc any) (string, error) {
	res, err := d.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", errors.Wrapf(err, "inserting document into '%s'", collection)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (d *Database) FindByID(ctx context.Context, collection, id string, out any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	err = d.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return errors.Wrapf(err, "querying document from '%s'", collection)
}

func (d *Database) FindOne(ctx context.Context, collection string, filter any, out any) error {
	err := d.db.Collection(collection).FindOne(ctx, filter).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return errors.Wrapf(err, "querying document from '%s'", collection)
}

func (d *Database) FindAll(ctx context.Context, collection string, out any) error {
	cursor, err := d.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return errors.Wrapf(err, "querying documents from '%s'", collection)
	}
	return errors.Wrapf(cursor.All(ctx, out), "decoding documents from '%s'", collection)
}

func (d *Database) UpdateByID(ctx context.Context, collection, id string, fields any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := d.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return errors.Wrapf(err, "updating document in '%s'", collection)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) DeleteByID(ctx context.Context, collection, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := d.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrapf(err, "deleting document from '%s'", collection)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
