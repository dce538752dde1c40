package mongodb

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	eventsCollection   = "events"
	bookingsCollection = "bookings"

	maxPoolSize = 10
)

// Provider hands out a single shared mongo client, connected lazily on first
// use. Concurrent first callers converge on the same connection attempt; the
// result (success or failure) is memoized for the lifetime of the process.
type Provider struct {
	uri    string
	once   sync.Once
	client *mongo.Client
	err    error
}

// NewProvider returns a Provider for the given connection string. No
// connection is attempted until Client is called.
func NewProvider(uri string) *Provider {
	return &Provider{uri: uri}
}

// Client returns the shared client, connecting and pinging on first call.
func (p *Provider) Client(ctx context.Context) (*mongo.Client, error) {
	p.once.Do(func() {
		opts := options.Client().ApplyURI(p.uri).SetMaxPoolSize(maxPoolSize)
		p.client, p.err = mongo.Connect(ctx, opts)
		if p.err != nil {
			p.err = fmt.Errorf("connect to mongodb: %w", p.err)
			return
		}
		if err := p.client.Ping(ctx, nil); err != nil {
			p.err = fmt.Errorf("ping mongodb: %w", err)
		}
	})
	return p.client, p.err
}

// Database returns the named database handle from the shared client.
func (p *Provider) Database(ctx context.Context, name string) (*mongo.Database, error) {
	client, err := p.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(name), nil
}

// Disconnect closes the shared client if one was connected.
func (p *Provider) Disconnect(ctx context.Context) error {
	if p.client == nil {
		return nil
	}
	return p.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on: the unique
// slug index on events (the storage-level guarantee behind slug uniqueness)
// and the event_id lookup index on bookings.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(eventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create events slug index: %w", err)
	}
	_, err = db.Collection(bookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "event_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create bookings event_id index: %w", err)
	}
	return nil
}
