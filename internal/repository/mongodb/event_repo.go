package mongodb

import (
	"context"
	"errors"
	"time"

	"eventdeck/internal/domain"
	"eventdeck/internal/pipeline"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type eventRepository struct {
	coll   *mongo.Collection
	commit *pipeline.Event
}

// NewEventRepository returns an EventRepository backed by the events
// collection. Every Create and Update runs the event commit pipeline right
// before the driver write, so no caller can persist an unvalidated record.
func NewEventRepository(db *mongo.Database) domain.EventRepository {
	return &eventRepository{
		coll:   db.Collection(eventsCollection),
		commit: pipeline.NewEvent(),
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	// A fresh candidate has no slug yet; the title counts as just set.
	if err := r.commit.Run(e, true); err != nil {
		return err
	}

	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, e)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugConflict
		}
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = id
	}
	return nil
}

func (r *eventRepository) Update(ctx context.Context, id primitive.ObjectID, upd domain.EventUpdate) (*domain.Event, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	titleChanged := applyUpdate(e, upd)
	if err := r.commit.Run(e, titleChanged); err != nil {
		return nil, err
	}
	e.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, e)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugConflict
		}
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// applyUpdate copies the set fields of upd onto e and reports whether the
// title was set in this write.
func applyUpdate(e *domain.Event, upd domain.EventUpdate) (titleChanged bool) {
	if upd.Title != nil {
		e.Title = *upd.Title
		titleChanged = true
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.Overview != nil {
		e.Overview = *upd.Overview
	}
	if upd.Image != nil {
		e.Image = *upd.Image
	}
	if upd.Venue != nil {
		e.Venue = *upd.Venue
	}
	if upd.Location != nil {
		e.Location = *upd.Location
	}
	if upd.Date != nil {
		e.Date = *upd.Date
	}
	if upd.Time != nil {
		e.Time = *upd.Time
	}
	if upd.Mode != nil {
		e.Mode = *upd.Mode
	}
	if upd.Audience != nil {
		e.Audience = *upd.Audience
	}
	if upd.Organizer != nil {
		e.Organizer = *upd.Organizer
	}
	if upd.Agenda != nil {
		e.Agenda = upd.Agenda
	}
	if upd.Tags != nil {
		e.Tags = upd.Tags
	}
	return titleChanged
}

func (r *eventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Event, error) {
	e := &domain.Event{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	e := &domain.Event{}
	err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	events := make([]*domain.Event, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := r.coll.FindOne(ctx, bson.M{"_id": id}, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
