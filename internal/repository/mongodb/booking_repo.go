package mongodb

import (
	"context"
	"time"

	"eventdeck/internal/domain"
	"eventdeck/internal/pipeline"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRepository struct {
	coll   *mongo.Collection
	commit *pipeline.Booking
}

// NewBookingRepository returns a BookingRepository backed by the bookings
// collection. Create runs the booking commit pipeline (email shape first,
// then the referenced-event existence check) before the driver write.
func NewBookingRepository(db *mongo.Database, events pipeline.EventExistence) domain.BookingRepository {
	return &bookingRepository{
		coll:   db.Collection(bookingsCollection),
		commit: pipeline.NewBooking(events),
	}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if err := r.commit.Run(ctx, b); err != nil {
		return err
	}

	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, b)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = id
	}
	return nil
}

func (r *bookingRepository) ListByEventID(ctx context.Context, eventID primitive.ObjectID) ([]*domain.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, err
	}

	bookings := make([]*domain.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
