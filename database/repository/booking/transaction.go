package bookingRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"curanest/models"
	"curanest/utils"
)

// InsertIfSlotFree inserts the booking inside a session transaction, after
// re-running the overlap scan against the nurse's active bookings within the
// same transaction. Callers are expected to have validated the slot already;
// the re-check closes the window between validation and insert.
func (r *MongoBookingRepo) InsertIfSlotFree(ctx context.Context, booking *models.Booking) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"nurseId":     booking.NurseID,
			"status":      bson.M{"$in": models.ActiveBookingStatuses},
			"scheduledAt": bson.M{"$lt": booking.End()},
		}
		cursor, err := r.coll.Find(sc, filter)
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		defer cursor.Close(sc)
		for cursor.Next(sc) {
			var existing models.Booking
			if err := cursor.Decode(&existing); err != nil {
				return fmt.Errorf("failed to decode booking: %w", err)
			}
			// Half-open overlap: existing end strictly after requested start.
			if existing.End().After(booking.ScheduledAt) {
				return utils.NewConflictError("nurse already booked for this time slot")
			}
		}
		if err := cursor.Err(); err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}

		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if utils.HasCode(err, utils.CodeConflict) {
			return err
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
