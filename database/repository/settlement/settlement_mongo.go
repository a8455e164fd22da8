package settlementRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"curanest/database"
	"curanest/models"
)

// MongoSettlementRepo implements SettlementRepository over the payments,
// bookings and nurseProfiles collections of one database, so all three
// writes can share a session transaction.
type MongoSettlementRepo struct {
	payments *mongo.Collection
	bookings *mongo.Collection
	profiles *mongo.Collection
}

// NewMongoSettlementRepo creates a new instance of SettlementRepository using MongoDB.
func NewMongoSettlementRepo() SettlementRepository {
	return &MongoSettlementRepo{
		payments: database.Collection("payments"),
		bookings: database.Collection("bookings"),
		profiles: database.Collection("nurseProfiles"),
	}
}

func (r *MongoSettlementRepo) ConfirmPayment(ctx context.Context, paymentID, bookingID, profileID string, amount float64) error {
	txnFn := func(sc mongo.SessionContext) error {
		// The status filter makes the transition idempotent: a payment that
		// already left PENDING/FAILED matches nothing and the txn aborts.
		payFilter := bson.M{
			"id":     paymentID,
			"status": bson.M{"$in": []string{models.PaymentPending, models.PaymentFailed}},
		}
		payUpdate := bson.M{"$set": bson.M{"status": models.PaymentSuccess, "updatedAt": time.Now()}}
		res, err := r.payments.UpdateOne(sc, payFilter, payUpdate)
		if err != nil {
			return fmt.Errorf("payment status write failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("payment %s is not awaiting settlement", paymentID)
		}

		bookUpdate := bson.M{"$set": bson.M{"status": models.BookingConfirmed}}
		res, err = r.bookings.UpdateOne(sc, bson.M{"id": bookingID}, bookUpdate)
		if err != nil {
			return fmt.Errorf("booking status write failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("booking %s not found", bookingID)
		}

		earnUpdate := bson.M{
			"$inc": bson.M{"totalEarnings": amount},
			"$set": bson.M{"updatedAt": time.Now()},
		}
		res, err = r.profiles.UpdateOne(sc, bson.M{"id": profileID}, earnUpdate)
		if err != nil {
			return fmt.Errorf("earnings write failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("nurse profile %s not found", profileID)
		}
		return nil
	}
	return r.runTransaction(ctx, "settlement", txnFn)
}

func (r *MongoSettlementRepo) RefundPayment(ctx context.Context, paymentID, bookingID, profileID string, amount float64) error {
	txnFn := func(sc mongo.SessionContext) error {
		now := time.Now()
		payFilter := bson.M{"id": paymentID, "status": models.PaymentSuccess}
		payUpdate := bson.M{"$set": bson.M{
			"status":       models.PaymentRefunded,
			"refundedAt":   now,
			"refundAmount": amount,
			"updatedAt":    now,
		}}
		res, err := r.payments.UpdateOne(sc, payFilter, payUpdate)
		if err != nil {
			return fmt.Errorf("payment refund write failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("payment %s is not refundable", paymentID)
		}

		earnUpdate := bson.M{
			"$inc": bson.M{"totalEarnings": -amount},
			"$set": bson.M{"updatedAt": now},
		}
		res, err = r.profiles.UpdateOne(sc, bson.M{"id": profileID}, earnUpdate)
		if err != nil {
			return fmt.Errorf("earnings write failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("nurse profile %s not found", profileID)
		}

		bookUpdate := bson.M{"$set": bson.M{"status": models.BookingCancelled}}
		res, err = r.bookings.UpdateOne(sc, bson.M{"id": bookingID}, bookUpdate)
		if err != nil {
			return fmt.Errorf("booking status write failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("booking %s not found", bookingID)
		}
		return nil
	}
	return r.runTransaction(ctx, "refund", txnFn)
}

func (r *MongoSettlementRepo) runTransaction(ctx context.Context, label string, txnFn func(mongo.SessionContext) error) error {
	client := r.payments.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

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
		return fmt.Errorf("%s transaction failed: %w", label, err)
	}
	return nil
}
