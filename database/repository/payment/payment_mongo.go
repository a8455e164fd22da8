package paymentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"curanest/database"
	"curanest/models"
)

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo creates a new instance of PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	return &MongoPaymentRepo{coll: database.Collection("payments")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPaymentRepo) Create(payment *models.Payment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *MongoPaymentRepo) GetByProviderPaymentID(ref string) (*models.Payment, error) {
	return r.findOne(bson.M{"providerPaymentId": ref})
}

func (r *MongoPaymentRepo) GetByBookingID(bookingID string) (*models.Payment, error) {
	return r.findOne(bson.M{"bookingId": bookingID})
}

func (r *MongoPaymentRepo) GetSuccessfulByBookingID(bookingID string) (*models.Payment, error) {
	return r.findOne(bson.M{"bookingId": bookingID, "status": models.PaymentSuccess})
}

func (r *MongoPaymentRepo) findOne(filter bson.M) (*models.Payment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var payment models.Payment
	if err := r.coll.FindOne(ctx, filter).Decode(&payment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch payment: %w", err)
	}
	return &payment, nil
}

func (r *MongoPaymentRepo) Reissue(id, providerPaymentID string, amount float64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	// Only non-final payments may be re-keyed.
	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": []string{models.PaymentPending, models.PaymentFailed}},
	}
	update := bson.M{"$set": bson.M{
		"providerPaymentId": providerPaymentID,
		"amount":            amount,
		"status":            models.PaymentPending,
		"updatedAt":         time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reissue payment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payment %s not found or already settled", id)
	}
	return nil
}

func (r *MongoPaymentRepo) SetStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update status of payment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payment with id %s not found", id)
	}
	return nil
}

func (r *MongoPaymentRepo) TotalSettledAmount() (float64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": models.PaymentSuccess}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate payments: %w", err)
	}
	defer cursor.Close(ctx)
	var result struct {
		Total float64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, fmt.Errorf("failed to decode payment aggregate: %w", err)
		}
	}
	return result.Total, nil
}
