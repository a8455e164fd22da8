package nurseRepo

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

// MongoNurseRepo implements NurseRepository using MongoDB.
type MongoNurseRepo struct {
	coll *mongo.Collection
}

// NewMongoNurseRepo creates a new instance of NurseRepository using MongoDB.
func NewMongoNurseRepo() NurseRepository {
	return &MongoNurseRepo{coll: database.Collection("nurseProfiles")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoNurseRepo) Create(profile *models.NurseProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to create nurse profile: %w", err)
	}
	return nil
}

func (r *MongoNurseRepo) GetByID(id string) (*models.NurseProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var profile models.NurseProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch nurse profile with id %s: %w", id, err)
	}
	return &profile, nil
}

func (r *MongoNurseRepo) GetByUserID(userID string) (*models.NurseProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var profile models.NurseProfile
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch nurse profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

func (r *MongoNurseRepo) Update(profile *models.NurseProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": profile.ID}, bson.M{"$set": profile})
	if err != nil {
		return fmt.Errorf("failed to update nurse profile with id %s: %w", profile.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("nurse profile with id %s not found", profile.ID)
	}
	return nil
}

func (r *MongoNurseRepo) UpdateAvailability(userID string, availability models.WeeklyAvailability) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{"availability": availability, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to update availability for user %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("nurse profile for user %s not found", userID)
	}
	return nil
}

func (r *MongoNurseRepo) SetApproved(id string, approved bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{"approved": approved, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set approval for nurse profile %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("nurse profile with id %s not found", id)
	}
	return nil
}

func (r *MongoNurseRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete nurse profile with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("nurse profile with id %s not found", id)
	}
	return nil
}

func (r *MongoNurseRepo) ListApproved(filter models.NurseFilter) ([]models.NurseProfile, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{"approved": true}
	if filter.Specialization != "" {
		query["specialization"] = filter.Specialization
	}
	if filter.Location != "" {
		query["location"] = bson.M{"$regex": filter.Location, "$options": "i"}
	}
	if filter.MaxRate > 0 {
		query["hourlyRate"] = bson.M{"$lte": filter.MaxRate}
	}
	return r.list(ctx, query)
}

func (r *MongoNurseRepo) ListPending() ([]models.NurseProfile, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	return r.list(ctx, bson.M{"approved": false})
}

func (r *MongoNurseRepo) list(ctx context.Context, query bson.M) ([]models.NurseProfile, error) {
	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve nurse profiles: %w", err)
	}
	defer cursor.Close(ctx)
	var profiles []models.NurseProfile
	for cursor.Next(ctx) {
		var p models.NurseProfile
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode nurse profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
