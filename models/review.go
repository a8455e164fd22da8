package models

import "time"

// Review is a patient's rating of a nurse. One review per (patient, nurse)
// pair, and only after a completed booking between them.
type Review struct {
	ID             string    `bson:"id" json:"id"`
	PatientID      string    `bson:"patientId" json:"patientId"`
	NurseProfileID string    `bson:"nurseProfileId" json:"nurseProfileId"`
	Rating         int       `bson:"rating" json:"rating"`
	Comment        string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// RatingSummary aggregates a nurse's reviews.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}
