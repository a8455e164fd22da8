package models

import "time"

// NurseProfile holds a nurse's public profile, weekly availability and the
// running earnings balance. TotalEarnings is adjusted exclusively by the
// settlement repository's transactional writes; no other code path mutates it.
type NurseProfile struct {
	ID             string             `bson:"id" json:"id"`
	UserID         string             `bson:"userId" json:"userId"`
	Specialization []string           `bson:"specialization" json:"specialization"`
	HourlyRate     float64            `bson:"hourlyRate" json:"hourlyRate"`
	Location       string             `bson:"location" json:"location"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Approved       bool               `bson:"approved" json:"approved"`
	Availability   WeeklyAvailability `bson:"availability" json:"availability"`
	TotalEarnings  float64            `bson:"totalEarnings" json:"totalEarnings"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NurseProfileInput carries the caller-editable profile fields.
type NurseProfileInput struct {
	Specialization []string `json:"specialization"`
	HourlyRate     float64  `json:"hourlyRate"`
	Location       string   `json:"location"`
	Bio            string   `json:"bio"`
}

// NurseFilter narrows approved-nurse listings.
type NurseFilter struct {
	Specialization string  `form:"specialization"`
	Location       string  `form:"location"`
	MaxRate        float64 `form:"maxRate"`
}
