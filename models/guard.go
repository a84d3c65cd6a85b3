package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Guard struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	Username     string             `json:"username" bson:"username"`
	Email        string             `json:"email" bson:"email"`
	FullName     string             `json:"fullName" bson:"fullName"`
	Phone        string             `json:"phone" bson:"phone"`
	Password     string             `json:"-" bson:"password"`
	Residence    string             `json:"residence" bson:"residence"`
	IsApproved   bool               `json:"isApproved" bson:"isApproved"`
	WorkPercent  int                `json:"workPercent" bson:"workPercent"`
	WorkHistory  []WorkEntry        `json:"workHistory" bson:"workHistory"`
	RefreshToken string             `json:"-" bson:"refreshToken,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// WorkEntry is one day of duty, rolled up from live location pings.
type WorkEntry struct {
	Date    time.Time `json:"date" bson:"date"`
	Percent int       `json:"percent" bson:"percent"`
	Pings   int       `json:"pings" bson:"pings"`
}

// GuardSummary is the public projection used by list and lookup stages.
type GuardSummary struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Username    string             `json:"username" bson:"username"`
	FullName    string             `json:"fullName" bson:"fullName"`
	Email       string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Residence   string             `json:"residence,omitempty" bson:"residence,omitempty"`
	IsApproved  bool               `json:"isApproved" bson:"isApproved"`
	WorkPercent int                `json:"workPercent" bson:"workPercent"`
	Location    *Location          `json:"location,omitempty" bson:"location,omitempty"`
}

// GuardDetail is what admins see for a single guard.
type GuardDetail struct {
	Guard         Guard     `json:"guard"`
	Location      *Location `json:"location"`
	Complaints    int64     `json:"complaints"`
	Appreciations int64     `json:"appreciations"`
}
