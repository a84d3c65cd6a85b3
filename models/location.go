package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

type Location struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Guard       primitive.ObjectID `json:"guard" bson:"guard"`
	Name        string             `json:"name" bson:"name"`
	Coordinates Coordinates        `json:"coordinates" bson:"coordinates"`
	Radius      float64            `json:"radius" bson:"radius"`
	AssignedBy  primitive.ObjectID `json:"assignedBy" bson:"assignedBy"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// LocationWithGuard is a location joined with its guard.
type LocationWithGuard struct {
	Location `bson:",inline"`
	GuardInfo *GuardSummary `json:"guardInfo" bson:"guardInfo"`
}
