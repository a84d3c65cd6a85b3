package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LivePing is one position report sent by a guard on duty.
type LivePing struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Guard       primitive.ObjectID `json:"guard" bson:"guard"`
	Coordinates Coordinates        `json:"coordinates" bson:"coordinates"`
	WithinZone  bool               `json:"withinZone" bson:"withinZone"`
	Distance    float64            `json:"distance" bson:"distance"`
	RecordedAt  time.Time          `json:"recordedAt" bson:"recordedAt"`
	GuardInfo   *GuardSummary      `json:"guardInfo,omitempty" bson:"guardInfo,omitempty"`
}
