package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Appreciation struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Guard     primitive.ObjectID `json:"guard" bson:"guard"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Message   string             `json:"message" bson:"message"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
