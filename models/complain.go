package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Complain struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Guard     primitive.ObjectID `json:"guard" bson:"guard"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Complain  string             `json:"complain" bson:"complain"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Feedback is a complain or appreciation joined with both parties.
type Feedback struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	Text          string             `json:"text" bson:"text"`
	GuardID       primitive.ObjectID `json:"guardId" bson:"guardId"`
	GuardUsername string             `json:"guardUsername,omitempty" bson:"guardUsername,omitempty"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	Username      string             `json:"username,omitempty" bson:"username,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}
