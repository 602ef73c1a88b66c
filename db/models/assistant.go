package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ASSISTANT_COLLECTION = "assistants"

const ASSISTANT_DEFAULT_VOICE = "alloy"
const ASSISTANT_DEFAULT_TEMPERATURE = 0.6

type AIAssistant struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"userId"`
	Name          string             `bson:"name" json:"name"`
	SystemMessage string             `bson:"system_message" json:"systemMessage"`
	Voice         string             `bson:"voice" json:"voice"`
	Temperature   float64            `bson:"temperature" json:"temperature"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

func ValidTemperature(t float64) bool {
	return t >= 0 && t <= 2
}
