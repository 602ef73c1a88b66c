package core

import (
	"context"

	"go.convislabs.com/registration/db/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ASSISTANT_SERVICE = "assistant"

// AssistantUpdate is a partial update: nil fields are left unchanged.
// Every update refreshes the record's update timestamp.
type AssistantUpdate struct {
	Name          *string
	SystemMessage *string
	Voice         *string
	Temperature   *float64
}

type AssistantService interface {
	// CreateAssistant requires the owning account to exist; ownership is
	// not re-checked afterwards and assistants are never cascaded.
	CreateAssistant(ctx context.Context, userID primitive.ObjectID, name string, systemMessage string, voice string, temperature float64) (*models.AIAssistant, error)

	GetAssistant(ctx context.Context, id primitive.ObjectID) (*models.AIAssistant, error)

	ListAssistantsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.AIAssistant, error)

	UpdateAssistant(ctx context.Context, id primitive.ObjectID, update AssistantUpdate) (*models.AIAssistant, error)

	// DeleteAssistant issues a single idempotent delete query and reports
	// not-found when no record was affected.
	DeleteAssistant(ctx context.Context, id primitive.ObjectID) error

	Service
}
