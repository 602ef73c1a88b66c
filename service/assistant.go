package service

import (
	"context"
	"errors"
	"time"

	"go.convislabs.com/registration/config"
	"go.convislabs.com/registration/core"
	"go.convislabs.com/registration/db/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ core.AssistantService = (*AssistantServiceDefault)(nil)

func init() {
	core.RegisterService(core.ServiceInfo{
		ID: core.ASSISTANT_SERVICE,
		Factory: func() (core.Service, []core.ContextBuilderOption, error) {
			return NewAssistantService()
		},
		Depends: []string{core.USER_SERVICE},
	})
}

type AssistantServiceDefault struct {
	ctx    core.Context
	config config.Manager
	db     *mongo.Database
	user   core.UserService
}

func NewAssistantService() (*AssistantServiceDefault, []core.ContextBuilderOption, error) {
	assistant := &AssistantServiceDefault{}

	opts := core.ContextOptions(
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			assistant.ctx = ctx
			assistant.config = ctx.Config()
			assistant.db = ctx.DB()
			assistant.user = core.GetService[core.UserService](ctx, core.USER_SERVICE)
			return nil
		}),
	)

	return assistant, opts, nil
}

func (a *AssistantServiceDefault) ID() string {
	return core.ASSISTANT_SERVICE
}

func (a *AssistantServiceDefault) assistants() *mongo.Collection {
	return a.db.Collection(models.ASSISTANT_COLLECTION)
}

func (a *AssistantServiceDefault) CreateAssistant(ctx context.Context, userID primitive.ObjectID, name string, systemMessage string, voice string, temperature float64) (*models.AIAssistant, error) {
	if !models.ValidTemperature(temperature) {
		return nil, core.NewAccountError(core.ErrKeyInvalidRequest, nil, "Temperature must be between 0 and 2")
	}

	exists, _, err := a.user.AccountExists(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, core.NewAccountError(core.ErrKeyUserNotFound, nil)
	}

	if voice == "" {
		voice = models.ASSISTANT_DEFAULT_VOICE
	}

	now := time.Now().UTC()

	assistant := models.AIAssistant{
		UserID:        userID,
		Name:          name,
		SystemMessage: systemMessage,
		Voice:         voice,
		Temperature:   temperature,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := a.assistants().InsertOne(ctx, &assistant)
	if err != nil {
		return nil, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	assistant.ID = result.InsertedID.(primitive.ObjectID)

	return &assistant, nil
}

func (a *AssistantServiceDefault) GetAssistant(ctx context.Context, id primitive.ObjectID) (*models.AIAssistant, error) {
	var assistant models.AIAssistant

	err := a.assistants().FindOne(ctx, bson.M{"_id": id}).Decode(&assistant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.NewAccountError(core.ErrKeyAssistantNotFound, nil)
		}

		return nil, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return &assistant, nil
}

func (a *AssistantServiceDefault) ListAssistantsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.AIAssistant, error) {
	cursor, err := a.assistants().Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	assistants := make([]*models.AIAssistant, 0)

	if err = cursor.All(ctx, &assistants); err != nil {
		return nil, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return assistants, nil
}

func (a *AssistantServiceDefault) UpdateAssistant(ctx context.Context, id primitive.ObjectID, update core.AssistantUpdate) (*models.AIAssistant, error) {
	if update.Temperature != nil && !models.ValidTemperature(*update.Temperature) {
		return nil, core.NewAccountError(core.ErrKeyInvalidRequest, nil, "Temperature must be between 0 and 2")
	}

	set := bson.M{"updated_at": time.Now().UTC()}

	if update.Name != nil {
		set["name"] = *update.Name
	}

	if update.SystemMessage != nil {
		set["system_message"] = *update.SystemMessage
	}

	if update.Voice != nil {
		set["voice"] = *update.Voice
	}

	if update.Temperature != nil {
		set["temperature"] = *update.Temperature
	}

	var assistant models.AIAssistant

	err := a.assistants().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&assistant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.NewAccountError(core.ErrKeyAssistantNotFound, nil)
		}

		return nil, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return &assistant, nil
}

func (a *AssistantServiceDefault) DeleteAssistant(ctx context.Context, id primitive.ObjectID) error {
	result, err := a.assistants().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	if result.DeletedCount == 0 {
		return core.NewAccountError(core.ErrKeyAssistantNotFound, nil)
	}

	return nil
}
