package db

import (
	"context"
	"time"

	"go.convislabs.com/registration/core"
	"go.convislabs.com/registration/db/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

func NewDatabase(ctx core.Context) (*mongo.Database, []core.ContextBuilderOption) {
	cfg := ctx.Config()
	logger := ctx.Logger()

	uri := cfg.Config().Core.DB.URI
	name := cfg.Config().Core.DB.Name

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}

	db := client.Database(name)

	ctxOpts := []core.ContextBuilderOption{
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
			defer cancel()

			if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
				return err
			}

			return EnsureIndexes(ctx, db)
		}),
		core.ContextWithDB(db),
		core.ContextWithExitFunc(func(ctx core.Context) error {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()

			return client.Disconnect(disconnectCtx)
		}),
	}

	return db, ctxOpts
}

// EnsureIndexes creates the indexes the services rely on. The unique
// email index makes concurrent duplicate registrations lose at insert
// time instead of both succeeding past the existence check.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(models.USER_COLLECTION).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(models.ASSISTANT_COLLECTION).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})

	return err
}
