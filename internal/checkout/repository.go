package checkout

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"academy-api/pkg/cerror"
	"academy-api/pkg/config"
)

type Repository interface {
	InsertTransaction(ctx context.Context, transaction *TransactionDocument) error
}

type repository struct {
	client        *mongo.Client
	mongodbConfig config.MongodbConfig
}

func NewRepository(client *mongo.Client, mongodbConfig config.MongodbConfig) Repository {
	return &repository{
		client:        client,
		mongodbConfig: mongodbConfig,
	}
}

func (r *repository) transactionCollection() *mongo.Collection {
	return r.client.
		Database(r.mongodbConfig.Database).
		Collection(r.mongodbConfig.Collections[config.MongodbTransactionCollection])
}

func (r *repository) InsertTransaction(ctx context.Context, transaction *TransactionDocument) error {
	_, err := r.transactionCollection().InsertOne(ctx, transaction)
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while insert transaction",
			zap.Error(err),
		)
	}

	return nil
}
