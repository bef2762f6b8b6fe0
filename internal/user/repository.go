package user

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"academy-api/pkg/cerror"
	"academy-api/pkg/config"
)

type Repository interface {
	EnsureIndexes(ctx context.Context) error
	InsertUser(ctx context.Context, user *UserDocument) (string, error)
	FindUserWithId(ctx context.Context, userId string) (*UserDocument, error)
	FindUserWithEmail(ctx context.Context, email string) (*UserDocument, error)
	FindUserWithVerificationToken(ctx context.Context, token string) (*UserDocument, error)
	FindUserWithResetToken(ctx context.Context, token string) (*UserDocument, error)
	SetVerificationToken(ctx context.Context, userId, token string, expiresAt time.Time) error
	MarkEmailVerified(ctx context.Context, userId string) error
	SetResetToken(ctx context.Context, userId, token string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, userId, hashedPassword string) error
	UpdateLastLogin(ctx context.Context, userId string) error
	UpdateManyUsers(ctx context.Context, userIds []string, fields bson.M) (*BulkUpdateResult, error)
	AddPurchasedItem(ctx context.Context, userId, field, itemId string) error
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

func (r *repository) userCollection() *mongo.Collection {
	return r.client.
		Database(r.mongodbConfig.Database).
		Collection(r.mongodbConfig.Collections[config.MongodbUserCollection])
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.userCollection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while create unique email index",
			zap.Error(err),
		)
	}

	return nil
}

func (r *repository) InsertUser(ctx context.Context, user *UserDocument) (string, error) {
	result, err := r.userCollection().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", cerror.NewError(
				fiber.StatusConflict,
				"user already exists",
			).SetSeverity(zapcore.WarnLevel)
		}

		return "", cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while insert user",
			zap.Error(err),
		)
	}

	userId, ok := result.InsertedID.(string)
	if !ok {
		return "", cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while type casting for user id",
		)
	}

	return userId, nil
}

func (r *repository) FindUserWithId(ctx context.Context, userId string) (*UserDocument, error) {
	return r.findOneUser(ctx, bson.D{{Key: "_id", Value: userId}})
}

func (r *repository) FindUserWithEmail(ctx context.Context, email string) (*UserDocument, error) {
	return r.findOneUser(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *repository) FindUserWithVerificationToken(ctx context.Context, token string) (*UserDocument, error) {
	return r.findOneUser(ctx, bson.D{{Key: "emailVerificationToken", Value: token}})
}

func (r *repository) FindUserWithResetToken(ctx context.Context, token string) (*UserDocument, error) {
	return r.findOneUser(ctx, bson.D{{Key: "passwordResetToken", Value: token}})
}

func (r *repository) findOneUser(ctx context.Context, filter bson.D) (*UserDocument, error) {
	var user UserDocument
	err := r.userCollection().FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, cerror.NewError(
				fiber.StatusNotFound,
				"user not found",
			).SetSeverity(zapcore.WarnLevel)
		}

		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while find user",
			zap.Error(err),
		)
	}

	return &user, nil
}

func (r *repository) SetVerificationToken(
	ctx context.Context,
	userId, token string,
	expiresAt time.Time,
) error {
	update := bson.M{
		"$set": bson.M{
			"emailVerificationToken":   token,
			"emailVerificationExpires": expiresAt,
			"updatedAt":                time.Now().UTC(),
		},
	}

	return r.updateOneUser(ctx, userId, update, "error occurred while set verification token")
}

// MarkEmailVerified flips the verification state and clears the token in a
// single document update so the token can never outlive the verified flag.
func (r *repository) MarkEmailVerified(ctx context.Context, userId string) error {
	update := bson.M{
		"$set": bson.M{
			"emailVerified": true,
			"status":        StatusActive,
			"updatedAt":     time.Now().UTC(),
		},
		"$unset": bson.M{
			"emailVerificationToken":   "",
			"emailVerificationExpires": "",
		},
	}

	return r.updateOneUser(ctx, userId, update, "error occurred while mark email verified")
}

func (r *repository) SetResetToken(
	ctx context.Context,
	userId, token string,
	expiresAt time.Time,
) error {
	update := bson.M{
		"$set": bson.M{
			"passwordResetToken":   token,
			"passwordResetExpires": expiresAt,
			"updatedAt":            time.Now().UTC(),
		},
	}

	return r.updateOneUser(ctx, userId, update, "error occurred while set reset token")
}

// UpdatePassword clears both reset fields together with the password write.
func (r *repository) UpdatePassword(ctx context.Context, userId, hashedPassword string) error {
	update := bson.M{
		"$set": bson.M{
			"password":  hashedPassword,
			"updatedAt": time.Now().UTC(),
		},
		"$unset": bson.M{
			"passwordResetToken":   "",
			"passwordResetExpires": "",
		},
	}

	return r.updateOneUser(ctx, userId, update, "error occurred while update password")
}

func (r *repository) UpdateLastLogin(ctx context.Context, userId string) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"lastLogin": now,
			"updatedAt": now,
		},
	}

	return r.updateOneUser(ctx, userId, update, "error occurred while update last login")
}

func (r *repository) updateOneUser(
	ctx context.Context,
	userId string,
	update bson.M,
	errorMessage string,
) error {
	filter := bson.D{{Key: "_id", Value: userId}}
	result, err := r.userCollection().UpdateOne(ctx, filter, update)
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			errorMessage,
			zap.Error(err),
		)
	}

	if result.MatchedCount == 0 {
		return cerror.NewError(
			fiber.StatusNotFound,
			"user not found",
		).SetSeverity(zapcore.WarnLevel)
	}

	return nil
}

func (r *repository) UpdateManyUsers(
	ctx context.Context,
	userIds []string,
	fields bson.M,
) (*BulkUpdateResult, error) {
	setFields := bson.M{
		"updatedAt": time.Now().UTC(),
	}
	for field, value := range fields {
		setFields[field] = value
	}

	filter := bson.M{"_id": bson.M{"$in": userIds}}
	result, err := r.userCollection().UpdateMany(ctx, filter, bson.M{"$set": setFields})
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while update users",
			zap.Error(err),
		)
	}

	return &BulkUpdateResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}, nil
}

func (r *repository) AddPurchasedItem(ctx context.Context, userId, field, itemId string) error {
	filter := bson.D{{Key: "_id", Value: userId}}
	update := bson.M{
		"$addToSet": bson.M{field: itemId},
		"$set": bson.M{
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.userCollection().UpdateOne(ctx, filter, update)
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while add purchased item",
			zap.Error(err),
		)
	}

	if result.MatchedCount == 0 {
		return cerror.NewError(
			fiber.StatusNotFound,
			"user not found",
		).SetSeverity(zapcore.WarnLevel)
	}

	return nil
}
