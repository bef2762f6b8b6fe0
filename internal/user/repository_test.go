//go:build unit

package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"academy-api/pkg/cerror"
	"academy-api/pkg/config"
)

const (
	TestMongoDbUserName = "root"
	TestMongoDbPassword = "12345"

	TestMongoDbDatabaseName   = "academy"
	TestMongoDbUserCollection = "user"
)

func TestNewRepository(t *testing.T) {
	userRepository := NewRepository(nil, config.MongodbConfig{})

	assert.Implements(t, (*Repository)(nil), userRepository)
}

func setupMongoDbContainer(t *testing.T, ctx context.Context) testcontainers.Container {
	req := testcontainers.ContainerRequest{
		Image: "mongo",
		Env: map[string]string{
			"MONGO_INITDB_ROOT_USERNAME": TestMongoDbUserName,
			"MONGO_INITDB_ROOT_PASSWORD": TestMongoDbPassword,
		},
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Waiting for connections"),
			wait.ForListeningPort("27017/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	})

	return container
}

func setupTestRepository(t *testing.T, ctx context.Context) Repository {
	t.Helper()

	container := setupMongoDbContainer(t, ctx)
	mongodbUri, err := container.Endpoint(ctx, "mongodb")
	if err != nil {
		t.Fatal(fmt.Errorf("failed to get endpoint: %w", err))
	}

	credentials := options.Client().
		ApplyURI(mongodbUri).
		SetAuth(options.Credential{
			Username: TestMongoDbUserName,
			Password: TestMongoDbPassword,
		})

	mongoClient, err := mongo.Connect(ctx, credentials)
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			t.Fatalf("failed to disconnect mongo client: %s", err)
		}
	})

	userRepository := NewRepository(mongoClient, config.MongodbConfig{
		Database: TestMongoDbDatabaseName,
		Collections: map[string]string{
			config.MongodbUserCollection: TestMongoDbUserCollection,
		},
	})

	err = userRepository.EnsureIndexes(ctx)
	require.NoError(t, err)

	return userRepository
}

func insertTestUser(t *testing.T, ctx context.Context, userRepository Repository, user *UserDocument) {
	t.Helper()

	_, err := userRepository.InsertUser(ctx, user)
	require.NoError(t, err)
}

func TestRepository_InsertUser(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		ctx := context.Background()
		userRepository := setupTestRepository(t, ctx)

		userId, err := userRepository.InsertUser(ctx, newTestUserDocument(t))

		assert.NoError(t, err)
		assert.Equal(t, TestUserId, userId)
	})

	t.Run("when email already exists should return conflict", func(t *testing.T) {
		ctx := context.Background()
		userRepository := setupTestRepository(t, ctx)
		insertTestUser(t, ctx, userRepository, newTestUserDocument(t))

		duplicate := newTestUserDocument(t)
		duplicate.Id = uuid.New().String()
		_, err := userRepository.InsertUser(ctx, duplicate)

		var cerr *cerror.CustomError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, 409, cerr.HttpStatusCode)
	})
}

func TestRepository_FindUserWithEmail(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		ctx := context.Background()
		userRepository := setupTestRepository(t, ctx)
		insertTestUser(t, ctx, userRepository, newTestUserDocument(t))

		user, err := userRepository.FindUserWithEmail(ctx, TestUserEmail)

		assert.NoError(t, err)
		assert.Equal(t, TestUserId, user.Id)
	})

	t.Run("when user does not exist should return not found", func(t *testing.T) {
		ctx := context.Background()
		userRepository := setupTestRepository(t, ctx)

		user, err := userRepository.FindUserWithEmail(ctx, "nobody@example.com")

		assert.Nil(t, user)
		var cerr *cerror.CustomError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, 404, cerr.HttpStatusCode)
	})
}

func TestRepository_VerificationTokenLifecycle(t *testing.T) {
	t.Run("set find and consume", func(t *testing.T) {
		ctx := context.Background()
		userRepository := setupTestRepository(t, ctx)

		pendingUser := newTestUserDocument(t)
		pendingUser.EmailVerified = false
		pendingUser.Status = StatusPending
		insertTestUser(t, ctx, userRepository, pendingUser)

		expiresAt := time.Now().UTC().Add(24 * time.Hour)
		err := userRepository.SetVerificationToken(ctx, TestUserId, "verification-token", expiresAt)
		require.NoError(t, err)

		user, err := userRepository.FindUserWithVerificationToken(ctx, "verification-token")
		require.NoError(t, err)
		assert.Equal(t, TestUserId, user.Id)
		assert.WithinDuration(t, expiresAt, user.EmailVerificationExpires, time.Second)

		err = userRepository.MarkEmailVerified(ctx, TestUserId)
		require.NoError(t, err)

		verifiedUser, err := userRepository.FindUserWithId(ctx, TestUserId)
		require.NoError(t, err)
		assert.True(t, verifiedUser.EmailVerified)
		assert.Equal(t, StatusActive, verifiedUser.Status)
		assert.Empty(t, verifiedUser.EmailVerificationToken)

		_, err = userRepository.FindUserWithVerificationToken(ctx, "verification-token")
		assert.Error(t, err)
	})
}

func TestRepository_UpdatePassword(t *testing.T) {
	t.Run("should clear reset token together with password write", func(t *testing.T) {
		ctx := context.Background()
		userRepository := setupTestRepository(t, ctx)
		insertTestUser(t, ctx, userRepository, newTestUserDocument(t))

		err := userRepository.SetResetToken(
			ctx,
			TestUserId,
			"reset-token",
			time.Now().UTC().Add(time.Hour),
		)
		require.NoError(t, err)

		err = userRepository.UpdatePassword(ctx, TestUserId, "new-hashed-password")
		require.NoError(t, err)

		user, err := userRepository.FindUserWithId(ctx, TestUserId)
		require.NoError(t, err)
		assert.Equal(t, "new-hashed-password", user.Password)
		assert.Empty(t, user.PasswordResetToken)

		_, err = userRepository.FindUserWithResetToken(ctx, "reset-token")
		assert.Error(t, err)
	})

	t.Run("when user does not exist should return not found", func(t *testing.T) {
		ctx := context.Background()
		userRepository := setupTestRepository(t, ctx)

		err := userRepository.UpdatePassword(ctx, uuid.New().String(), "new-hashed-password")

		var cerr *cerror.CustomError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, 404, cerr.HttpStatusCode)
	})
}

func TestRepository_UpdateManyUsers(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		ctx := context.Background()
		userRepository := setupTestRepository(t, ctx)

		userIds := make([]string, 0, 3)
		for i := 0; i < 3; i++ {
			user := newTestUserDocument(t)
			user.Id = uuid.New().String()
			user.Email = fmt.Sprintf("user-%d@example.com", i)
			insertTestUser(t, ctx, userRepository, user)
			userIds = append(userIds, user.Id)
		}

		result, err := userRepository.UpdateManyUsers(ctx, userIds[:2], bson.M{"role": RoleInstructor})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.MatchedCount)
		assert.Equal(t, int64(2), result.ModifiedCount)

		promoted, err := userRepository.FindUserWithId(ctx, userIds[0])
		require.NoError(t, err)
		assert.Equal(t, RoleInstructor, promoted.Role)

		untouched, err := userRepository.FindUserWithId(ctx, userIds[2])
		require.NoError(t, err)
		assert.Equal(t, RoleStudent, untouched.Role)
	})

	t.Run("when no ids match should report zero matched", func(t *testing.T) {
		ctx := context.Background()
		userRepository := setupTestRepository(t, ctx)

		result, err := userRepository.UpdateManyUsers(
			ctx,
			[]string{uuid.New().String()},
			bson.M{"status": StatusBanned},
		)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), result.MatchedCount)
	})
}

func TestRepository_AddPurchasedItem(t *testing.T) {
	t.Run("repeated confirmations should not duplicate the item", func(t *testing.T) {
		ctx := context.Background()
		userRepository := setupTestRepository(t, ctx)
		insertTestUser(t, ctx, userRepository, newTestUserDocument(t))

		for i := 0; i < 2; i++ {
			err := userRepository.AddPurchasedItem(ctx, TestUserId, "purchasedCourses", "course-1")
			require.NoError(t, err)
		}

		user, err := userRepository.FindUserWithId(ctx, TestUserId)
		require.NoError(t, err)
		assert.Equal(t, []string{"course-1"}, user.PurchasedCourses)
	})
}
