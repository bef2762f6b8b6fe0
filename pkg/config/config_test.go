//go:build unit

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnvironmentVariables() {
	os.Setenv(MongodbUri, "database-uri")
	os.Setenv(MongodbUsername, "database-username")
	os.Setenv(MongodbPassword, "database-password")
	os.Setenv(MongodbDatabase, "database-database")
	os.Setenv(MongodbUserCollection, "database-user-collection")
	os.Setenv(MongodbTransactionCollection, "database-transaction-collection")
	os.Setenv(JwtPrivateKey, "jwt-private-key")
	os.Setenv(JwtPublicKey, "jwt-public-key")
	os.Setenv(SmtpHost, "smtp-host")
	os.Setenv(SmtpPort, "587")
	os.Setenv(SmtpSenderAddress, "noreply@academy.test")
	os.Setenv(SmtpPassword, "smtp-password")
	os.Setenv(ProcessorUrl, "https://processor.test")
	os.Setenv(ProcessorKey, "processor-key")
}

func TestReadConfig(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		os.Setenv(ServerPort, "8080")
		setRequiredEnvironmentVariables()
		defer os.Clearenv()

		config, err := ReadConfig()

		assert.NoError(t, err)
		assert.NotEmpty(t, config)
	})

	t.Run("when server port is empty should return config with default port", func(t *testing.T) {
		setRequiredEnvironmentVariables()
		defer os.Clearenv()

		config, err := ReadConfig()

		assert.NoError(t, err)
		assert.Equal(t, "8080", config.ServerPort)
	})

	t.Run("when mongodb variables are missing should return error", func(t *testing.T) {
		defer os.Clearenv()

		config, err := ReadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
	})
}

func TestReadMongoDbConfig(t *testing.T) {
	setRequiredEnvironmentVariables()
	defer os.Clearenv()

	mongoConfig, err := ReadMongoDbConfig()

	assert.NoError(t, err)
	assert.NotEmpty(t, mongoConfig)
}

func TestReadJwtConfig(t *testing.T) {
	os.Setenv(JwtPrivateKey, "jwt-private-key")
	os.Setenv(JwtPublicKey, "jwt-public-key")
	defer os.Clearenv()

	jwtConfig, err := ReadJwtConfig()

	assert.NoError(t, err)
	assert.NotEmpty(t, jwtConfig)
}

func TestReadSmtpConfig(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		setRequiredEnvironmentVariables()
		defer os.Clearenv()

		smtpConfig, err := ReadSmtpConfig()

		assert.NoError(t, err)
		assert.Equal(t, 587, smtpConfig.Port)
	})

	t.Run("when smtp port is not a number should return error", func(t *testing.T) {
		setRequiredEnvironmentVariables()
		os.Setenv(SmtpPort, "not-a-port")
		defer os.Clearenv()

		_, err := ReadSmtpConfig()

		assert.Error(t, err)
	})
}

func TestReadProcessorConfig(t *testing.T) {
	setRequiredEnvironmentVariables()
	defer os.Clearenv()

	processorConfig, err := ReadProcessorConfig()

	assert.NoError(t, err)
	assert.NotEmpty(t, processorConfig)
}

func TestReadCookieConfig(t *testing.T) {
	os.Setenv(CookieDomain, "academy.test")
	os.Setenv(CookieSecure, "true")
	defer os.Clearenv()

	cookieConfig := ReadCookieConfig()

	assert.Equal(t, "academy.test", cookieConfig.Domain)
	assert.True(t, cookieConfig.Secure)
}
