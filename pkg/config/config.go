package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kr/pretty"
)

func ReadConfig() (*Config, error) {
	serverPort := os.Getenv(ServerPort)
	if serverPort == "" {
		serverPort = "8080"
		fmt.Println("server port environment variable is empty its declared 8080 by default")
	}

	baseUrl := os.Getenv(BaseUrl)
	if baseUrl == "" {
		baseUrl = fmt.Sprintf("http://localhost:%s", serverPort)
	}

	mongodbConfig, err := ReadMongoDbConfig()
	if err != nil {
		return nil, err
	}

	jwtConfig, err := ReadJwtConfig()
	if err != nil {
		return nil, err
	}

	smtpConfig, err := ReadSmtpConfig()
	if err != nil {
		return nil, err
	}

	processorConfig, err := ReadProcessorConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort: serverPort,
		BaseUrl:    baseUrl,
		Mongodb:    mongodbConfig,
		Jwt:        jwtConfig,
		Smtp:       smtpConfig,
		Processor:  processorConfig,
		Cookie:     ReadCookieConfig(),
	}, nil
}

func (c *Config) Print() {
	_, _ = pretty.Println(c)
}

func ReadMongoDbConfig() (MongodbConfig, error) {
	mongodbUri := os.Getenv(MongodbUri)
	if mongodbUri == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbUri)
	}

	mongodbUsername := os.Getenv(MongodbUsername)
	if mongodbUsername == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbUsername)
	}

	mongodbPassword := os.Getenv(MongodbPassword)
	if mongodbPassword == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbPassword)
	}

	mongodbDatabase := os.Getenv(MongodbDatabase)
	if mongodbDatabase == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbDatabase)
	}

	mongodbUserCollection := os.Getenv(MongodbUserCollection)
	if mongodbUserCollection == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbUserCollection)
	}

	mongodbTransactionCollection := os.Getenv(MongodbTransactionCollection)
	if mongodbTransactionCollection == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbTransactionCollection)
	}

	return MongodbConfig{
		Uri:      mongodbUri,
		Username: mongodbUsername,
		Password: mongodbPassword,
		Database: mongodbDatabase,
		Collections: map[string]string{
			MongodbUserCollection:        mongodbUserCollection,
			MongodbTransactionCollection: mongodbTransactionCollection,
		},
	}, nil
}

func ReadJwtConfig() (JwtConfig, error) {
	privateKey := os.Getenv(JwtPrivateKey)
	if privateKey == "" {
		return JwtConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, JwtPrivateKey)
	}
	privateKey = strings.ReplaceAll(privateKey, `\n`, "\n")

	publicKey := os.Getenv(JwtPublicKey)
	if publicKey == "" {
		return JwtConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, JwtPublicKey)
	}
	publicKey = strings.ReplaceAll(publicKey, `\n`, "\n")

	return JwtConfig{
		PrivateKey: []byte(privateKey),
		PublicKey:  []byte(publicKey),
	}, nil
}

func ReadSmtpConfig() (SmtpConfig, error) {
	smtpHost := os.Getenv(SmtpHost)
	if smtpHost == "" {
		return SmtpConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, SmtpHost)
	}

	smtpPort := os.Getenv(SmtpPort)
	if smtpPort == "" {
		return SmtpConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, SmtpPort)
	}

	parsedSmtpPort, err := strconv.Atoi(smtpPort)
	if err != nil {
		return SmtpConfig{}, fmt.Errorf("%s variable is not a valid port number", SmtpPort)
	}

	smtpSenderAddress := os.Getenv(SmtpSenderAddress)
	if smtpSenderAddress == "" {
		return SmtpConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, SmtpSenderAddress)
	}

	smtpPassword := os.Getenv(SmtpPassword)
	if smtpPassword == "" {
		return SmtpConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, SmtpPassword)
	}

	return SmtpConfig{
		Host:          smtpHost,
		Port:          parsedSmtpPort,
		SenderAddress: smtpSenderAddress,
		Password:      smtpPassword,
	}, nil
}

func ReadProcessorConfig() (ProcessorConfig, error) {
	processorUrl := os.Getenv(ProcessorUrl)
	if processorUrl == "" {
		return ProcessorConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, ProcessorUrl)
	}

	processorKey := os.Getenv(ProcessorKey)
	if processorKey == "" {
		return ProcessorConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, ProcessorKey)
	}

	return ProcessorConfig{
		Url: processorUrl,
		Key: processorKey,
	}, nil
}

func ReadCookieConfig() CookieConfig {
	cookieSecure, err := strconv.ParseBool(os.Getenv(CookieSecure))
	if err != nil {
		cookieSecure = false
	}

	return CookieConfig{
		Domain: os.Getenv(CookieDomain),
		Secure: cookieSecure,
	}
}
