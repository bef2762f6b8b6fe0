package config

const (
	EnvironmentVariableNotDefined = "%s variable is not defined"

	IsAtRemote = "IS_AT_REMOTE"
	ServerPort = "SERVER_PORT"
	BaseUrl    = "BASE_URL"

	MongodbUri                   = "MONGODB_URI"
	MongodbUsername              = "MONGODB_USERNAME"
	MongodbPassword              = "MONGODB_PASSWORD"
	MongodbDatabase              = "MONGODB_DATABASE"
	MongodbUserCollection        = "MONGODB_USER_COLLECTION"
	MongodbTransactionCollection = "MONGODB_TRANSACTION_COLLECTION"

	JwtPrivateKey = "JWT_PRIVATE_KEY"
	JwtPublicKey  = "JWT_PUBLIC_KEY"

	SmtpHost          = "SMTP_HOST"
	SmtpPort          = "SMTP_PORT"
	SmtpSenderAddress = "SMTP_SENDER_ADDRESS"
	SmtpPassword      = "SMTP_PASSWORD"

	ProcessorUrl = "PROCESSOR_URL"
	ProcessorKey = "PROCESSOR_KEY"

	CookieDomain = "COOKIE_DOMAIN"
	CookieSecure = "COOKIE_SECURE"
)

type Config struct {
	ServerPort string
	BaseUrl    string
	Mongodb    MongodbConfig
	Jwt        JwtConfig
	Smtp       SmtpConfig
	Processor  ProcessorConfig
	Cookie     CookieConfig
}

type MongodbConfig struct {
	Uri         string
	Username    string
	Password    string
	Database    string
	Collections map[string]string
}

type JwtConfig struct {
	PrivateKey []byte
	PublicKey  []byte
}

type SmtpConfig struct {
	Host          string
	Port          int
	SenderAddress string
	Password      string
}

type ProcessorConfig struct {
	Url string
	Key string
}

type CookieConfig struct {
	Domain string
	Secure bool
}
