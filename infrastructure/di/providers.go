package di

import (
	"context"

	"lifemap-backend/application/ports"
	"lifemap-backend/application/services"
	domainconfig "lifemap-backend/domain/config"
	"lifemap-backend/infrastructure/config"
	"lifemap-backend/infrastructure/geocode"
	"lifemap-backend/infrastructure/persistence/dynamodb"
	"lifemap-backend/pkg/auth"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	DomainConfig    *domainconfig.DomainConfig
	Logger          *zap.Logger
	JWTService      *auth.JWTService
	ContactRepo     ports.ContactRepository
	TimelineRepo    ports.TimelineRepository
	UserRepo        ports.UserRepository
	ContactService  *services.ContactService
	TimelineService *services.TimelineService
	ImportService   *services.ImportService
	AuthService     *services.AuthService
	GeocodeClient   *geocode.Client
}

// ProvideLogger creates a new logger instance at the configured level
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// ProvideDomainConfig loads the domain limits for the environment
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	return domainconfig.LoadDomainConfig(cfg.Environment)
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideJWTService creates the token signer
func ProvideJWTService(cfg *config.Config) (*auth.JWTService, error) {
	secret := cfg.JWTSecret
	if secret == "" && cfg.IsDevelopment() {
		secret = "development-only-secret"
	}
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:  secret,
		Issuer:     cfg.JWTIssuer,
		ExpiryTime: cfg.JWTExpiry,
	})
}

// ProvideContactRepository creates a contact repository
func ProvideContactRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ContactRepository {
	return dynamodb.NewContactRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideTimelineRepository creates a timeline repository
func ProvideTimelineRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.TimelineRepository {
	return dynamodb.NewTimelineRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideUserRepository creates a user repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideContactService creates the contact service
func ProvideContactService(repo ports.ContactRepository, cfg *domainconfig.DomainConfig, logger *zap.Logger) *services.ContactService {
	return services.NewContactService(repo, cfg, logger)
}

// ProvideTimelineService creates the timeline service
func ProvideTimelineService(repo ports.TimelineRepository, cfg *domainconfig.DomainConfig, logger *zap.Logger) *services.TimelineService {
	return services.NewTimelineService(repo, cfg, logger)
}

// ProvideImportService creates the import service
func ProvideImportService(cfg *domainconfig.DomainConfig, logger *zap.Logger) *services.ImportService {
	return services.NewImportService(cfg, logger)
}

// ProvideAuthService creates the auth service
func ProvideAuthService(users ports.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *services.AuthService {
	return services.NewAuthService(users, jwtService, logger)
}

// ProvideGeocodeClient creates the geocoding client
func ProvideGeocodeClient(cfg *config.Config, logger *zap.Logger) *geocode.Client {
	return geocode.NewClient(cfg.GeocodeBaseURL, cfg.GeocodeTimeout, logger)
}
