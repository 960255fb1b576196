package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Upload backends
const (
	UploadDisk = "disk"
	UploadS3   = "s3"
)

// Reference policies for product category/brand ids
const (
	ReferenceLenient = "lenient"
	ReferenceStrict  = "strict"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Upload    UploadConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Catalog   CatalogConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	LogLevel  string
	ClientURL string
}

func (s ServerConfig) IsDevelopment() bool {
	return s.Env != "production"
}

type DatabaseConfig struct {
	Driver string

	MongoURI      string
	MongoDatabase string

	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

// PostgresDSN builds the pgx connection string.
func (d DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.Schema)
}

type UploadConfig struct {
	Backend      string
	Dir          string
	MaxSize      int64
	PublicPrefix string

	S3Bucket        string
	S3Region        string
	S3PublicBaseURL string
	S3Endpoint      string
	S3AccessKeyID   string
	S3SecretKey     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

type CatalogConfig struct {
	ReferencePolicy string
}

func (c CatalogConfig) Strict() bool {
	return c.ReferencePolicy == ReferenceStrict
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "4000")
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("CLIENT_URL", "http://localhost:3000")

	v.SetDefault("DB_DRIVER", DriverMongo)
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "catalog_admin")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SCHEMA", "public")

	v.SetDefault("UPLOAD_BACKEND", UploadDisk)
	v.SetDefault("UPLOAD_DIR", "public/uploads")
	v.SetDefault("UPLOAD_MAX_SIZE", 2*1024*1024)
	v.SetDefault("UPLOAD_PUBLIC_PREFIX", "/public")
	v.SetDefault("S3_REGION", "us-east-1")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_REQUESTS", 30)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	v.SetDefault("CATALOG_REFERENCE_POLICY", ReferenceLenient)
}

// Load reads .env (if present) into the process environment and builds the
// configuration from environment variables and defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not read .env file: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	policy := strings.ToLower(v.GetString("CATALOG_REFERENCE_POLICY"))
	if policy != ReferenceStrict {
		policy = ReferenceLenient
	}

	return &Config{
		Server: ServerConfig{
			Port:      v.GetString("SERVER_PORT"),
			Env:       v.GetString("SERVER_ENV"),
			LogLevel:  v.GetString("LOG_LEVEL"),
			ClientURL: v.GetString("CLIENT_URL"),
		},
		Database: DatabaseConfig{
			Driver:        strings.ToLower(v.GetString("DB_DRIVER")),
			MongoURI:      v.GetString("MONGODB_URI"),
			MongoDatabase: v.GetString("MONGODB_DATABASE"),
			Host:          v.GetString("DB_HOST"),
			Port:          v.GetString("DB_PORT"),
			User:          v.GetString("DB_USER"),
			Password:      v.GetString("DB_PASSWORD"),
			Database:      v.GetString("DB_DATABASE"),
			Schema:        v.GetString("DB_SCHEMA"),
		},
		Upload: UploadConfig{
			Backend:         strings.ToLower(v.GetString("UPLOAD_BACKEND")),
			Dir:             v.GetString("UPLOAD_DIR"),
			MaxSize:         v.GetInt64("UPLOAD_MAX_SIZE"),
			PublicPrefix:    strings.TrimRight(v.GetString("UPLOAD_PUBLIC_PREFIX"), "/"),
			S3Bucket:        v.GetString("S3_BUCKET"),
			S3Region:        v.GetString("S3_REGION"),
			S3PublicBaseURL: strings.TrimRight(v.GetString("S3_PUBLIC_BASE_URL"), "/"),
			S3Endpoint:      v.GetString("S3_ENDPOINT"),
			S3AccessKeyID:   v.GetString("S3_ACCESS_KEY_ID"),
			S3SecretKey:     v.GetString("S3_SECRET_ACCESS_KEY"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:  v.GetBool("RATE_LIMIT_ENABLED"),
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   time.Duration(v.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
		Catalog: CatalogConfig{
			ReferencePolicy: policy,
		},
	}
}
