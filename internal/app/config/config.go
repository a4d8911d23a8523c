package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"medtriage-core/internal/infrastructure/database/mongodb"
	"medtriage-core/internal/infrastructure/database/postgres"
	"medtriage-core/internal/infrastructure/database/redis"

	"github.com/joho/godotenv"
)

// Uniquement variables d'environnement

// Config structure unifiée
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	MongoDB     MongoConfig
	Queue       QueueConfig
	Groq        GroqConfig
	Staff       StaffConfig
	Logging     LoggingConfig
	CORS        CORSConfig
}

// ServerConfig configuration serveur HTTP
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST"`
	Port         int           `env:"SERVER_PORT"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT"`
}

// DatabaseConfig configuration PostgreSQL
type DatabaseConfig struct {
	Host           string        `env:"DB_HOST"`
	Port           int           `env:"DB_PORT"`
	Database       string        `env:"DB_NAME"`
	Username       string        `env:"DB_USERNAME"`
	Password       string        `env:"DB_PASSWORD"`
	MaxConnections int           `env:"DB_MAX_CONNECTIONS"`
	QueryTimeout   time.Duration `env:"DB_QUERY_TIMEOUT"`
	SSLMode        string        `env:"DB_SSL_MODE"`
}

// RedisConfig configuration Redis
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     int    `env:"REDIS_PORT"`
	Password string `env:"REDIS_PASSWORD"`
	Database int    `env:"REDIS_DATABASE"`
}

// MongoConfig configuration MongoDB
type MongoConfig struct {
	URI            string        `env:"MONGODB_URI"`
	Database       string        `env:"MONGODB_DATABASE"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT"`
}

// QueueConfig paramètres des files d'attente
type QueueConfig struct {
	DoctorsPerDepartment   int `env:"QUEUE_DOCTORS_PER_DEPARTMENT"`
	AvgConsultationMinutes int `env:"QUEUE_AVG_CONSULTATION_MINUTES"`
}

// GroqConfig configuration de l'API Groq pour la synthèse EHR
type GroqConfig struct {
	APIKey  string        `env:"GROQ_API_KEY"`
	BaseURL string        `env:"GROQ_BASE_URL"`
	Model   string        `env:"GROQ_MODEL"`
	Timeout time.Duration `env:"GROQ_TIMEOUT"`
}

// StaffConfig protection des opérations staff (retrait de file, transitions d'état)
type StaffConfig struct {
	TokenHash string `env:"STAFF_TOKEN_HASH"` // hash bcrypt du jeton X-Staff-Token
}

// LoggingConfig configuration logging
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL"`
}

// CORSConfig configuration CORS
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int      `env:"CORS_MAX_AGE"`
}

// NewConfig charge la configuration depuis les variables d'environnement uniquement
func NewConfig() (*Config, error) {
	// Charger le fichier .env (optionnel)
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("[CONFIG] Warning: Fichier .env non trouvé: %v\n", err)
	}

	config := &Config{}

	// Déterminer environnement
	config.Environment = getEnv("APP_ENV", "development")

	// Charger configuration serveur
	config.Server = ServerConfig{
		Host:         getEnv("SERVER_HOST", "localhost"),
		Port:         getEnvInt("SERVER_PORT", 5000),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30) * time.Second,
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30) * time.Second,
	}

	// Charger configuration database
	config.Database = DatabaseConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           getEnvInt("DB_PORT", 5432),
		Database:       getEnv("DB_NAME", "medtriage"),
		Username:       getEnv("DB_USERNAME", "postgres"),
		Password:       getEnv("DB_PASSWORD", ""),
		MaxConnections: getEnvInt("DB_MAX_CONNECTIONS", 10),
		QueryTimeout:   getEnvDuration("DB_QUERY_TIMEOUT", 30) * time.Second,
		SSLMode:        getEnv("DB_SSL_MODE", "disable"),
	}

	// Charger configuration Redis
	config.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnvInt("REDIS_PORT", 6379),
		Password: getEnv("REDIS_PASSWORD", ""),
		Database: getEnvInt("REDIS_DATABASE", 0),
	}

	// Charger configuration MongoDB
	config.MongoDB = MongoConfig{
		URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database:       getEnv("MONGODB_DATABASE", "medtriage_history"),
		ConnectTimeout: getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10) * time.Second,
	}

	// Charger paramètres des files d'attente
	config.Queue = QueueConfig{
		DoctorsPerDepartment:   getEnvInt("QUEUE_DOCTORS_PER_DEPARTMENT", 2),
		AvgConsultationMinutes: getEnvInt("QUEUE_AVG_CONSULTATION_MINUTES", 10),
	}

	// Charger configuration Groq (optionnelle : fallback règles si absente)
	config.Groq = GroqConfig{
		APIKey:  getEnv("GROQ_API_KEY", ""),
		BaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		Model:   getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		Timeout: getEnvDuration("GROQ_TIMEOUT", 60) * time.Second,
	}

	// Charger configuration staff
	config.Staff = StaffConfig{
		TokenHash: getEnv("STAFF_TOKEN_HASH", ""),
	}

	// Charger configuration logging
	config.Logging = LoggingConfig{
		Level: getEnv("LOG_LEVEL", "debug"),
	}

	// Charger configuration CORS
	config.CORS = CORSConfig{
		AllowedOrigins:   getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		AllowedMethods:   getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:   getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization", "X-Staff-Token"}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
	}

	// Validation configuration critique
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("validation configuration échouée: %w", err)
	}

	fmt.Printf("[CONFIG] ✅ Configuration chargée pour environnement: %s\n", config.Environment)
	return config, nil
}

// Getters pour accès externe
// IsDevelopment indique si l'application tourne en environnement de développement
func (c *Config) IsDevelopment() bool { return c.Environment == "development" }

func (c *Config) GetDatabase() DatabaseConfig { return c.Database }
func (c *Config) GetRedis() RedisConfig       { return c.Redis }
func (c *Config) GetMongoDB() MongoConfig     { return c.MongoDB }
func (c *Config) GetServer() ServerConfig     { return c.Server }
func (c *Config) GetQueue() QueueConfig       { return c.Queue }
func (c *Config) GetGroq() GroqConfig         { return c.Groq }
func (c *Config) GetCORS() CORSConfig         { return c.CORS }

// Providers pour database ConfigProvider
func NewDatabaseConfigProvider(config *Config) *DatabaseConfigProvider {
	return &DatabaseConfigProvider{
		Database: DatabaseConfig(config.Database),
		Redis:    RedisConfig(config.Redis),
		MongoDB:  MongoConfig(config.MongoDB),
	}
}

type DatabaseConfigProvider struct {
	Database DatabaseConfig
	Redis    RedisConfig
	MongoDB  MongoConfig
}

// Convertisseurs vers configurations infrastructure
func NewPostgresConfig(config *DatabaseConfigProvider) *postgres.DatabaseConfig {
	return &postgres.DatabaseConfig{
		Host:     config.Database.Host,
		Port:     config.Database.Port,
		Database: config.Database.Database,
		Username: config.Database.Username,
		Password: config.Database.Password,
		SSLMode:  config.Database.SSLMode,
	}
}

func NewRedisConfig(config *DatabaseConfigProvider) *redis.RedisConfig {
	return &redis.RedisConfig{
		Host:     config.Redis.Host,
		Port:     config.Redis.Port,
		Password: config.Redis.Password,
		Database: config.Redis.Database,
	}
}

func NewMongoConfig(config *DatabaseConfigProvider) *mongodb.MongoConfig {
	return &mongodb.MongoConfig{
		URI:      config.MongoDB.URI,
		Database: config.MongoDB.Database,
	}
}

// Helpers pour parsing variables d'environnement
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds))
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// validateConfig valide la configuration selon l'environnement
func validateConfig(config *Config) error {
	env := config.Environment

	// Validation environnements supportés
	if env != "development" && env != "docker" {
		return fmt.Errorf("environnement non supporté: %s (utilisez 'development' ou 'docker')", env)
	}

	if config.Queue.DoctorsPerDepartment < 1 {
		return fmt.Errorf("QUEUE_DOCTORS_PER_DEPARTMENT doit être >= 1")
	}
	if config.Queue.AvgConsultationMinutes < 1 {
		return fmt.Errorf("QUEUE_AVG_CONSULTATION_MINUTES doit être >= 1")
	}

	missingVars := []string{}

	// Variables critiques en mode docker (production/staging)
	if env == "docker" {
		if config.Database.Password == "" {
			missingVars = append(missingVars, "DB_PASSWORD")
		}
		if config.Staff.TokenHash == "" {
			missingVars = append(missingVars, "STAFF_TOKEN_HASH")
		}

		// Warning pour variables recommandées en docker
		if config.Groq.APIKey == "" {
			fmt.Printf("[CONFIG] ⚠️ GROQ_API_KEY non défini - extraction EHR par règles uniquement\n")
		}
		if config.Redis.Password == "" {
			fmt.Printf("[CONFIG] ⚠️ REDIS_PASSWORD non défini pour environnement docker\n")
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("variables critiques manquantes pour environnement docker: %v", missingVars)
	}

	return nil
}
