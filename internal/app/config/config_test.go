package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DefaultValues(t *testing.T) {
	os.Clearenv()

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "medtriage", cfg.Database.Database)
	assert.Equal(t, "postgres", cfg.Database.Username)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 0, cfg.Redis.Database)

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "medtriage_history", cfg.MongoDB.Database)

	assert.Equal(t, 2, cfg.Queue.DoctorsPerDepartment)
	assert.Equal(t, 10, cfg.Queue.AvgConsultationMinutes)

	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Groq.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Groq.Model)

	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestNewConfig_EnvironmentVariables(t *testing.T) {
	os.Clearenv()
	os.Setenv("SERVER_PORT", "8080")
	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_NAME", "test-db")
	os.Setenv("REDIS_HOST", "test-redis")
	os.Setenv("QUEUE_DOCTORS_PER_DEPARTMENT", "4")
	os.Setenv("GROQ_MODEL", "llama-3.1-8b-instant")
	defer os.Clearenv()

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, "test-db", cfg.Database.Database)
	assert.Equal(t, "test-redis", cfg.Redis.Host)
	assert.Equal(t, 4, cfg.Queue.DoctorsPerDepartment)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Groq.Model)
}

func TestNewConfig_InvalidEnvironment(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "staging")
	defer os.Clearenv()

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environnement non supporté")
}

func TestNewConfig_DockerRequiresSecrets(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "docker")
	defer os.Clearenv()

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "STAFF_TOKEN_HASH")
}

func TestNewConfig_InvalidQueueParams(t *testing.T) {
	os.Clearenv()
	os.Setenv("QUEUE_DOCTORS_PER_DEPARTMENT", "0")
	defer os.Clearenv()

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUEUE_DOCTORS_PER_DEPARTMENT")
}
