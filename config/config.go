package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	// DebugMode indicates service mode is debug.
	DebugMode = "debug"
	// TestMode indicates service mode is test.
	TestMode = "test"
	// ReleaseMode indicates service mode is release.
	ReleaseMode = "release"
)

// DatasetFileName is the name every uploaded or fetched dataset is stored under.
const DatasetFileName = "user_data.csv"

// RulesFileName is the JSON file the latest submitted payload is mirrored to.
const RulesFileName = "submitted_data.json"

type Config struct {
	ServiceName string
	HTTPPort    string

	Environment string // debug, test, release
	Version     string

	DBPath    string
	UploadDir string
	OutputDir string

	ProfileWorkers int

	// client side
	ServerURL   string
	DownloadDir string
}

// Load ...
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found")
	}

	config := Config{}

	config.ServiceName = cast.ToString(getOrReturnDefaultValue("SERVICE_NAME", "column-rules"))
	config.HTTPPort = cast.ToString(getOrReturnDefaultValue("HTTP_PORT", ":8080"))

	config.Environment = cast.ToString(getOrReturnDefaultValue("ENVIRONMENT", DebugMode))
	config.Version = cast.ToString(getOrReturnDefaultValue("VERSION", "1.0"))

	config.DBPath = cast.ToString(getOrReturnDefaultValue("DB_PATH", "rules.db"))
	config.UploadDir = cast.ToString(getOrReturnDefaultValue("UPLOAD_DIR", "uploads"))
	config.OutputDir = cast.ToString(getOrReturnDefaultValue("OUTPUT_DIR", "output"))

	config.ProfileWorkers = cast.ToInt(getOrReturnDefaultValue("PROFILE_WORKERS", 4))

	config.ServerURL = cast.ToString(getOrReturnDefaultValue("SERVER_URL", "http://localhost:8080"))
	config.DownloadDir = cast.ToString(getOrReturnDefaultValue("DOWNLOAD_DIR", "."))

	return config
}

// LogLevel maps the environment onto a logger level name.
func (c Config) LogLevel() string {
	switch c.Environment {
	case DebugMode, TestMode:
		return "debug"
	default:
		return "info"
	}
}

func getOrReturnDefaultValue(key string, defaultValue interface{}) interface{} {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return defaultValue
}
