package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string
	JWTSecret  string

	AuthServiceURL    string
	ProjectServiceURL string
	TaskServiceURL    string
	FrontendURL       string
}

// Load reads configuration for the named service ("projectsvc" or
// "tasksvc"). Both read the same environment keys; only the defaults for
// the database name and listen port differ.
func Load(service string) *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	dbName := "taskboard_projects"
	port := "8081"
	if service == "tasksvc" {
		dbName = "taskboard_tasks"
		port = "8082"
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "taskboard_user"),
		DBPassword: getEnv("DB_PASSWORD", "taskboard_pass"),
		DBName:     getEnv("DB_NAME", dbName),
		ServerPort: getEnv("SERVER_PORT", port),
		JWTSecret:  getEnv("JWT_SECRET", "supersecretkey"),

		AuthServiceURL:    getEnv("AUTH_SERVICE_URL", "http://localhost:8080"),
		ProjectServiceURL: getEnv("PROJECT_SERVICE_URL", "http://localhost:8081"),
		TaskServiceURL:    getEnv("TASK_SERVICE_URL", "http://localhost:8082"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
