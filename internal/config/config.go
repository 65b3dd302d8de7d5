package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Backend    BackendConfig
	Viewer     ViewerConfig
	Generation GenerationConfig
	Upload     UploadConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
}

type BackendConfig struct {
	BaseURL        string
	MaxResults     int
	RequestTimeout int // seconds
}

type ViewerConfig struct {
	EmbedAPIClientID string
	DefaultZoom      int // percent, applied when jumping to a focus hint
}

type GenerationConfig struct {
	InsightTypes []string
	AudioTypes   []string
	Voice        string
}

type UploadConfig struct {
	MaxFiles    int
	MaxFileSize int64 // bytes
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "workspace.log"),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_URL", "http://localhost:8080"),
			MaxResults:     getEnvAsInt("SEARCH_MAX_RESULTS", 5),
			RequestTimeout: getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 120),
		},
		Viewer: ViewerConfig{
			EmbedAPIClientID: getEnv("PDF_EMBED_API_CLIENT_ID", ""),
			DefaultZoom:      getEnvAsInt("VIEWER_DEFAULT_ZOOM", 100),
		},
		Generation: GenerationConfig{
			InsightTypes: getEnvAsList("INSIGHT_TYPES", "comprehensive,takeaways,examples,contradictions"),
			AudioTypes:   getEnvAsList("AUDIO_OVERVIEW_TYPES", "overview,podcast"),
			Voice:        getEnv("AUDIO_VOICE", "alloy"),
		},
		Upload: UploadConfig{
			MaxFiles:    getEnvAsInt("UPLOAD_MAX_FILES", 3),
			MaxFileSize: int64(getEnvAsInt("UPLOAD_MAX_FILE_SIZE", 2*1024*1024)),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
