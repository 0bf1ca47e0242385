package app

import (
	"strings"

	"github.com/librisapp/library-backend/internal/logger"
	"github.com/librisapp/library-backend/internal/utils"
)

type Config struct {
	Port        string
	CORSOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	rawOrigins := utils.GetEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173", log)

	origins := make([]string, 0)
	for _, origin := range strings.Split(rawOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	return Config{
		Port:        port,
		CORSOrigins: origins,
	}
}
