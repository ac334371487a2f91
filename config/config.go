package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port        string
	Timezone    string
	DBPath      string
	JWTSecret   string
	StageTickAt string // "HH:MM" local to Timezone
	TaskTickAt  string
	CatalogPath string // optional species catalog spreadsheet
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:        get("PORT", "8080"),
		Timezone:    get("TZ", "America/Bogota"),
		DBPath:      get("DB_PATH", "cultivapp.db"),
		JWTSecret:   get("JWT_SECRET", "dev-secret-change-me"),
		StageTickAt: get("STAGE_TICK", "01:00"),
		TaskTickAt:  get("TASK_TICK", "01:10"),
		CatalogPath: get("CATALOG_PATH", ""),
	}
	log.Printf("[cfg] port=%s tz=%s db=%s stage_tick=%s task_tick=%s", cfg.Port, cfg.Timezone, cfg.DBPath, cfg.StageTickAt, cfg.TaskTickAt)
	return cfg
}
