package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" o "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	UploadsDir    string `json:"uploads_dir"`
	MaxFileSizeMB int64  `json:"max_file_size_mb"`

	// Intervalo del job de semáforos, en minutos (default: 60).
	SemaforoIntervaloMin int    `json:"semaforo_intervalo_min"`
	EmailAdmin           string `json:"email_admin"`

	// RedisAddr vacío desactiva el rate limit.
	RedisAddr     string `json:"redis_addr"`
	RateLimitMax  int    `json:"rate_limit_max"`
	RateWindowSec int    `json:"rate_window_sec"`

	Security struct {
		JwtSecret          string `json:"jwt_secret"`
		AccessTokenMinutes int    `json:"access_token_minutes"`
		RefreshTokenDays   int    `json:"refresh_token_days"`
		MaxIntentosLogin   int    `json:"max_intentos_login"`
		BloqueoMinutos     int    `json:"bloqueo_minutos"`
	} `json:"security"`
}

func Get(path string) Configuration {
	var c Configuration

	if b, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(b, &c); err != nil {
			log.Fatal(err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatal(err)
	}

	// defaults para no arrancar con ceros
	if c.ApiPort == "" {
		c.ApiPort = getenv("PORT", "8080")
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = getenv("DATABASE", "sqlite3")
	}
	if c.UploadsDir == "" {
		c.UploadsDir = getenv("UPLOADS_DIR", "uploads")
	}
	if c.MaxFileSizeMB <= 0 {
		c.MaxFileSizeMB = 50
	}
	if c.SemaforoIntervaloMin <= 0 {
		c.SemaforoIntervaloMin = 60
	}
	if c.EmailAdmin == "" {
		c.EmailAdmin = getenv("EMAIL_ADMIN", "admin@gobierno.gob.mx")
	}
	if c.RateLimitMax <= 0 {
		c.RateLimitMax = 300
	}
	if c.RateWindowSec <= 0 {
		c.RateWindowSec = 15 * 60
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = getenv("JWT_SECRET", "CHANGE_ME")
	}
	if c.Security.AccessTokenMinutes <= 0 {
		c.Security.AccessTokenMinutes = 60
	}
	if c.Security.RefreshTokenDays <= 0 {
		c.Security.RefreshTokenDays = 30
	}
	if c.Security.MaxIntentosLogin <= 0 {
		c.Security.MaxIntentosLogin = 5
	}
	if c.Security.BloqueoMinutos <= 0 {
		c.Security.BloqueoMinutos = 15
	}

	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
