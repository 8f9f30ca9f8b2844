package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
	CloudinaryURL string
	CORSOrigin    string
	Port          string
}

func loadConfig() Config {
	_ = godotenv.Load() // .env is optional in prod

	cfg := Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		CORSOrigin:    getenv("CORS_ORIGIN", "http://localhost:3000"),
		Port:          getenv("PORT", "8080"),
	}

	for k, v := range map[string]string{
		"DATABASE_URL":   cfg.DatabaseURL,
		"JWT_SECRET":     cfg.JWTSecret,
		"ADMIN_EMAIL":    cfg.AdminEmail,
		"ADMIN_PASSWORD": cfg.AdminPassword,
	} {
		if v == "" {
			log.Fatalf("missing required env %s", k)
		}
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
