package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frechnel/shop-api/app/api"
	"github.com/frechnel/shop-api/app/auth"
	"github.com/frechnel/shop-api/app/catalog"
	"github.com/frechnel/shop-api/app/categories"
	"github.com/frechnel/shop-api/app/media"
	"github.com/frechnel/shop-api/app/newsletter"
	"github.com/frechnel/shop-api/models"
)

func main() {
	cfg := loadConfig()

	db, err := openDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[DB] connect failed: %v", err)
	}
	log.Println("[DB] connected")

	if err := db.AutoMigrate(&models.Admin{}, &models.Category{}, &models.Product{}, &models.Subscriber{}); err != nil {
		log.Fatalf("[DB] migrate failed: %v", err)
	}

	admins := models.NewAdminsRepository(db)
	if err := seedAdmin(admins, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	var images media.Store = media.DisabledStore{}
	if cfg.CloudinaryURL != "" {
		cld, err := media.NewCloudinaryStore(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("cloudinary init: %v", err)
		}
		images = cld
	} else {
		log.Println("CLOUDINARY_URL not set: image file uploads disabled")
	}

	tokens := auth.NewTokens(cfg.JWTSecret)
	authHandler := auth.NewAuthHandler(admins, tokens)
	categoriesRepo := models.NewCategoriesRepository(db)
	categoryHandler := categories.NewCategoryHandler(categoriesRepo)
	catalogHandler := catalog.NewCatalogHandler(models.NewProductsRepository(db), categoriesRepo, images)
	newsletterHandler := newsletter.NewNewsletterHandler(models.NewSubscribersRepository(db))

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(cfg.CORSOrigin),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Post("/auth/login", authHandler.HandleLogin)
	r.Get("/categories", categoryHandler.HandleGetAll)
	r.Get("/products", catalogHandler.HandleList)
	r.Get("/products/{id}", catalogHandler.HandleGet)
	r.Get("/newsletter", newsletterHandler.HandleList)
	r.Post("/newsletter", newsletterHandler.HandleSubscribe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// Admin-only routes
	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireAdmin)
		r.Post("/categories", categoryHandler.HandleCreate)
		r.Put("/categories/{id}", categoryHandler.HandleUpdate)
		r.Delete("/categories/{id}", categoryHandler.HandleDelete)
		r.Post("/products", catalogHandler.HandleCreate)
		r.Put("/products/{id}", catalogHandler.HandleUpdate)
		r.Delete("/products/{id}", catalogHandler.HandleDelete)
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Println("API listening on", addr)
	log.Fatal(srv.ListenAndServe())
}

func openDB(dsn string) (*gorm.DB, error) {
	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold: 1500 * time.Millisecond,
			LogLevel:      logger.Warn,
		},
	)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gLogger,
		TranslateError: true,
	})
}

// seedAdmin makes sure the configured back-office credential exists,
// hashing the password the same way the shop's original seed did.
func seedAdmin(admins *models.AdminsRepository, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return admins.EnsureSeed(email, string(hash))
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, p := range strings.Split(raw, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
