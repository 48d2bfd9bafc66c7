package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/akhand-data/akhanddatabackend/config"
	"github.com/akhand-data/akhanddatabackend/database"
	"github.com/akhand-data/akhanddatabackend/handlers"
	"github.com/akhand-data/akhanddatabackend/imagehost"
	"github.com/akhand-data/akhanddatabackend/models"
	"github.com/akhand-data/akhanddatabackend/repository"
	"github.com/akhand-data/akhanddatabackend/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to get sql.DB handle: %v", err)
	}

	batchRepo := repository.NewBatchRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	if err := bootstrapOperator(userRepo, cfg); err != nil {
		log.Fatalf("FATAL: Failed to bootstrap operator account: %v", err)
	}

	ingestionService := services.NewIngestionService(batchRepo, recordRepo)
	statsService := services.NewStatsService(sqlDB)
	exportService := services.NewExportService(batchRepo, recordRepo)
	imageClient := imagehost.NewClient(cfg.ImgBBAPIKey)

	log.Printf("Using database: %s", cfg.DatabasePath)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	authHandler := handlers.NewAuthHandler(userRepo, cfg)
	batchHandler := &handlers.BatchHandler{BatchRepo: batchRepo, RecordRepo: recordRepo, Exporter: exportService}
	recordHandler := &handlers.RecordHandler{RecordRepo: recordRepo}
	searchHandler := &handlers.SearchHandler{RecordRepo: recordRepo}
	statsHandler := &handlers.StatsHandler{Stats: statsService}
	ingestHandler := &handlers.IngestHandler{Ingestor: ingestionService, MaxUploadBytes: cfg.MaxUploadBytes}
	imageHandler := &handlers.ImageHandler{Uploader: imageClient, MaxUploadBytes: cfg.MaxUploadBytes}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(handlers.AuthMiddleware(userRepo, cfg.JWTSecret))

			r.Post("/ingest", ingestHandler.IngestFiles)

			r.Route("/batches", func(r chi.Router) {
				r.Post("/", batchHandler.CreateBatch)
				r.Get("/", batchHandler.ListBatches)
				r.Route("/{batch_id}", func(r chi.Router) {
					r.Get("/", batchHandler.GetBatch)
					r.Delete("/", batchHandler.DeleteBatch)
					r.Get("/records", batchHandler.ListBatchRecords)
					r.Get("/files", batchHandler.ListBatchFiles)
					r.Delete("/files/{file_name}", batchHandler.DeleteBatchFile)
					r.Get("/export", batchHandler.ExportBatch)
				})
			})

			r.Route("/records", func(r chi.Router) {
				r.Post("/", recordHandler.CreateRecord)
				r.Get("/", recordHandler.ListRecords)
				r.Route("/{record_id}", func(r chi.Router) {
					r.Get("/", recordHandler.GetRecord)
					r.Put("/", recordHandler.UpdateRecord)
					r.Delete("/", recordHandler.DeleteRecord)
					r.Put("/relationship", recordHandler.SetRelationship)
				})
			})

			r.Get("/search", searchHandler.SearchRecords)

			r.Route("/stats", func(r chi.Router) {
				r.Get("/overview", statsHandler.Overview)
				r.Get("/occupations", statsHandler.Occupations)
				r.Get("/relationships", statsHandler.Relationships)
				r.Get("/batches", statsHandler.BatchCounts)
				r.Get("/relationship-pivot", statsHandler.RelationshipPivot)
			})

			r.Post("/images", imageHandler.UploadImage)
		})
	})

	serverAddr := ":" + cfg.Port
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

// bootstrapOperator creates the single operator account on first run. The
// system is single-tenant; there is no registration endpoint.
func bootstrapOperator(userRepo repository.UserRepositoryInterface, cfg config.Config) error {
	count, err := userRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	user := &models.User{Username: cfg.AdminUsername}
	if err := user.SetPassword(cfg.AdminPassword); err != nil {
		return err
	}
	if err := userRepo.Create(user); err != nil {
		return err
	}
	log.Printf("Created operator account %q", cfg.AdminUsername)
	return nil
}
