package main

import (
	"log"

	api "snowmail-backend/cmd/api"
	appdomain "snowmail-backend/internal/application/domain"
	appRepo "snowmail-backend/internal/application/repository"
	appUsecase "snowmail-backend/internal/application/usecase"
	inboxdomain "snowmail-backend/internal/inbox/domain"
	inboxRepo "snowmail-backend/internal/inbox/repository"
	"snowmail-backend/internal/inbox/scheduler"
	inboxUsecase "snowmail-backend/internal/inbox/usecase"
	outreachUsecase "snowmail-backend/internal/outreach/usecase"
	"snowmail-backend/pkg/ai"
	"snowmail-backend/pkg/config"
	"snowmail-backend/pkg/database"
	"snowmail-backend/pkg/imap"
	"snowmail-backend/pkg/smtp"
	"snowmail-backend/pkg/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&appdomain.JobApplication{}, &appdomain.Recruiter{}, &appdomain.UserProfile{}, &inboxdomain.UploadedAttachment{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	applicationRepo := appRepo.NewJobApplicationRepository(db)
	profileRepo := appRepo.NewUserProfileRepository(db)
	ledgerRepo := inboxRepo.NewAttachmentLedgerRepository(db)

	// Initialize attachment storage
	attachmentStore := storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseBucket)

	// Initialize IMAP scanner and SMTP sender
	scanService := imap.NewService(cfg.IMAPHost, cfg.IMAPPort, attachmentStore)
	sender := smtp.NewSender(cfg.SMTPHost, cfg.SMTPPort)

	// Initialize AI service with dynamic Ollama config for runtime updates
	api.InitRuntimeConfig(cfg.OllamaBaseURL, cfg.OllamaModel)
	aiService := ai.NewService(ai.Config{
		Provider:            ai.ProviderAuto,
		OpenAIAPIKey:        cfg.OpenAIAPIKey,
		OpenAIBaseURL:       cfg.OpenAIBaseURL,
		OpenAIModel:         cfg.OpenAIModel,
		OllamaBaseURLGetter: api.GetRuntimeOllamaBaseURL,
		OllamaModelGetter:   api.GetRuntimeOllamaModel,
	})
	if cfg.OpenAIAPIKey != "" {
		log.Println("AI service initialized with OpenAI + Ollama fallback")
	} else {
		log.Println("Warning: OPENAI_API_KEY not set, using Ollama only")
	}

	// Initialize use cases (dependency injection)
	progressUsecaseInstance := appUsecase.NewProgressUsecase(applicationRepo, profileRepo, cfg.EncryptionKey)
	syncUsecaseInstance := inboxUsecase.NewSyncUsecase(scanService, aiService, attachmentStore, ledgerRepo, applicationRepo, profileRepo, progressUsecaseInstance, cfg.EncryptionKey)
	outreachUsecaseInstance := outreachUsecase.NewOutreachUsecase(aiService, sender, profileRepo, progressUsecaseInstance, cfg.EncryptionKey)

	// Start background cleanup of abandoned attachments
	cleanupScheduler := scheduler.NewAttachmentCleanupScheduler(ledgerRepo, attachmentStore, cfg.AttachmentTTL)
	cleanupScheduler.Start()
	defer cleanupScheduler.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(progressUsecaseInstance, syncUsecaseInstance, outreachUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
