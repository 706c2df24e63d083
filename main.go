package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"health-assistant/internal/config"
	"health-assistant/internal/domain/entities"
	repo "health-assistant/internal/domain/interfaces/repository"
	Iservices "health-assistant/internal/domain/interfaces/services"
	"health-assistant/internal/infra/handlers"
	"health-assistant/internal/infra/logger"
	"health-assistant/internal/infra/provider"
	"health-assistant/internal/infra/repository"
	"health-assistant/internal/infra/routes"
	"health-assistant/internal/infra/services"
	"health-assistant/internal/middleware"
	client "health-assistant/internal/pkg"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
)

// newRepository returns a Mongo-backed repository when db is set, otherwise
// an in-memory one keyed by idOf.
func newRepository[T any](db *mongo.Database, idOf func(T) string) repo.Repository[T] {
	if db != nil {
		return repository.NewMongoRepository[T](db)
	}
	return repository.NewMemoryRepository(idOf)
}

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	log := logger.NewLogger(ctx, cfg.LogLevel, cfg.LogJSON)

	var db *mongo.Database
	if cfg.StoreDriver == "mongo" {
		mongoClient, err := client.MongoClient(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatal(fmt.Sprintf("Error connecting to MongoDB: %v", err))
		}
		defer mongoClient.Disconnect(context.Background())
		db = mongoClient.Database(cfg.MongoDatabase)
	} else {
		log.Warn("Using in-memory store, data is lost on restart")
	}

	profileRepo := newRepository(db, func(p entities.UserProfile) string { return p.Email })
	appointmentRepo := newRepository(db, func(a entities.Appointment) string { return a.ID })
	prescriptionRepo := newRepository(db, func(p entities.Prescription) string { return p.ID })
	notificationRepo := newRepository(db, func(n entities.Notification) string { return n.ID })
	phoneRepo := newRepository(db, func(p entities.PhoneAppointment) string { return p.ID })

	openaiClient := provider.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	reasoning := provider.NewOpenAIReasoningProvider(log, openaiClient, provider.OpenAIOptions{
		AnalysisModel:      cfg.AnalysisModel,
		TranslationModel:   cfg.TranslationModel,
		TranscriptionModel: cfg.TranscriptionModel,
		Timeout:            cfg.ReasoningTimeout,
		Retries:            cfg.ReasoningRetries,
	})

	var speechEngine provider.ISpeechEngine = provider.NewBrowserSpeechEngine()
	if cfg.SpeechEngine == "openai" {
		speechEngine = provider.NewOpenAISpeechEngine(log, openaiClient, cfg.SpeechModel, cfg.SpeechVoice)
	}

	var emailRelay, emailFallback provider.IEmailSender
	var smsRelay provider.ISMSSender
	if cfg.EmailRelayURL != "" {
		emailRelay = provider.NewEmailRelayProvider(log, cfg.EmailRelayURL, cfg.NotifyTimeout)
	}
	if cfg.EmailJSServiceID != "" {
		emailFallback = provider.NewEmailJSProvider(log, provider.EmailJSOptions{
			URL:        cfg.EmailJSURL,
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
			PrivateKey: cfg.EmailJSPrivateKey,
			Timeout:    cfg.NotifyTimeout,
		})
	}
	if cfg.SMSRelayURL != "" {
		smsRelay = provider.NewSMSRelayProvider(log, cfg.SMSRelayURL, cfg.NotifyTimeout)
	}

	tokens := services.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	dispatcher := services.NewNotificationDispatcher(log, emailRelay, emailFallback, smsRelay, cfg.NotifyTimeout)

	var profileSvc Iservices.IProfileService = services.NewProfileService(profileRepo, tokens, log)
	var sessionSvc Iservices.ISessionService = services.NewSessionService(log, profileSvc, services.NewAnalysisOrchestrator(log, reasoning), speechEngine)
	var translationSvc Iservices.ITranslationService = services.NewTranslationService(log, reasoning, speechEngine)
	notificationCenter := services.NewNotificationCenter(notificationRepo, log)
	appointmentSvc := services.NewAppointmentService(appointmentRepo, profileSvc, notificationCenter, dispatcher, log)
	prescriptionSvc := services.NewPrescriptionService(prescriptionRepo, appointmentSvc, profileSvc, notificationCenter, dispatcher, log)
	phoneSvc := services.NewPhoneAppointmentService(phoneRepo, log, cfg.VoiceAgentPhone, cfg.VoiceAgentAssistantID)

	router := mux.NewRouter()
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggingMiddleware(log))

	routes := routes.NewRoutes(
		router,
		tokens,
		handlers.NewProfileHandlers(log, profileSvc),
		handlers.NewSessionHandlers(log, sessionSvc),
		handlers.NewTranslationHandlers(log, translationSvc, sessionSvc),
		handlers.NewCareHandlers(log, appointmentSvc, prescriptionSvc, notificationCenter),
		handlers.NewVoiceAgentHandlers(log, phoneSvc),
	)

	routes.Init()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: corsHandler.Handler(router),
	}

	reminders := services.NewReminderWorker(appointmentSvc, profileSvc, notificationCenter, dispatcher, log, cfg.ReminderInterval, cfg.ReminderLead)
	go reminders.Run(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}
}
