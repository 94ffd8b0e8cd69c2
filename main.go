package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"outreach/config"
	"outreach/cron"
	"outreach/database"
	userRepo "outreach/database/repository/user"
	"outreach/handlers"
	"outreach/middleware"
	"outreach/routes"
	"outreach/services/conversation"
	ai "outreach/services/intelligence"
	"outreach/services/mailer"
	"outreach/services/pagespeed"
	"outreach/services/scheduling"
	"outreach/services/speech"
	"outreach/services/tasks"
	"outreach/services/whatsapp"
	"outreach/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	dedupeTTL        = 24 * time.Hour
	meetingSubject   = "Intro call"
	adminSlotMinutes = 60
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig
	loc := config.Location()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	database.InitDB()
	utils.InitCache()

	if err := middleware.RegisterValidators(); err != nil {
		logger.Sugar().Fatalf("main: failed to register validators: %v", err)
	}

	// repositories.
	users, err := userRepo.NewMongoUserRepo(database.Database(), cfg.HistoryLimit)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize user repository: %v", err)
	}

	// external services.
	gateway, err := whatsapp.NewClient(whatsapp.Config{
		APIURL:        cfg.GreenAPIURL,
		IDInstance:    cfg.GreenAPIIDInstance,
		TokenInstance: cfg.GreenAPITokenInstance,
	}, logger.Named("greenapi"))
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize GreenAPI client: %v", err)
	}

	calendar, err := scheduling.NewGoogleCalendar(ctx, cfg.GoogleServiceAccountFile, cfg.TimeZone, cfg.GoogleMeetLinks)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Google Calendar: %v", err)
	}
	schedulingService := scheduling.NewSchedulingService(calendar, cfg.GoogleCalendarID, loc, logger.Named("scheduling"))

	pageSpeedService := pagespeed.NewService(pagespeed.NewClient(cfg.PageSpeedAPIKey), utils.GetCacheClient(), logger.Named("pagespeed"))

	model, closeModel, err := newChatModel(ctx, cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize language model: %v", err)
	}
	defer closeModel()

	// assistant tools.
	toolRegistry := ai.NewToolRegistry(
		ai.PageSpeedTool(pageSpeedService),
		ai.AvailableSlotsTool(schedulingService, loc, cfg.MeetingDurationMinutes, time.Now),
	)
	if inviteSender, err := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	}, logger.Named("mailer")); err != nil {
		logger.Warn("Meeting invites disabled", zap.Error(err))
	} else {
		toolRegistry.Register(ai.MeetingInviteTool(ai.MeetingDeps{
			Sender:          inviteSender,
			Slots:           schedulingService,
			Events:          schedulingService,
			Users:           users,
			SenderEmail:     cfg.SenderEmail,
			SenderName:      cfg.SenderName,
			Subject:         meetingSubject,
			DurationMinutes: cfg.MeetingDurationMinutes,
			Location:        loc,
			Now:             time.Now,
			Logger:          logger.Named("invite"),
		}))
	}

	assistant, err := ai.NewAssistant(model, toolRegistry,
		ai.WithPromptWindow(cfg.PromptWindow),
		ai.WithLocation(loc),
		ai.WithLogger(logger.Named("assistant")),
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize assistant: %v", err)
	}

	// delayed welcome messages.
	queueClient := asynq.NewClient(cron.QueueRedisOpt())
	defer queueClient.Close()
	worker := cron.InitWelcomeWorker(ctx, gateway, logger.Named("worker"))

	conversationService, err := conversation.NewConversationService(users, gateway, assistant, logger.Named("conversation"))
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize conversation service: %v", err)
	}
	conversationService.Dedupe = utils.NewDeduper(utils.GetCacheClient(), "whatsapp:seen:", dedupeTTL)
	conversationService.Welcome = tasks.NewWelcomeScheduler(queueClient, time.Duration(cfg.WelcomeDelayMinutes)*time.Minute)

	transcriber, err := speech.NewGoogleTranscriber(ctx, cfg.GoogleServiceAccountFile, cfg.SpeechLanguage)
	if err != nil {
		logger.Warn("Voice notes disabled", zap.Error(err))
	} else {
		defer transcriber.Close()
		conversationService.Transcriber = transcriber
	}

	// inbound WhatsApp: webhook by default, queue polling when configured.
	if cfg.GreenAPIPolling {
		poller := whatsapp.NewPoller(gateway, conversationService.HandleNotification, logger.Named("poller"))
		go poller.Run(ctx)
	} else if cfg.GreenAPIWebhookURL != "" {
		setCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := gateway.SetSettings(setCtx, whatsapp.WebhookSettings(cfg.GreenAPIWebhookURL, cfg.GreenAPIWebhookToken)); err != nil {
			logger.Warn("Failed to register GreenAPI webhook", zap.Error(err))
		}
		cancel()
	}

	queueRedis := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	})
	defer queueRedis.Close()
	utils.StartHealthMonitor(ctx, []*redis.Client{utils.GetCacheClient(), queueRedis}, database.MongoClient)

	// handlers.
	webhookHandler := handlers.NewWebhookHandler(conversationService)
	leadHandler := handlers.NewLeadHandler(conversationService)
	calendarHandler := handlers.NewCalendarHandler(schedulingService, loc, adminSlotMinutes)
	adminHandler := handlers.NewAdminHandler(cfg.AdminPasswordHash, []byte(cfg.JWTSecret))

	handlerBundle := &handlers.HandlerBundle{
		AdminSecret:  []byte(cfg.JWTSecret),
		WebhookToken: cfg.GreenAPIWebhookToken,

		WebhookHandler: webhookHandler.ReceiveHandler,

		SubmitDetailsHandler:   leadHandler.SubmitDetailsHandler,
		ScheduleMessageHandler: leadHandler.ScheduleMessageHandler,

		AdminLoginHandler: adminHandler.LoginHandler,
		FreeSlotsHandler:  calendarHandler.FreeSlotsHandler,
		BookHandler:       calendarHandler.BookHandler,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger.Named("http")))
	routes.RegisterRoutes(router, handlerBundle, cfg.MaxRequestsPerMin)

	port := cfg.AppPort
	if port == "" {
		port = "3001"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}

// newChatModel picks the language model named by LLM_PROVIDER.
func newChatModel(ctx context.Context, cfg config.Config) (ai.ChatModel, func(), error) {
	switch cfg.LLMProvider {
	case "gemini":
		client, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	default:
		client, err := ai.NewOpenAIModel(cfg.OpenAIAPIKey, cfg.OpenAIOrganizationID, cfg.OpenAIModel, "")
		if err != nil {
			return nil, nil, err
		}
		return client, func() {}, nil
	}
}
