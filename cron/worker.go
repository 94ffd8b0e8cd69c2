package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"outreach/config"
	"outreach/models"
	"outreach/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// MessageSender is the gateway call the worker needs.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID, text string) (string, error)
}

// QueueRedisOpt is the asynq connection shared by the client and the worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitWelcomeWorker starts the async worker in the background and returns
// the server so the caller can shut it down.
func InitWelcomeWorker(ctx context.Context, sender MessageSender, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeWelcomeMessage, HandleWelcomeTask(sender, logger))

	go monitorRedisConnection(ctx, logger)

	go func() {
		logger.Info("Starting welcome worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("failed to start welcome worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("welcome worker gave up; delayed messages will stay queued")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

// HandleWelcomeTask sends the queued greeting.
func HandleWelcomeTask(sender MessageSender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.WelcomePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid welcome payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if p.ChatID == "" {
			logger.Warn("welcome task without chat id", zap.String("name", p.Name))
			return fmt.Errorf("missing chat id: %w", asynq.SkipRetry)
		}

		message := p.Message
		if message == "" {
			message = tasks.WelcomeMessage(p.Name)
		}
		id, err := sender.SendMessage(ctx, p.ChatID, message)
		if err != nil {
			logger.Error("failed to send welcome message", zap.String("chatId", p.ChatID), zap.Error(err))
			return err
		}
		logger.Info("Welcome message sent", zap.String("chatId", p.ChatID), zap.String("idMessage", id))
		return nil
	}
}

// monitorRedisConnection pings the queue database periodically to surface failures.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
