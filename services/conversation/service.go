package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userRepo "outreach/database/repository/user"
	"outreach/models"
	ai "outreach/services/intelligence"
	"outreach/services/tasks"
	"outreach/services/whatsapp"

	"go.uber.org/zap"
)

// DefaultConversationService is the production implementation.
type DefaultConversationService struct {
	Users       userRepo.UserRepository
	Gateway     whatsapp.Gateway
	Assistant   ai.AssistantService
	Transcriber Transcriber
	Dedupe      Deduper
	Welcome     WelcomeScheduler
	Logger      *zap.Logger
}

func NewConversationService(
	users userRepo.UserRepository,
	gateway whatsapp.Gateway,
	assistant ai.AssistantService,
	logger *zap.Logger,
) (*DefaultConversationService, error) {
	if users == nil || gateway == nil || assistant == nil {
		return nil, fmt.Errorf("conversation service initialization error: user repository, gateway or assistant is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultConversationService{
		Users:     users,
		Gateway:   gateway,
		Assistant: assistant,
		Logger:    logger,
	}, nil
}

// HandleNotification processes one GreenAPI notification. Notifications that
// are not incoming messages from known leads are ignored without error.
func (s *DefaultConversationService) HandleNotification(ctx context.Context, n *models.Notification) (err error) {
	msg, ok := whatsapp.ParseNotification(n)
	if !ok {
		if n != nil {
			s.Logger.Debug("Ignoring notification", zap.String("type", n.TypeWebhook), zap.String("idMessage", n.IDMessage))
		}
		return nil
	}
	if s.Dedupe != nil && msg.IDMessage != "" && !s.Dedupe.FirstSeen(ctx, msg.IDMessage) {
		s.Logger.Info("Duplicate notification dropped", zap.String("idMessage", msg.IDMessage))
		return nil
	}
	if s.Dedupe != nil && msg.IDMessage != "" {
		defer func() {
			if err != nil {
				s.Dedupe.Forget(context.WithoutCancel(ctx), msg.IDMessage)
			}
		}()
	}

	phone := whatsapp.LocalFromChatID(msg.ChatID)
	if phone == "" {
		s.Logger.Info("Ignoring message from unsupported chat", zap.String("chatId", msg.ChatID))
		return nil
	}

	user, err := s.Users.FindByPhone(ctx, phone)
	if errors.Is(err, userRepo.ErrUserNotFound) {
		s.Logger.Info("Ignoring message from unknown sender", zap.String("phone", phone))
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup sender %s: %w", phone, err)
	}

	text, err := s.messageText(ctx, msg)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	if err := s.Users.AppendMessage(ctx, phone, models.RoleUser, text); err != nil {
		return fmt.Errorf("store incoming message: %w", err)
	}

	reply, err := s.Assistant.Reply(ctx, user, text)
	if err != nil {
		return fmt.Errorf("generate reply for %s: %w", phone, err)
	}

	if err := s.Users.AppendMessage(ctx, phone, models.RoleAssistant, reply); err != nil {
		s.Logger.Error("failed to store reply", zap.String("phone", phone), zap.Error(err))
	}
	if _, err := s.Gateway.SendMessage(ctx, msg.ChatID, reply); err != nil {
		return fmt.Errorf("send reply to %s: %w", phone, err)
	}
	s.Logger.Info("Replied to lead", zap.String("phone", phone), zap.String("idMessage", msg.IDMessage))
	return nil
}

// messageText returns the text of msg, transcribing voice notes when a
// transcriber is configured.
func (s *DefaultConversationService) messageText(ctx context.Context, msg models.IncomingMessage) (string, error) {
	if msg.MessageType != models.MessageTypeAudio {
		return msg.Text, nil
	}
	if s.Transcriber == nil {
		s.Logger.Info("Voice note ignored; transcription disabled", zap.String("chatId", msg.ChatID))
		return "", nil
	}
	audio, err := s.Gateway.DownloadFile(ctx, msg.DownloadURL)
	if err != nil {
		return "", fmt.Errorf("download voice note: %w", err)
	}
	text, err := s.Transcriber.Transcribe(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("transcribe voice note: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SubmitDetails registers a lead and greets new ones immediately.
func (s *DefaultConversationService) SubmitDetails(ctx context.Context, req models.SubmitDetailsRequest) (*LeadResult, error) {
	res, chatID, err := s.ensureLead(ctx, req.Phone, req.Name)
	if err != nil {
		return nil, err
	}
	if !res.Created {
		return res, nil
	}

	greeting := tasks.WelcomeMessage(res.User.UserName)
	id, err := s.Gateway.SendMessage(ctx, chatID, greeting)
	if err != nil {
		return nil, fmt.Errorf("send welcome message: %w", err)
	}
	res.MessageID = id
	if err := s.Users.AppendMessage(ctx, res.User.UserPhone, models.RoleAssistant, greeting); err != nil {
		s.Logger.Warn("failed to store welcome message", zap.String("phone", res.User.UserPhone), zap.Error(err))
	}
	return res, nil
}

// ScheduleWelcome registers a lead and queues the greeting for later.
func (s *DefaultConversationService) ScheduleWelcome(ctx context.Context, req models.ScheduleMessageRequest) (*LeadResult, error) {
	if s.Welcome == nil {
		return nil, fmt.Errorf("welcome scheduling is not configured")
	}
	res, chatID, err := s.ensureLead(ctx, req.PhoneNumber, req.Name)
	if err != nil {
		return nil, err
	}
	jobID, err := s.Welcome.Schedule(ctx, chatID, req.Name)
	if err != nil {
		return nil, err
	}
	res.JobID = jobID
	s.Logger.Info("Welcome message scheduled",
		zap.String("phone", res.User.UserPhone), zap.String("jobId", jobID))
	return res, nil
}

func (s *DefaultConversationService) ensureLead(ctx context.Context, rawPhone, name string) (*LeadResult, string, error) {
	chatID := whatsapp.ChatIDFromLocal(rawPhone)
	if chatID == "" {
		return nil, "", ErrInvalidPhone
	}
	phone := whatsapp.LocalFromChatID(chatID)

	user, err := s.Users.FindByPhone(ctx, phone)
	if err == nil {
		return &LeadResult{User: user}, chatID, nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, "", fmt.Errorf("lookup lead %s: %w", phone, err)
	}

	user = &models.User{UserPhone: phone, UserName: strings.TrimSpace(name)}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create lead %s: %w", phone, err)
	}
	s.Logger.Info("New lead registered", zap.String("phone", phone))
	return &LeadResult{User: user, Created: true}, chatID, nil
}
