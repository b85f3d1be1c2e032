package services

import (
	"context"
	"errors"
	"time"

	"orienta-backend/internal/catalog"
	"orienta-backend/internal/config"
	"orienta-backend/internal/models"
	"orienta-backend/internal/store"
)

// Completer is the completion-provider boundary the chat pipeline depends
// on. GeminiService satisfies it in production.
type Completer interface {
	Complete(ctx context.Context, prompt, contract string) (string, error)
}

// ChatService runs one conversation turn end to end: load state, build the
// prompt, call the provider, extract the structured payload, append the turn.
type ChatService struct {
	store     store.Store
	completer Completer
	contract  string
}

func NewChatService(st store.Store, completer Completer, contract string) *ChatService {
	return &ChatService{
		store:     st,
		completer: completer,
		contract:  contract,
	}
}

// Converse processes a single chat turn. When the request carries an inline
// profile the store is bypassed for both the read and the append. History is
// only ever appended after a successful extraction; on any earlier failure
// the store is untouched.
func (s *ChatService) Converse(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	inline := req.StudentProfile != nil

	var profile *models.StudentProfile
	var history []models.ChatMessage

	if inline {
		profile = req.StudentProfile
		if profile.Interests == nil {
			profile.Interests = []string{}
		}
		if profile.Skills == nil {
			profile.Skills = []string{}
		}
		if profile.Preferences == nil {
			profile.Preferences = map[string]any{}
		}
		history = req.ChatHistory
	} else {
		var err error
		profile, err = s.store.GetProfile(ctx, req.SessionKey)
		if errors.Is(err, store.ErrNotFound) {
			// First chat turn for this session: proceed with defaults. The
			// profile itself is only created by an explicit save.
			profile = models.NewStudentProfile(req.SessionKey)
		} else if err != nil {
			return nil, err
		}

		history, err = s.store.ListMessages(ctx, req.SessionKey)
		if err != nil {
			return nil, err
		}
	}

	prompt := buildChatPrompt(profile, history, req.Message, catalog.Careers(), s.contract)

	raw, err := s.completer.Complete(ctx, prompt, s.contract)
	if err != nil {
		return nil, err
	}

	var reply string
	var suggestions []models.SuggestedCareer
	if s.contract == config.ContractFreeText {
		reply, suggestions = extractFreeText(raw)
	} else {
		reply, suggestions, err = extractStructured(raw)
		if err != nil {
			return nil, err
		}
	}

	if !inline {
		now := time.Now().UTC()
		userMsg := models.ChatMessage{
			SessionKey: req.SessionKey,
			Sender:     models.SenderUser,
			Message:    req.Message,
			Timestamp:  now,
		}
		botMsg := models.ChatMessage{
			SessionKey: req.SessionKey,
			Sender:     models.SenderBot,
			Message:    reply,
			Timestamp:  now.Add(time.Millisecond),
		}
		if err := s.store.AppendTurn(ctx, req.SessionKey, userMsg, botMsg); err != nil {
			return nil, err
		}
	}

	return &models.ChatResponse{
		BotMessage:            reply,
		SuggestedOptions:      suggestions,
		UpdatedStudentProfile: profile,
	}, nil
}
