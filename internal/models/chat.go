package models

import "time"

// Message senders. Every stored message carries exactly one of these.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is one entry in a session's append-only conversation log.
// Ordering is by Timestamp ascending; messages are never edited or deleted.
type ChatMessage struct {
	SessionKey string    `json:"-"`
	Sender     string    `json:"sender"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// ChatRequest is the payload for POST /chat. When StudentProfile is present
// the caller supplies the conversation state inline and the store is
// bypassed for this turn.
type ChatRequest struct {
	SessionKey     string          `json:"sessionKey"`
	Message        string          `json:"message"`
	StudentProfile *StudentProfile `json:"studentProfile,omitempty"`
	ChatHistory    []ChatMessage   `json:"chatHistory,omitempty"`
}

// SuggestedCareer is produced fresh on every chat turn and never persisted.
// Name should match a catalog entry; PercentageMatch is clamped to [0,100].
type SuggestedCareer struct {
	Name            string `json:"name"`
	PercentageMatch int    `json:"percentageMatch"`
	Reason          string `json:"reason"`
}

type ChatResponse struct {
	BotMessage            string            `json:"botMessage"`
	SuggestedOptions      []SuggestedCareer `json:"suggestedOptions"`
	UpdatedStudentProfile *StudentProfile   `json:"updatedStudentProfile"`
}
