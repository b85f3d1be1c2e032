package models

// StudentProfile holds the per-session student record the chat pipeline
// reads and the save-profile endpoint mutates.
type StudentProfile struct {
	SessionKey  string         `json:"sessionKey"`
	Name        string         `json:"name"`
	Age         int            `json:"age"`
	Interests   []string       `json:"interests"`
	Skills      []string       `json:"skills"`
	Preferences map[string]any `json:"preferences"`
}

// NewStudentProfile returns a profile with defaults for a session that has
// never saved one. Collections are non-nil so JSON renders [] and {}.
func NewStudentProfile(sessionKey string) *StudentProfile {
	return &StudentProfile{
		SessionKey:  sessionKey,
		Interests:   []string{},
		Skills:      []string{},
		Preferences: map[string]any{},
	}
}

// ProfileData is the client-supplied portion of a save-profile request.
// The session key travels next to it, never inside it.
type ProfileData struct {
	Name        string         `json:"name"`
	Age         int            `json:"age"`
	Interests   []string       `json:"interests"`
	Skills      []string       `json:"skills"`
	Preferences map[string]any `json:"preferences"`
}

type SaveProfileRequest struct {
	SessionKey  string       `json:"sessionKey"`
	ProfileData *ProfileData `json:"profileData"`
}

type SaveProfileResponse struct {
	Message string          `json:"message"`
	Profile *StudentProfile `json:"profile"`
}

// LoadDataResponse is the initial-load payload: null profile and empty
// history when the session has no stored data yet.
type LoadDataResponse struct {
	StudentProfile *StudentProfile `json:"studentProfile"`
	ChatHistory    []ChatMessage   `json:"chatHistory"`
}
