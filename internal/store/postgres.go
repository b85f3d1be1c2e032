package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"orienta-backend/internal/models"
)

// PostgresStore persists profiles, chat history and questionnaire
// submissions in Postgres via a shared pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetProfile(ctx context.Context, sessionKey string) (*models.StudentProfile, error) {
	p := &models.StudentProfile{SessionKey: sessionKey}
	var prefsJSON []byte

	query := `SELECT name, age, interests, skills, preferences
		FROM student_profiles WHERE session_key = $1`

	err := s.pool.QueryRow(ctx, query, sessionKey).Scan(
		&p.Name, &p.Age, &p.Interests, &p.Skills, &prefsJSON,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Preferences = map[string]any{}
	if len(prefsJSON) > 0 {
		if err := json.Unmarshal(prefsJSON, &p.Preferences); err != nil {
			return nil, err
		}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p, nil
}

func (s *PostgresStore) UpsertProfile(ctx context.Context, profile *models.StudentProfile) (*models.StudentProfile, error) {
	prefsJSON, err := json.Marshal(profile.Preferences)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO student_profiles (session_key, name, age, interests, skills, preferences)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_key) DO UPDATE
		SET name = $2, age = $3, interests = $4, skills = $5, preferences = $6, updated_at = NOW()`

	_, err = s.pool.Exec(ctx, query,
		profile.SessionKey, profile.Name, profile.Age,
		profile.Interests, profile.Skills, prefsJSON,
	)
	if err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, profile.SessionKey)
}

func (s *PostgresStore) ListMessages(ctx context.Context, sessionKey string) ([]models.ChatMessage, error) {
	query := `SELECT sender, message, created_at
		FROM chat_messages WHERE session_key = $1
		ORDER BY created_at ASC, seq ASC`

	rows, err := s.pool.Query(ctx, query, sessionKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.ChatMessage, 0)
	for rows.Next() {
		m := models.ChatMessage{SessionKey: sessionKey}
		if err := rows.Scan(&m.Sender, &m.Message, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *PostgresStore) AppendTurn(ctx context.Context, sessionKey string, userMsg, botMsg models.ChatMessage) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO chat_messages (session_key, sender, message, created_at) VALUES ($1, $2, $3, $4)`

	if _, err := tx.Exec(ctx, query, sessionKey, userMsg.Sender, userMsg.Message, userMsg.Timestamp); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, sessionKey, botMsg.Sender, botMsg.Message, botMsg.Timestamp); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) SaveSubmission(ctx context.Context, sub *models.QuestionnaireSubmission) error {
	sub.ID = uuid.New()
	sub.FechaEnvio = time.Now().UTC()

	query := `
		INSERT INTO cuestionarios (
			id,
			pregunta1, pregunta2, pregunta3, pregunta4, pregunta5, pregunta6,
			pregunta7, pregunta8, pregunta9, pregunta10, pregunta11, pregunta12,
			pregunta13, pregunta14, pregunta15, pregunta16, pregunta17, pregunta18,
			fecha_envio
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	answers := sub.Answers()
	args := make([]any, 0, len(answers)+2)
	args = append(args, sub.ID)
	for _, a := range answers {
		args = append(args, a)
	}
	args = append(args, sub.FechaEnvio)

	_, err := s.pool.Exec(ctx, query, args...)
	return err
}

func (s *PostgresStore) SubmissionStats(ctx context.Context) (int, *time.Time, error) {
	var total int
	var last pgtype.Timestamptz

	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), MAX(fecha_envio) FROM cuestionarios`,
	).Scan(&total, &last)
	if err != nil {
		return 0, nil, err
	}

	if !last.Valid {
		return total, nil, nil
	}
	t := last.Time
	return total, &t, nil
}
