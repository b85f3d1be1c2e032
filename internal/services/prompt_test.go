package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"orienta-backend/internal/catalog"
	"orienta-backend/internal/config"
	"orienta-backend/internal/models"
)

func TestBuildChatPrompt_EmptyProfileRendersPlaceholders(t *testing.T) {
	profile := models.NewStudentProfile("s1")

	prompt := buildChatPrompt(profile, nil, "hola", catalog.Careers(), config.ContractStrict)

	for _, placeholder := range []string{
		"Nombre: No especificado",
		"Edad: No especificada",
		"Intereses Iniciales: Ninguno especificado",
		"Habilidades Iniciales: Ninguna especificada",
	} {
		if !strings.Contains(prompt, placeholder) {
			t.Errorf("Prompt missing placeholder %q", placeholder)
		}
	}
	if !strings.Contains(prompt, "Preferencias Adicionales (de conversaciones previas): {}") {
		t.Error("Prompt missing empty preferences object")
	}
}

func TestBuildChatPrompt_PopulatedProfile(t *testing.T) {
	profile := &models.StudentProfile{
		SessionKey:  "s1",
		Name:        "Joss",
		Age:         20,
		Interests:   []string{"tecnología", "diseño"},
		Skills:      []string{"creatividad"},
		Preferences: map[string]any{"modalidad": "presencial"},
	}

	prompt := buildChatPrompt(profile, nil, "hola", catalog.Careers(), config.ContractStrict)

	if !strings.Contains(prompt, "Nombre: Joss") {
		t.Error("Prompt missing student name")
	}
	if !strings.Contains(prompt, "Edad: 20") {
		t.Error("Prompt missing student age")
	}
	if !strings.Contains(prompt, "Intereses Iniciales: tecnología, diseño") {
		t.Error("Prompt missing joined interests")
	}
	if !strings.Contains(prompt, `"modalidad":"presencial"`) {
		t.Error("Prompt missing preferences JSON")
	}
}

func TestBuildChatPrompt_HistoryTruncation(t *testing.T) {
	profile := models.NewStudentProfile("s1")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	history := make([]models.ChatMessage, 15)
	for i := range history {
		sender := models.SenderUser
		if i%2 == 1 {
			sender = models.SenderBot
		}
		history[i] = models.ChatMessage{
			Sender:    sender,
			Message:   fmt.Sprintf("mensaje-%02d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
	}

	prompt := buildChatPrompt(profile, history, "hola", catalog.Careers(), config.ContractStrict)

	if !strings.Contains(prompt, "últimos 10 mensajes") {
		t.Error("Prompt should declare a 10-message window")
	}

	// Only the last 10 survive
	for i := 0; i < 5; i++ {
		if strings.Contains(prompt, fmt.Sprintf("mensaje-%02d", i)) {
			t.Errorf("Prompt should not contain dropped message %d", i)
		}
	}
	for i := 5; i < 15; i++ {
		if !strings.Contains(prompt, fmt.Sprintf("mensaje-%02d", i)) {
			t.Errorf("Prompt missing retained message %d", i)
		}
	}

	// Oldest-first within the window
	first := strings.Index(prompt, "mensaje-05")
	last := strings.Index(prompt, "mensaje-14")
	if first == -1 || last == -1 || first > last {
		t.Error("Retained messages are not oldest-first")
	}
}

func TestBuildChatPrompt_NoHistorySection(t *testing.T) {
	profile := models.NewStudentProfile("s1")

	prompt := buildChatPrompt(profile, nil, "hola", catalog.Careers(), config.ContractStrict)

	if strings.Contains(prompt, "Historial de conversación reciente") {
		t.Error("Prompt should omit the history section when there is none")
	}
}

func TestBuildChatPrompt_FullCatalogRendered(t *testing.T) {
	profile := models.NewStudentProfile("s1")

	prompt := buildChatPrompt(profile, nil, "hola", catalog.Careers(), config.ContractStrict)

	for _, c := range catalog.Careers() {
		if !strings.Contains(prompt, "Nombre: "+c.Name) {
			t.Errorf("Prompt missing catalog entry %q", c.Name)
		}
		if !strings.Contains(prompt, c.Description) {
			t.Errorf("Prompt missing description for %q", c.Name)
		}
	}
}

func TestBuildChatPrompt_ContractInstruction(t *testing.T) {
	profile := models.NewStudentProfile("s1")

	strict := buildChatPrompt(profile, nil, "hola", catalog.Careers(), config.ContractStrict)
	if !strings.Contains(strict, "SOLAMENTE un objeto JSON") {
		t.Error("Strict prompt missing JSON-only instruction")
	}
	if strings.Contains(strict, "lista numerada") {
		t.Error("Strict prompt should not carry the free-text instruction")
	}

	free := buildChatPrompt(profile, nil, "hola", catalog.Careers(), config.ContractFreeText)
	if !strings.Contains(free, "lista numerada") {
		t.Error("Free-text prompt missing numbered-list instruction")
	}
	if strings.Contains(free, "SOLAMENTE un objeto JSON") {
		t.Error("Free-text prompt should not carry the JSON instruction")
	}
}

func TestBuildChatPrompt_Deterministic(t *testing.T) {
	profile := &models.StudentProfile{
		SessionKey:  "s1",
		Name:        "Ana",
		Interests:   []string{"música"},
		Skills:      []string{},
		Preferences: map[string]any{},
	}
	history := []models.ChatMessage{
		{Sender: models.SenderUser, Message: "hola", Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	}

	a := buildChatPrompt(profile, history, "qué me recomiendas", catalog.Careers(), config.ContractStrict)
	b := buildChatPrompt(profile, history, "qué me recomiendas", catalog.Careers(), config.ContractStrict)

	if a != b {
		t.Error("Prompt is not deterministic for identical input")
	}
}
