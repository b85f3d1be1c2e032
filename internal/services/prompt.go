package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"orienta-backend/internal/catalog"
	"orienta-backend/internal/config"
	"orienta-backend/internal/models"
)

// historyWindow bounds the prompt: only the most recent messages are
// rendered, oldest-first. Older context is dropped silently.
const historyWindow = 10

// buildChatPrompt renders profile, trimmed history, the full career catalog
// and the latest user message into one instruction text. Output depends only
// on its inputs. The closing instruction declares which output contract the
// extractor will parse against.
func buildChatPrompt(profile *models.StudentProfile, history []models.ChatMessage, message string, careers []catalog.Career, contract string) string {
	var b strings.Builder

	// Layer 1 — Role
	b.WriteString("Eres un asistente vocacional experto y personalizado. Tu objetivo es guiar a los estudiantes hacia carreras adecuadas basándote en su perfil, conversación y las carreras disponibles.\n\n")

	// Layer 2 — Profile. Missing fields render as explicit placeholders so
	// the model never infers absence from silence.
	b.WriteString("Aquí está el perfil actual del estudiante:\n")
	b.WriteString(fmt.Sprintf("Nombre: %s\n", orPlaceholder(profile.Name, "No especificado")))
	if profile.Age > 0 {
		b.WriteString(fmt.Sprintf("Edad: %d\n", profile.Age))
	} else {
		b.WriteString("Edad: No especificada\n")
	}
	b.WriteString(fmt.Sprintf("Intereses Iniciales: %s\n", joinOrPlaceholder(profile.Interests, "Ninguno especificado")))
	b.WriteString(fmt.Sprintf("Habilidades Iniciales: %s\n", joinOrPlaceholder(profile.Skills, "Ninguna especificada")))
	b.WriteString(fmt.Sprintf("Preferencias Adicionales (de conversaciones previas): %s\n\n", preferencesJSON(profile.Preferences)))

	// Layer 3 — Trimmed history, oldest-first within the window
	if len(history) > 0 {
		recent := history
		if len(recent) > historyWindow {
			recent = recent[len(recent)-historyWindow:]
		}
		b.WriteString(fmt.Sprintf("Historial de conversación reciente (últimos %d mensajes):\n", len(recent)))
		for _, m := range recent {
			b.WriteString(fmt.Sprintf("%s: %s\n", m.Sender, m.Message))
		}
		b.WriteString("\n")
	}

	// Layer 4 — Latest utterance
	b.WriteString(fmt.Sprintf("El estudiante acaba de decir: %q\n\n", message))

	// Layer 5 — Full catalog, every call
	b.WriteString("Aquí está la lista de carreras disponibles con sus descripciones detalladas. Analiza la conversación del estudiante y su perfil en relación con estas carreras. Si el estudiante expresa disgusto por algún tema, considera cómo eso afecta la relevancia de las carreras que incluyen ese tema.\n\n")
	for i, c := range careers {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("Nombre: %s\nDescripción: %s\n", c.Name, c.Description))
	}
	b.WriteString("\n")

	// Layer 6 — Output contract
	if contract == config.ContractFreeText {
		b.WriteString(freeTextInstruction)
	} else {
		b.WriteString(strictInstruction)
	}

	return b.String()
}

const strictInstruction = `Basándote en TODO el contexto proporcionado (perfil, historial, último mensaje y carreras disponibles), tu respuesta DEBE ser SOLAMENTE un objeto JSON, sin ningún texto adicional fuera del JSON. El campo "chatReply" DEBE contener toda la respuesta conversacional, amigable y que invite a seguir explorando.

Formato de la respuesta JSON (ESTRICTO - no incluyas ningún otro texto fuera de este JSON):
` + "```json" + `
{
  "chatReply": "Tu mensaje conversacional aquí...",
  "suggestedCareers": [
    {
      "name": "Nombre de la Carrera (de la lista proporcionada)",
      "percentageMatch": 0,
      "reason": "Breve explicación de por qué coincide, considerando gustos/disgustos."
    }
  ]
}
` + "```" + `
Debes sugerir entre 3 y 4 carreras. Asegúrate de que "name" sea exactamente uno de los nombres de la lista de carreras proporcionada.
`

const freeTextInstruction = `Basándote en TODO el contexto proporcionado (perfil, historial, último mensaje y carreras disponibles), escribe una respuesta conversacional, amigable y que invite a seguir explorando.

Termina tu respuesta con una lista numerada de 3 a 5 carreras sugeridas, una por línea, con el formato exacto "1. Nombre de la Carrera". Usa únicamente nombres de la lista de carreras proporcionada y no agregues texto después de la lista.
`

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func joinOrPlaceholder(items []string, placeholder string) string {
	if len(items) == 0 {
		return placeholder
	}
	return strings.Join(items, ", ")
}

func preferencesJSON(prefs map[string]any) string {
	if len(prefs) == 0 {
		return "{}"
	}
	data, err := json.Marshal(prefs)
	if err != nil {
		return "{}"
	}
	return string(data)
}
