package services

import (
	"testing"
)

func TestExtractStructured_FencedBlock(t *testing.T) {
	raw := "```json\n{\"chatReply\":\"hi\",\"suggestedCareers\":[{\"name\":\"Psicología\",\"percentageMatch\":87,\"reason\":\"x\"}]}\n```"

	reply, suggestions, err := extractStructured(raw)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if reply != "hi" {
		t.Errorf("Expected reply 'hi', got %q", reply)
	}
	if len(suggestions) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].Name != "Psicología" {
		t.Errorf("Expected name 'Psicología', got %q", suggestions[0].Name)
	}
	if suggestions[0].PercentageMatch != 87 {
		t.Errorf("Expected percentageMatch 87, got %d", suggestions[0].PercentageMatch)
	}
	if suggestions[0].Reason != "x" {
		t.Errorf("Expected reason 'x', got %q", suggestions[0].Reason)
	}
}

func TestExtractStructured_BareJSON(t *testing.T) {
	raw := `{"chatReply":"hi","suggestedCareers":[{"name":"Psicología","percentageMatch":87,"reason":"x"}]}`

	reply, suggestions, err := extractStructured(raw)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reply != "hi" {
		t.Errorf("Expected reply 'hi', got %q", reply)
	}
	if len(suggestions) != 1 || suggestions[0].PercentageMatch != 87 {
		t.Errorf("Bare JSON should extract identically to the fenced case, got %+v", suggestions)
	}
}

func TestExtractStructured_WrapperNoise(t *testing.T) {
	raw := "Claro, aquí está tu respuesta:\n```json\n{\"chatReply\":\"hola\",\"suggestedCareers\":[]}\n```\nEspero que te sirva."

	reply, _, err := extractStructured(raw)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reply != "hola" {
		t.Errorf("Expected reply 'hola', got %q", reply)
	}
}

func TestExtractStructured_MalformedIsHardError(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"truncated JSON", `{"chatReply":"hi","suggestedCareers":[{"name":`},
		{"plain prose", "Lo siento, no puedo responder en JSON."},
		{"empty", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := extractStructured(tc.raw)
			if err == nil {
				t.Fatal("Expected MalformedCompletionError, got nil")
			}
			mce, ok := err.(*MalformedCompletionError)
			if !ok {
				t.Fatalf("Expected *MalformedCompletionError, got %T", err)
			}
			if mce.Raw != tc.raw {
				t.Error("Error should carry the raw completion for diagnostics")
			}
		})
	}
}

func TestExtractStructured_PercentageCoercion(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected int
	}{
		{"in range", `{"chatReply":"r","suggestedCareers":[{"name":"Psicología","percentageMatch":42,"reason":"x"}]}`, 42},
		{"over 100 clamps to 0", `{"chatReply":"r","suggestedCareers":[{"name":"Psicología","percentageMatch":150,"reason":"x"}]}`, 0},
		{"negative clamps to 0", `{"chatReply":"r","suggestedCareers":[{"name":"Psicología","percentageMatch":-5,"reason":"x"}]}`, 0},
		{"numeric string coerces", `{"chatReply":"r","suggestedCareers":[{"name":"Psicología","percentageMatch":"87","reason":"x"}]}`, 87},
		{"non-numeric clamps to 0", `{"chatReply":"r","suggestedCareers":[{"name":"Psicología","percentageMatch":"alto","reason":"x"}]}`, 0},
		{"null clamps to 0", `{"chatReply":"r","suggestedCareers":[{"name":"Psicología","percentageMatch":null,"reason":"x"}]}`, 0},
		{"float truncates", `{"chatReply":"r","suggestedCareers":[{"name":"Psicología","percentageMatch":87.9,"reason":"x"}]}`, 87},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, suggestions, err := extractStructured(tc.payload)
			if err != nil {
				t.Fatalf("A bad percentage field must not fail the turn: %v", err)
			}
			if len(suggestions) != 1 {
				t.Fatalf("A bad percentage field must not discard the suggestion, got %d", len(suggestions))
			}
			if suggestions[0].PercentageMatch != tc.expected {
				t.Errorf("Expected percentageMatch %d, got %d", tc.expected, suggestions[0].PercentageMatch)
			}
		})
	}
}

func TestExtractStructured_NonCatalogNameIsKept(t *testing.T) {
	raw := `{"chatReply":"r","suggestedCareers":[{"name":"Astrología","percentageMatch":50,"reason":"x"}]}`

	_, suggestions, err := extractStructured(raw)
	if err != nil {
		t.Fatalf("Catalog mismatch must not fail the turn: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Name != "Astrología" {
		t.Errorf("Non-catalog suggestion should be kept, got %+v", suggestions)
	}
}

func TestExtractFreeText_NumberedList(t *testing.T) {
	raw := "Great, let's explore!\n1. Psicología\n2. Diseño Gráfico Digital\n3. Mecatrónica"

	reply, suggestions := extractFreeText(raw)

	if reply != "Great, let's explore!" {
		t.Errorf("Expected reply 'Great, let's explore!', got %q", reply)
	}

	expected := []string{"Psicología", "Diseño Gráfico Digital", "Mecatrónica"}
	if len(suggestions) != len(expected) {
		t.Fatalf("Expected %d suggestions, got %d", len(expected), len(suggestions))
	}
	for i, name := range expected {
		if suggestions[i].Name != name {
			t.Errorf("Suggestion %d: expected %q, got %q", i, name, suggestions[i].Name)
		}
	}
}

func TestExtractFreeText_NoListIsDegradedNotError(t *testing.T) {
	raw := "Cuéntame más sobre lo que te gusta hacer en tu tiempo libre."

	reply, suggestions := extractFreeText(raw)

	if reply != raw {
		t.Errorf("Whole text should become the reply, got %q", reply)
	}
	if len(suggestions) != 0 {
		t.Errorf("Expected no suggestions, got %d", len(suggestions))
	}
}

func TestExtractFreeText_FirstContiguousBlockOnly(t *testing.T) {
	raw := "Intro\n1. Psicología\n2. Mecatrónica\n\nAlgo más\n1. Ingeniería Civil"

	reply, suggestions := extractFreeText(raw)

	if reply != "Intro" {
		t.Errorf("Expected reply 'Intro', got %q", reply)
	}
	if len(suggestions) != 2 {
		t.Fatalf("Expected only the first block (2 suggestions), got %d", len(suggestions))
	}
}

func TestExtractFreeText_EmptyLabelsDiscarded(t *testing.T) {
	raw := "Intro\n1. Psicología\n2.  \n3. Mecatrónica"

	_, suggestions := extractFreeText(raw)

	if len(suggestions) != 2 {
		t.Fatalf("Empty labels should be discarded, got %d suggestions", len(suggestions))
	}
	if suggestions[0].Name != "Psicología" || suggestions[1].Name != "Mecatrónica" {
		t.Errorf("Unexpected labels: %+v", suggestions)
	}
}

func TestExtractFreeText_TrimsReplyWhitespace(t *testing.T) {
	raw := "\n  Hola, exploremos juntos.  \n\n1. Psicología\n"

	reply, suggestions := extractFreeText(raw)

	if reply != "Hola, exploremos juntos." {
		t.Errorf("Expected trimmed reply, got %q", reply)
	}
	if len(suggestions) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(suggestions))
	}
}
