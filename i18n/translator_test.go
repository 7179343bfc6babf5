package i18n

import "testing"

func TestTranslator_DefaultAndGerman(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("de")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected german message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown code should echo, got %q", msg)
	}
}

func TestTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(constTranslator("custom"))
	if msg := T("required", nil); msg != "custom" {
		t.Fatalf("custom translator ignored, got %q", msg)
	}

	SetTranslator(nil)
	if msg := T("required", nil); msg != "required field missing" {
		t.Fatalf("nil should reset to english, got %q", msg)
	}
}

type constTranslator string

func (c constTranslator) Message(code string, data map[string]string) string { return string(c) }
