package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "found").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "de":
		switch code {
		case "invalid_type":
			return "ungültiger Typ"
		case "required":
			return "Pflichtfeld fehlt"
		case "required_null":
			return "Pflichtfeld ist null"
		case "empty_value":
			return "Pflichtfeld ist leer"
		case "too_long":
			return "Zeichenkette zu lang"
		case "too_big":
			return "Array zu groß"
		case "too_deep":
			return "Verschachtelung zu tief"
		case "input_too_large":
			return "Eingabe zu groß"
		case "parse_error":
			return "Analysefehler"
		case "schema_error":
			return "Schemafehler"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required field missing"
		case "required_null":
			return "required field is null"
		case "empty_value":
			return "required field is empty"
		case "too_long":
			return "string too long"
		case "too_big":
			return "array too big"
		case "too_deep":
			return "nesting too deep"
		case "input_too_large":
			return "input too large"
		case "parse_error":
			return "parse error"
		case "schema_error":
			return "schema error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"de").
func SetLanguage(lang string) {
	if lang != "de" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
