package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "ref" or "segment").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "parse_error":
			return "解析エラー"
		case "resolution_error":
			return "参照を解決できません"
		case "path_error":
			return "キーパスを解決できません"
		case "unsupported":
			return "未対応の構文です"
		case "self_reference":
			return "自己参照です"
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "duplicate_key":
			return "キーが重複しています"
		}
	default: // "en"
		switch code {
		case "parse_error":
			return "parse error"
		case "resolution_error":
			return "reference does not resolve"
		case "path_error":
			return "key path does not resolve"
		case "unsupported":
			return "unsupported construct"
		case "self_reference":
			return "self-reference"
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required property missing"
		case "duplicate_key":
			return "duplicate key"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
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
