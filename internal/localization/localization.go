package localization

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	LangRussian = "ru"
	LangKazakh  = "kk"
)

//go:embed translations/*.yaml
var translationsFS embed.FS

type Service struct {
	translations map[string]map[string]interface{}
}

func NewService() (*Service, error) {
	s := &Service{
		translations: make(map[string]map[string]interface{}),
	}

	for _, lang := range []string{LangRussian, LangKazakh} {
		data, err := translationsFS.ReadFile(fmt.Sprintf("translations/%s.yaml", lang))
		if err != nil {
			return nil, fmt.Errorf("read %s translations: %w", lang, err)
		}

		var translations map[string]interface{}
		if err := yaml.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("parse %s translations: %w", lang, err)
		}

		s.translations[lang] = translations
	}

	return s, nil
}

// Normalize сводит код языка Telegram к поддерживаемому: kk или ru
func Normalize(lang string) string {
	if strings.EqualFold(strings.TrimSpace(lang), LangKazakh) {
		return LangKazakh
	}
	return LangRussian
}

// Get возвращает перевод по ключу вида "section.key".
// Если в языке нет ключа, берётся русский текст, если нет и его - сам ключ.
// Плейсхолдеры {{name}} заменяются значениями из params.
func (s *Service) Get(lang, key string, params map[string]interface{}) string {
	text, ok := s.lookup(Normalize(lang), key)
	if !ok {
		text, ok = s.lookup(LangRussian, key)
	}
	if !ok {
		return key
	}
	return replacePlaceholders(text, params)
}

// Bilingual склеивает русский и казахский варианты одного сообщения
func (s *Service) Bilingual(key string, params map[string]interface{}) string {
	return s.Get(LangRussian, key, params) + "\n\n" + s.Get(LangKazakh, key, params)
}

func (s *Service) Has(lang, key string) bool {
	_, ok := s.lookup(lang, key)
	return ok
}

func (s *Service) lookup(lang, key string) (string, bool) {
	var current interface{} = s.translations[lang]
	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return "", false
		}
		current = m[part]
	}

	text, ok := current.(string)
	return text, ok
}

func replacePlaceholders(text string, params map[string]interface{}) string {
	for key, value := range params {
		text = strings.ReplaceAll(text, fmt.Sprintf("{{%s}}", key), fmt.Sprint(value))
	}
	return text
}
