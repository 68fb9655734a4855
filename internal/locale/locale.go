// Package locale хранит строки бота на русском и узбекском языках.
package locale

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Language string

const (
	RU Language = "ru"
	UZ Language = "uz"
)

// NoString возвращается для неизвестного ключа
const NoString = "no_string"

var ErrInvalidLanguage = errors.New("invalid language")

//go:embed strings/*.json
var files embed.FS

var tables = map[Language]map[string]string{
	RU: mustLoad("strings/strings_ru.json"),
	UZ: mustLoad("strings/strings_uz.json"),
}

func mustLoad(name string) map[string]string {
	data, err := files.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("locale: read %s: %v", name, err))
	}
	table := make(map[string]string)
	if err := json.Unmarshal(data, &table); err != nil {
		panic(fmt.Sprintf("locale: decode %s: %v", name, err))
	}
	return table
}

// ParseLanguage проверяет код языка, пришедший извне (БД, настройки)
func ParseLanguage(code string) (Language, error) {
	switch Language(code) {
	case RU, UZ:
		return Language(code), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
}

// Get возвращает строку по ключу. Для неизвестного ключа - NoString.
// Неподдерживаемый язык - ошибка программы, поэтому panic.
func Get(key string, lang Language) string {
	table, ok := tables[lang]
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrInvalidLanguage, lang))
	}
	if value, ok := table[key]; ok {
		return value
	}
	return NoString
}

// Getf подставляет значения вместо {name}: Getf(key, lang, "id", "42")
func Getf(key string, lang Language, pairs ...string) string {
	value := Get(key, lang)
	if len(pairs) < 2 {
		return value
	}
	oldnew := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		oldnew = append(oldnew, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(oldnew...).Replace(value)
}
