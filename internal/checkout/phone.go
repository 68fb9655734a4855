package checkout

import "regexp"

// +998 XX XXX XX XX, плюс и пробелы необязательны; хвост после номера игнорируется
var phonePattern = regexp.MustCompile(`^\+*998\s*\d{2}\s*\d{3}\s*\d{2}\s*\d{2}`)

// ParsePhoneNumber возвращает совпавший с шаблоном префикс текста
func ParsePhoneNumber(text string) (string, bool) {
	phone := phonePattern.FindString(text)
	return phone, phone != ""
}

