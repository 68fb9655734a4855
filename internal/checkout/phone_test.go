package checkout

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func phoneDigits(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
}

func TestParsePhoneNumber(t *testing.T) {
	cases := map[string]struct {
		text          string
		expectedPhone string
		expectedOK    bool
	}{
		"plain digits":        {text: "998901234567", expectedPhone: "998901234567", expectedOK: true},
		"leading plus":        {text: "+998901234567", expectedPhone: "+998901234567", expectedOK: true},
		"grouped":             {text: "+998 90 123 45 67", expectedPhone: "+998 90 123 45 67", expectedOK: true},
		"grouped no plus":     {text: "998 90 123 45 67", expectedPhone: "998 90 123 45 67", expectedOK: true},
		"double plus":         {text: "++998 90 1234567", expectedPhone: "++998 90 1234567", expectedOK: true},
		"tabs":                {text: "+998\t90\t123\t45\t67", expectedPhone: "+998\t90\t123\t45\t67", expectedOK: true},
		"trailing text":       {text: "+998 90 123 45 67 после обеда", expectedPhone: "+998 90 123 45 67", expectedOK: true},
		"too short":           {text: "99890123456"},
		"other country":       {text: "+7 900 123 45 67"},
		"without country":     {text: "90 123 45 67"},
		"text before number":  {text: "тел. +998901234567"},
		"dashes":              {text: "+998-90-123-45-67"},
		"empty":               {text: ""},
		"menu button pressed": {text: "⬅️ Назад"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			phone, ok := ParsePhoneNumber(tc.text)
			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expectedPhone, phone)
			if ok {
				assert.Equal(t, "998901234567", phoneDigits(phone))
			}
		})
	}
}
