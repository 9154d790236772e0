// Package phone нормализует телефонные номера клиентов и инженеров.
package phone

import "strings"

// Length длина нормализованного номера (без кода страны)
const Length = 10

// Digits оставляет в строке только цифры
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize возвращает последние 10 цифр номера
// "+91 98765-43210" -> "9876543210"
// Если цифр меньше 10, возвращает все что есть
func Normalize(raw string) string {
	digits := Digits(raw)
	if len(digits) > Length {
		return digits[len(digits)-Length:]
	}
	return digits
}

// IsValid сообщает, что после нормализации осталось ровно 10 цифр
func IsValid(raw string) bool {
	return len(Normalize(raw)) == Length
}
