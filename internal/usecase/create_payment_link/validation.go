package create_payment_link

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
	"github.com/m04kA/AiroFix-BookingService/pkg/phone"
)

const (
	// maxLinkIDLength ограничение Cashfree на link_id
	maxLinkIDLength = 50

	// допустимая длина телефона для customer_phone
	minGatewayPhoneLength = 8
	maxGatewayPhoneLength = 13

	// fallbackAmount сумма, если ни запрос, ни бронирование ее не дают
	fallbackAmount = 1.0
)

var amountPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BookingID) == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	if req.Amount != nil && *req.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	return nil
}

// gatewayPhone приводит телефон к виду, который принимает Cashfree
// Номер, который не удалось привести к допустимой длине, заменяется заглушкой
func gatewayPhone(raw, placeholder string) string {
	digits := phone.Digits(raw)

	if strings.HasPrefix(digits, "0") && len(digits) > phone.Length {
		digits = strings.TrimLeft(digits, "0")
	}
	if len(digits) > phone.Length {
		digits = digits[len(digits)-phone.Length:]
	}
	if len(digits) < minGatewayPhoneLength || len(digits) > maxGatewayPhoneLength {
		return placeholder
	}
	return digits
}

// resolveAmount явная сумма > 0, иначе первое число из approxPrice, иначе 1
// "₹1,299 – ₹1,799" -> 1299
func resolveAmount(explicit *float64, approxPrice string) float64 {
	if explicit != nil && *explicit > 0 {
		return *explicit
	}

	token := amountPattern.FindString(strings.ReplaceAll(approxPrice, ",", ""))
	if token != "" {
		if v, err := strconv.ParseFloat(token, 64); err == nil && v > 0 {
			return v
		}
	}

	return fallbackAmount
}

// firstNonEmpty возвращает первое непустое значение
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// buildLinkID формирует link_id вида PREFIX_{bookingId}_{ms}
// Часть с id бронирования укорачивается, чтобы метка времени всегда помещалась
func buildLinkID(prefix, bookingID string, nowMs int64) string {
	suffix := "_" + strconv.FormatInt(nowMs, 10)
	head := prefix + "_" + bookingID

	if room := maxLinkIDLength - len(suffix); len(head) > room {
		head = head[:room]
	}
	return head + suffix
}

// buildReturnURL адрес страницы подтверждения, куда Cashfree вернет клиента
func buildReturnURL(siteURL, bookingID string) string {
	q := url.Values{}
	q.Set("id", bookingID)
	q.Set("source", "cashfree_link")
	return strings.TrimRight(siteURL, "/") + "/booking/confirmation?" + q.Encode()
}

// bookingPhone телефон из бронирования, если оно загружено
func bookingPhone(b *domain.Booking) string {
	if b == nil {
		return ""
	}
	return b.Phone
}
