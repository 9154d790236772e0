package cashfree

import "encoding/json"

// CreateLinkRequest тело запроса POST /links
type CreateLinkRequest struct {
	LinkID            string            `json:"link_id"`
	LinkAmount        float64           `json:"link_amount"`
	LinkCurrency      string            `json:"link_currency"`
	LinkPurpose       string            `json:"link_purpose"`
	CustomerDetails   CustomerDetails   `json:"customer_details"`
	LinkMeta          LinkMeta          `json:"link_meta"`
	LinkAutoReminders bool              `json:"link_auto_reminders"`
	LinkNotify        LinkNotify        `json:"link_notify"`
	LinkNotes         map[string]string `json:"link_notes,omitempty"`
}

type CustomerDetails struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
}

type LinkMeta struct {
	ReturnURL string `json:"return_url"`
}

type LinkNotify struct {
	SendSMS   bool `json:"send_sms"`
	SendEmail bool `json:"send_email"`
}

// Link созданная платежная ссылка
type Link struct {
	LinkID     string          `json:"link_id"`
	LinkURL    string          `json:"link_url"`
	LinkStatus string          `json:"link_status"`
	Raw        json.RawMessage `json:"-"`
}

// linkResponse ответ POST /links
// Адрес ссылки в разных версиях API приходил под разными ключами
type linkResponse struct {
	LinkID         string     `json:"link_id"`
	CfLinkID       FlexString `json:"cf_link_id"`
	LinkURL        string     `json:"link_url"`
	PaymentLink    string     `json:"payment_link"`
	PaymentLinkAlt string     `json:"paymentLink"`
	LinkStatus     string     `json:"link_status"`
}

func (r *linkResponse) url() string {
	switch {
	case r.LinkURL != "":
		return r.LinkURL
	case r.PaymentLink != "":
		return r.PaymentLink
	default:
		return r.PaymentLinkAlt
	}
}

// LinkOrder заказ, созданный по платежной ссылке
type LinkOrder struct {
	OrderID     string     `json:"order_id"`
	CfOrderID   FlexString `json:"cf_order_id"`
	OrderStatus string     `json:"order_status"` // ACTIVE / PAID / EXPIRED / TERMINATED ...
	OrderAmount float64    `json:"order_amount"`
}

// ID идентификатор заказа: order_id, иначе cf_order_id
func (o LinkOrder) ID() string {
	if o.OrderID != "" {
		return o.OrderID
	}
	return string(o.CfOrderID)
}

// errorResponse тело ошибки Cashfree
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// FlexString идентификатор, который Cashfree отдает то строкой, то числом
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}
