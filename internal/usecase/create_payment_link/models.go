package create_payment_link

// Request модель запроса на создание платежной ссылки
// Все поля кроме BookingID необязательны и перекрывают данные бронирования
type Request struct {
	BookingID    string
	CustomerName *string
	Phone        *string
	Email        *string
	Amount       *float64 // в рупиях; <= 0 считается незаданным
}

// Response модель ответа с созданной ссылкой
type Response struct {
	PaymentLink string
	LinkID      string
}

// Config параметры формирования ссылки
type Config struct {
	SiteURL          string // базовый адрес сайта для return_url
	LinkPrefix       string // AFIX_LINK
	Currency         string // INR
	PurposePrefix    string // AiroFix booking
	PlaceholderPhone string
	PlaceholderName  string
	PlaceholderEmail string
}
