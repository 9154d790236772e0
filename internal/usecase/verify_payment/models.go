package verify_payment

// NoOrdersStatus статус шлюза, когда по ссылке еще не создано ни одного заказа
const NoOrdersStatus = "NO_ORDERS"

// Request модель запроса на сверку оплаты
type Request struct {
	BookingID string
}

// Response модель ответа сверки
type Response struct {
	PaymentStatus string // нормализованный статус оплаты бронирования
	CfStatus      string // сырой статус последнего заказа или NO_ORDERS
	OrderID       *string
	Changed       bool // статус оплаты изменился в результате сверки
}
