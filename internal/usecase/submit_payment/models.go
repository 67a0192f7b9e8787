package submit_payment

// Request модель запроса на оформление оплаты бронирования
type Request struct {
	BookingID     int64  // ID бронирования
	StreetAddress string // Улица и дом
	City          string // Город
	Province      string // Провинция
	Region        string // Регион
	PaymentMethod string // Способ оплаты (Cash, Card, GCASH)
}

// Response модель ответа с сохраненным платежом и инструкцией для клиента
type Response struct {
	PaymentID     int64   // ID записи платежа
	BookingID     int64   // ID бронирования
	StreetAddress string  // Улица и дом
	City          string  // Город
	Province      string  // Провинция
	Region        string  // Регион
	PaymentMethod string  // Способ оплаты
	PaymentStatus string  // Статус платежа
	Amount        float64 // Сумма, скопированная из итога бронирования
	Instruction   string  // Инструкция по оплате для клиента
}
