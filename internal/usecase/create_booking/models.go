package create_booking

import "time"

// Request модель запроса на создание бронирования.
// Количества заданы указателями: отсутствующее значение получает
// значение по умолчанию (1 спальня, 1 санузел, 0 часов).
// PricingID опционален: без него итог считается только по per_room
// и hourly правилам от базовой цены.
type Request struct {
	ServiceID     int64   // ID услуги из каталога
	PricingID     *int64  // ID выбранной плоской опции (опционально)
	CustomerName  string  // Имя клиента
	CustomerEmail string  // Email клиента
	CustomerPhone string  // Телефон клиента
	Date          string  // Дата уборки, YYYY-MM-DD
	BedroomQty    *int    // Количество спален (опционально)
	BathQty       *int    // Количество санузлов (опционально)
	Hours         *int    // Часы для почасовых услуг (опционально)
	Notes         string  // Заметки клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64   // ID созданного бронирования
	ServiceID     int64   // ID услуги
	ServiceName   string  // Название услуги
	PricingID     *int64  // ID выбранной опции цены
	CustomerName  string  // Имя клиента
	CustomerEmail string  // Email клиента
	CustomerPhone string  // Телефон клиента
	Date          string  // Дата уборки
	BedroomQty    int     // Количество спален после подстановки дефолтов
	BathQty       int     // Количество санузлов после подстановки дефолтов
	Hours         int     // Часы
	Notes         string  // Заметки
	TotalPrice    float64 // Зафиксированная итоговая цена

	CreatedAt time.Time // Время создания
}
