package domain

// Customer — справочные данные покупателя. Ядро возвратов их не изменяет.
// Флаг VIP сохраняется, но на решение по возврату сейчас не влияет.
type Customer struct {
	ID    int64
	Name  string
	Email string
	IsVIP bool
}

// Product — позиция каталога; используется поиском и листингами,
// ядро возвратов её не трогает.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	StockLevel  int32
	Category    string
}
