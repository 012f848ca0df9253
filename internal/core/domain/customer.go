package domain

// Customer - запись клиента из бэкенда. Нас интересует только сохраненный фильтр.
type Customer struct {
	ID         string
	Name       string
	Manager    string
	FilterData string

	// Старые колонки, которые используются, если filter_data пуст.
	Regions string
	Floor   string
	Area    string
	Deposit string
	Rent    string
	Premium string
}
