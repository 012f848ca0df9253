package domain

import "strings"

// EditOverlay - локальные правки полей для таблицы брифинга.
// На канонические данные объявления не влияет и на бэкенд не отправляется.
type EditOverlay map[ListingID]map[string]string

// Set сохраняет правку. Пустое значение удаляет поле, пустая правка объекта удаляется целиком.
func (o EditOverlay) Set(id ListingID, field, value string) {
	value = strings.TrimSpace(value)
	fields := o[id]
	if value == "" {
		if fields == nil {
			return
		}
		delete(fields, field)
		if len(fields) == 0 {
			delete(o, id)
		}
		return
	}
	if fields == nil {
		fields = make(map[string]string)
		o[id] = fields
	}
	fields[field] = value
}

func (o EditOverlay) Has(id ListingID) bool {
	return len(o[id]) > 0
}

// Apply накладывает правки на копию объявления.
func (o EditOverlay) Apply(l Listing) Listing {
	return l.WithFields(o[l.ID])
}
