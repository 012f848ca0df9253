package domain

import "strings"

// FilterKey - имя фильтра верхней панели / фильтра клиента.
type FilterKey string

const (
	KeyRegion   FilterKey = "region"
	KeyJibun    FilterKey = "jibun"
	KeyBuilding FilterKey = "building"
	KeyFloor    FilterKey = "floor"
	KeyStore    FilterKey = "store"
	KeyAreaSale FilterKey = "area_sale"
	KeyAreaReal FilterKey = "area_real"
	KeyDeposit  FilterKey = "deposit"
	KeyRent     FilterKey = "rent"
	KeyPremium  FilterKey = "premium"
	KeyNote     FilterKey = "note"
	KeyManager  FilterKey = "manager"
	KeyRegion2  FilterKey = "region2"
	KeyPhone    FilterKey = "phone"
	KeyClient   FilterKey = "client"
	KeyNote3    FilterKey = "note3"
)

// FilterFields сопоставляет ключ фильтра с полем объявления.
var FilterFields = map[FilterKey]string{
	KeyRegion:   FieldRegion,
	KeyJibun:    FieldJibun,
	KeyBuilding: FieldBuilding,
	KeyFloor:    FieldFloor,
	KeyStore:    FieldStore,
	KeyAreaSale: FieldAreaSale,
	KeyAreaReal: FieldAreaReal,
	KeyDeposit:  FieldDeposit,
	KeyRent:     FieldRent,
	KeyPremium:  FieldPremium,
	KeyNote:     FieldNote,
	KeyManager:  FieldManager,
	KeyRegion2:  FieldRegion2,
	KeyPhone:    FieldPhone,
	KeyClient:   FieldClient,
	KeyNote3:    FieldNote3,
}

// TopBarKeys - поля верхней панели в порядке их отображения.
var TopBarKeys = []FilterKey{
	KeyRegion, KeyJibun, KeyBuilding, KeyFloor, KeyStore,
	KeyAreaSale, KeyAreaReal, KeyDeposit, KeyRent, KeyPremium,
	KeyNote, KeyManager, KeyRegion2, KeyPhone, KeyClient, KeyNote3,
}

// CustomerFilterKeys - поля, которые может задавать сохраненный фильтр клиента.
var CustomerFilterKeys = []FilterKey{
	KeyRegion, KeyRegion2, KeyFloor, KeyAreaReal, KeyDeposit, KeyRent, KeyPremium,
}

func IsFilterKey(k FilterKey) bool {
	_, ok := FilterFields[k]
	return ok
}

// FilterSet - набор сырых текстовых значений фильтров.
// Отсутствие ключа означает "нет ограничения".
type FilterSet map[FilterKey]string

func (f FilterSet) Clone() FilterSet {
	out := make(FilterSet, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Value возвращает значение фильтра без пробелов по краям.
func (f FilterSet) Value(k FilterKey) string {
	return strings.TrimSpace(f[k])
}
