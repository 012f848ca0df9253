package domain

// Имена полей объявления в том виде, в каком их отдает бэкенд.
const (
	FieldRegion      = "지역"
	FieldJibun       = "지번"
	FieldBuilding    = "건물명"
	FieldFloor       = "층수"
	FieldStore       = "가게명"
	FieldAreaSale    = "분양"
	FieldAreaReal    = "실평수"
	FieldDeposit     = "보증금"
	FieldRent        = "월세"
	FieldPremium     = "권리금"
	FieldNote        = "비고"
	FieldManager     = "담당자"
	FieldRegion2     = "지역2"
	FieldPhone       = "연락처"
	FieldClient      = "의뢰인"
	FieldNote3       = "비고3"
	FieldReceiptDate = "접수날짜"
	FieldStatus      = "현황"
)

// ListingID - непрозрачный идентификатор объявления.
// Сравнивается на равенство; для сортировок latest/oldest трактуется как число, если это возможно.
type ListingID string

// Coords - координаты объекта. Если хотя бы одна из них отсутствует, объект нельзя показать на карте.
type Coords struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (c Coords) Mappable() bool {
	return c.Lat != nil && c.Lng != nil
}

// Listing - одно объявление недвижимости.
type Listing struct {
	ID          ListingID         `json:"id"`
	RawRowIndex *int              `json:"raw_row_index,omitempty"`
	AddressFull string            `json:"address_full,omitempty"`
	AddressComp map[string]string `json:"address_comp,omitempty"`
	Fields      map[string]string `json:"fields"`
	Coords      Coords            `json:"coords"`
	StatusRaw   string            `json:"status_raw,omitempty"`
}

// Field возвращает значение поля или пустую строку, если поля нет.
func (l Listing) Field(name string) string {
	return l.Fields[name]
}

// WithFields возвращает копию объявления, в которой поля из patch перекрывают исходные.
func (l Listing) WithFields(patch map[string]string) Listing {
	if len(patch) == 0 {
		return l
	}
	merged := make(map[string]string, len(l.Fields)+len(patch))
	for k, v := range l.Fields {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	l.Fields = merged
	return l
}
