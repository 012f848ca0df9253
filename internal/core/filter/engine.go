package filter

import (
	"briefing-service/internal/core/domain"
	"strings"
)

// TextKeys - фильтры, которые сравниваются по подстроке.
var TextKeys = []domain.FilterKey{
	domain.KeyRegion, domain.KeyJibun, domain.KeyBuilding, domain.KeyStore, domain.KeyNote,
	domain.KeyManager, domain.KeyRegion2, domain.KeyPhone, domain.KeyClient, domain.KeyNote3,
}

// NumericKind - вид сравнения для числовых фильтров.
var NumericKind = map[domain.FilterKey]NumFilterType{
	domain.KeyAreaSale: TypeGTE,
	domain.KeyAreaReal: TypeGTE,
	domain.KeyDeposit:  TypeLTE,
	domain.KeyRent:     TypeLTE,
	domain.KeyPremium:  TypeLTE,
}

// numericOrder фиксирует порядок проверки числовых полей.
var numericOrder = []domain.FilterKey{
	domain.KeyAreaSale, domain.KeyAreaReal, domain.KeyDeposit, domain.KeyRent, domain.KeyPremium,
}

type textCheck struct {
	field  string
	tokens []string
}

type numCheck struct {
	field  string
	filter NumFilter
}

// Compiled - фильтры, разобранные один раз на проход, а не на каждое объявление.
type Compiled struct {
	text  []textCheck
	floor *NumFilter
	nums  []numCheck
}

// Compile разбирает набор фильтров. Пустые и неразборчивые значения ограничений не дают.
func Compile(filters domain.FilterSet) Compiled {
	var c Compiled
	for _, k := range TextKeys {
		if tokens := ParseTextTokens(filters[k]); len(tokens) > 0 {
			c.text = append(c.text, textCheck{field: domain.FilterFields[k], tokens: tokens})
		}
	}
	if r, ok := ParseFloorInputToRange(filters[domain.KeyFloor]); ok {
		f := r.NumFilter()
		c.floor = &f
	}
	for _, k := range numericOrder {
		if f, ok := BuildNumFilter(filters[k], NumericKind[k]); ok {
			c.nums = append(c.nums, numCheck{field: domain.FilterFields[k], filter: f})
		}
	}
	return c
}

// Empty - ни одно поле не ограничено.
func (c Compiled) Empty() bool {
	return len(c.text) == 0 && c.floor == nil && len(c.nums) == 0
}

// Match - И между полями, ИЛИ между токенами одного поля.
func (c Compiled) Match(l domain.Listing) bool {
	for _, tc := range c.text {
		if !MatchesTextTokens(l.Field(tc.field), tc.tokens) {
			return false
		}
	}
	if c.floor != nil {
		if !CheckNumFilter(optional(ParseFloorValue(l.Field(domain.FieldFloor))), c.floor) {
			return false
		}
	}
	for i := range c.nums {
		nc := &c.nums[i]
		if !CheckNumFilter(optional(ParseNumber(l.Field(nc.field))), &nc.filter) {
			return false
		}
	}
	return true
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

// Apply возвращает новый срез с объявлениями, прошедшими все фильтры. Порядок сохраняется.
func Apply(listings []domain.Listing, filters domain.FilterSet) []domain.Listing {
	c := Compile(filters)
	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if c.Match(l) {
			out = append(out, l)
		}
	}
	return out
}

// Effective строит итоговый фильтр: фильтр клиента, поверх которого лежат
// непустые значения верхней панели. Фильтр клиента не меняется.
func Effective(customer, top domain.FilterSet) domain.FilterSet {
	out := customer.Clone()
	for k, v := range top {
		if t := strings.TrimSpace(v); t != "" {
			out[k] = t
		}
	}
	return out
}
