package filter

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NumFilterType - способ сравнения числового фильтра.
type NumFilterType string

const (
	TypeGTE   NumFilterType = "gte"
	TypeLTE   NumFilterType = "lte"
	TypeRange NumFilterType = "range"
)

// NumFilter - разобранный числовой фильтр. Для gte значимо только Min, для lte только Max.
type NumFilter struct {
	Min  float64
	Max  float64
	Type NumFilterType
}

// FloorRange - диапазон этажей, Min <= Max. Подвальные этажи отрицательные.
type FloorRange struct {
	Min int
	Max int
}

func (r FloorRange) NumFilter() NumFilter {
	return NumFilter{Min: float64(r.Min), Max: float64(r.Max), Type: TypeRange}
}

var (
	nonNumericChars = regexp.MustCompile(`[^\d.-]`)
	nonRangeChars   = regexp.MustCompile(`[^\d~-]`)
	rangeSeparator  = regexp.MustCompile(`[~-]`)
	leadingFloat    = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
	firstDigits     = regexp.MustCompile(`\d+`)
	minusDigits     = regexp.MustCompile(`-(\d+)`)
	basementPrefix  = regexp.MustCompile(`^b\d`)
	basementWord    = regexp.MustCompile(`지하(\d+)`)
	basementLetter  = regexp.MustCompile(`b(\d+)`)
	floorRangeExpr  = regexp.MustCompile(`^(-?\d+)[~-](-?\d+)$`)
	floorSingleExpr = regexp.MustCompile(`^(-?\d+)$`)
	plainDecimal    = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)
)

const basementMarker = "지하"

// parseFloatPrefix разбирает числовой префикс строки: "3-5" -> 3, "12.5m" -> 12.5.
func parseFloatPrefix(s string) (float64, bool) {
	m := leadingFloat.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(m, "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseNumber оставляет в тексте только цифры, точку и минус и разбирает число.
func ParseNumber(text string) (float64, bool) {
	if strings.TrimSpace(text) == "" {
		return 0, false
	}
	return parseFloatPrefix(nonNumericChars.ReplaceAllString(text, ""))
}

// ParseFloorValue возвращает этаж объявления. "지하3", "B3" и "-3" дают -3.
func ParseFloorValue(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if plainDecimal.MatchString(s) {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v, true
		}
	}

	lower := strings.ToLower(s)
	if strings.Contains(lower, basementMarker) || basementPrefix.MatchString(lower) {
		if d := firstDigits.FindString(lower); d != "" {
			return -digitsValue(d), true
		}
	}
	if strings.HasPrefix(lower, "-") {
		if m := minusDigits.FindStringSubmatch(lower); m != nil {
			return -digitsValue(m[1]), true
		}
	}
	if d := firstDigits.FindString(lower); d != "" {
		return digitsValue(d), true
	}
	return 0, false
}

func digitsValue(d string) float64 {
	v, _ := strconv.ParseFloat(d, 64)
	return v
}

// ParseFloorInputToRange разбирает ввод фильтра этажей: "3", "1~5", "지하2~1", "B1-3".
func ParseFloorInputToRange(text string) (FloorRange, bool) {
	if strings.TrimSpace(text) == "" {
		return FloorRange{}, false
	}
	cleaned := strings.ToLower(text)
	cleaned = basementWord.ReplaceAllString(cleaned, "-$1")
	cleaned = basementLetter.ReplaceAllString(cleaned, "-$1")
	cleaned = nonRangeChars.ReplaceAllString(cleaned, "")

	if m := floorRangeExpr.FindStringSubmatch(cleaned); m != nil {
		a, errA := strconv.Atoi(m[1])
		b, errB := strconv.Atoi(m[2])
		if errA == nil && errB == nil {
			return FloorRange{Min: min(a, b), Max: max(a, b)}, true
		}
	}
	if m := floorSingleExpr.FindStringSubmatch(cleaned); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return FloorRange{Min: n, Max: n}, true
		}
	}
	return FloorRange{}, false
}

// parseRange - общая часть ParseRangeFlexible и BuildNumFilter.
// single == true, если во вводе было одно число без синтаксиса диапазона.
func parseRange(text string) (r NumFilter, single bool, ok bool) {
	if strings.TrimSpace(text) == "" {
		return NumFilter{}, false, false
	}
	clean := nonRangeChars.ReplaceAllString(text, "")

	if strings.ContainsAny(clean, "~-") {
		parts := rangeSeparator.Split(clean, -1)
		if len(parts) == 2 {
			lo, okLo := parseFloatPrefix(parts[0])
			hi, okHi := parseFloatPrefix(parts[1])
			if okLo && okHi {
				return NumFilter{Min: lo, Max: hi}, false, true
			}
			// "20-": задан только минимум
			if okLo && parts[1] == "" {
				return NumFilter{Min: lo, Type: TypeGTE}, false, true
			}
		}
	}

	v, ok := parseFloatPrefix(clean)
	if !ok {
		return NumFilter{}, false, false
	}
	single = !strings.ContainsAny(strings.TrimPrefix(clean, "-"), "~-")
	return NumFilter{Min: v, Max: v}, single, true
}

// ParseRangeFlexible разбирает "a-b", "a~b", "a-" и одиночное число.
// Пустой Type означает замкнутый диапазон.
func ParseRangeFlexible(text string) (NumFilter, bool) {
	r, _, ok := parseRange(text)
	return r, ok
}

// BuildNumFilter строит фильтр для поля с видом сравнения kind.
// Одиночное число для kind == gte означает "не меньше", для остальных - точное совпадение.
func BuildNumFilter(text string, kind NumFilterType) (NumFilter, bool) {
	r, single, ok := parseRange(text)
	if !ok {
		return NumFilter{}, false
	}
	if r.Type != "" {
		return r, true
	}
	if single && kind == TypeGTE {
		return NumFilter{Min: r.Min, Type: TypeGTE}, true
	}
	r.Type = TypeRange
	return r, true
}

// CheckNumFilter пропускает значение, если нет фильтра или нет самого значения.
func CheckNumFilter(value *float64, f *NumFilter) bool {
	if f == nil || value == nil {
		return true
	}
	v := *value
	switch f.Type {
	case TypeGTE:
		return v >= f.Min
	case TypeLTE:
		return v <= f.Max
	default:
		return v >= f.Min && v <= f.Max
	}
}

// ParseTextTokens делит ввод по запятым. Токены приводятся к NFC.
func ParseTextTokens(text string) []string {
	if text == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(text, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tokens = append(tokens, norm.NFC.String(t))
		}
	}
	return tokens
}

// MatchesTextTokens - true, если хотя бы один токен входит в значение как подстрока.
func MatchesTextTokens(value string, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	if value == "" {
		return false
	}
	v := norm.NFC.String(value)
	for _, t := range tokens {
		if strings.Contains(v, t) {
			return true
		}
	}
	return false
}
