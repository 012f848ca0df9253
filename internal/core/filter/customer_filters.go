package filter

import (
	"briefing-service/internal/core/domain"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var regionWholeMarkers = []struct {
	marker string
	unit   string
}{
	{"구 전체", "구"}, {"구 전부", "구"}, {"구전체", "구"}, {"구전부", "구"},
	{"시 전체", "시"}, {"시 전부", "시"}, {"시전체", "시"}, {"시전부", "시"},
}

// districtRunes - признак района/города: такие регионы ищутся по полю 지역2.
const districtRunes = "구시"

// NormalizeRegion сворачивает "강남구 전체" в "강남구", "수원시전부" в "수원시".
func NormalizeRegion(region string) string {
	region = norm.NFC.String(strings.TrimSpace(region))
	for _, m := range regionWholeMarkers {
		if i := strings.Index(region, m.marker); i >= 0 {
			return region[:i] + m.unit
		}
	}
	return region
}

// LegacyFilterData - фильтр из старых колонок клиента, когда filter_data не заполнен.
func LegacyFilterData(c domain.Customer) map[string]string {
	return map[string]string{
		string(domain.KeyRegion):   c.Regions,
		string(domain.KeyFloor):    c.Floor,
		string(domain.KeyAreaReal): c.Area,
		string(domain.KeyDeposit):  c.Deposit,
		string(domain.KeyRent):     c.Rent,
		string(domain.KeyPremium):  c.Premium,
	}
}

// NormalizeCustomerFilter превращает сохраненные предпочтения клиента в фильтр.
// Пустые значения и посторонние ключи отбрасываются.
func NormalizeCustomerFilter(data map[string]string) domain.FilterSet {
	out := domain.FilterSet{}
	for _, key := range domain.CustomerFilterKeys {
		value := strings.TrimSpace(data[string(key)])
		if value == "" {
			continue
		}

		switch key {
		case domain.KeyRegion:
			var regions, districts []string
			for _, part := range strings.Split(value, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				n := NormalizeRegion(part)
				if strings.ContainsAny(n, districtRunes) {
					districts = append(districts, n)
				} else {
					regions = append(regions, n)
				}
			}
			if len(regions) > 0 {
				out[domain.KeyRegion] = strings.Join(regions, ",")
			}
			mergeRegion2(out, districts...)

		case domain.KeyRegion2:
			mergeRegion2(out, strings.Split(value, ",")...)

		case domain.KeyFloor:
			// в поле этажа иногда попадает название района
			if strings.ContainsAny(value, districtRunes) {
				mergeRegion2(out, NormalizeRegion(value))
			} else {
				out[domain.KeyFloor] = value
			}

		case domain.KeyAreaReal:
			if strings.Contains(value, "-") {
				out[key] = value
			} else if n, ok := parseFloatPrefix(value); ok && n > 0 {
				out[key] = formatNumber(n) + "-"
			} else {
				out[key] = value
			}

		case domain.KeyDeposit, domain.KeyRent, domain.KeyPremium:
			if strings.ContainsAny(value, "-~") {
				out[key] = value
			} else if n, ok := parseFloatPrefix(value); ok && n > 0 {
				out[key] = "0-" + formatNumber(n)
			} else {
				out[key] = value
			}

		default:
			out[key] = value
		}
	}
	return out
}

// mergeRegion2 дописывает районы в region2 через запятую без повторов.
func mergeRegion2(out domain.FilterSet, parts ...string) {
	var merged []string
	seen := make(map[string]bool)
	for _, part := range append(strings.Split(out[domain.KeyRegion2], ","), parts...) {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		merged = append(merged, part)
	}
	if len(merged) > 0 {
		out[domain.KeyRegion2] = strings.Join(merged, ",")
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
