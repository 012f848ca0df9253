package backend_client

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// flexString принимает и строку, и число. Бэкенд отдает id и значения полей как придется.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexString(stringify(v))
	return nil
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, _ := json.Marshal(val)
		return string(b)
	}
}

type coordsResponse struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type listingResponse struct {
	ID          flexString            `json:"id"`
	RawRowIndex *int                  `json:"raw_row_index"`
	AddressFull string                `json:"address_full"`
	AddressComp map[string]flexString `json:"address_comp"`
	Fields      map[string]flexString `json:"fields"`
	Coords      *coordsResponse       `json:"coords"`
	StatusRaw   string                `json:"status_raw"`
}

type listingsPageResponse struct {
	Items  []listingResponse `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

type customerResponse struct {
	ID      flexString `json:"id"`
	Name    string     `json:"name"`
	Manager string     `json:"manager"`
	// filter_data хранится то строкой с JSON, то объектом
	FilterData json.RawMessage `json:"filter_data"`
	Regions    flexString      `json:"regions"`
	Floor      flexString      `json:"floor"`
	Area       flexString      `json:"area"`
	Deposit    flexString      `json:"deposit"`
	Rent       flexString      `json:"rent"`
	Premium    flexString      `json:"premium"`
}

// filterDataString приводит filter_data к строке с JSON объектом.
func (c customerResponse) filterDataString() string {
	raw := bytes.TrimSpace(c.FilterData)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
	return string(raw)
}
