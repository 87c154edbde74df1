package dto

import "encoding/json"

// MessageResponse is the minimal envelope for operations that only report
// success.
type MessageResponse struct {
	Message string `json:"message" example:"Application withdrawn successfully"`
}

// PaginationInfo describes the window of a paginated listing.
type PaginationInfo struct {
	CurrentPage   int   `json:"currentPage" example:"1"`
	TotalPages    int   `json:"totalPages" example:"4"`
	TotalColleges int64 `json:"totalColleges" example:"37"`
	HasNext       bool  `json:"hasNext"`
	HasPrev       bool  `json:"hasPrev"`
}

// NullableFloat accepts a JSON number, a numeric string, an empty string or
// null. Budget fields arrive from web forms where an untouched input submits
// the empty string.
type NullableFloat struct {
	Value *float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableFloat) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		n.Value = nil
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		data = []byte(str)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	n.Value = &f
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n NullableFloat) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
