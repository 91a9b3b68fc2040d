package manifest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Manifest is the full static catalog document. It is read-only once loaded.
type Manifest struct {
	GeneratedAt Timestamp `json:"generatedAt"`
	Units       []Unit    `json:"lernfelder"`
}

// Unit is a Lernfeld: a top-level curriculum grouping.
type Unit struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Situations []Situation `json:"situationen"`
}

// Situation is a Lernsituation, the leaf item shown in the detail view.
type Situation struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Meta     *Meta     `json:"meta,omitempty"`
	Overview string    `json:"overview,omitempty"`
	Sections []Section `json:"sections,omitempty"`
	Source   string    `json:"source"`
}

// UnmarshalJSON drops a falsy meta (false, 0, "") so the situation shows
// no meta block at all. Any other non-object meta decodes to an empty Meta.
func (s *Situation) UnmarshalJSON(data []byte) error {
	type plain Situation
	aux := struct {
		*plain
		Meta json.RawMessage `json:"meta"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.Meta = nil
	if falsy(aux.Meta) {
		return nil
	}
	s.Meta = new(Meta)
	return s.Meta.UnmarshalJSON(aux.Meta)
}

// Section is one titled content block of a situation. HTML is pre-rendered
// markup and may be empty.
type Section struct {
	Title string `json:"title"`
	HTML  string `json:"html,omitempty"`
}

// Meta holds descriptive situation metadata. Nil fields are absent.
// HoursLabel keeps a non-numeric hours value verbatim; Hours is then nil.
type Meta struct {
	Hours      *float64 `json:"hours,omitempty"`
	HoursLabel string   `json:"-"`
	Year       *string  `json:"year,omitempty"`
	Approval   *string  `json:"aprv,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// UnmarshalJSON decodes meta leniently: values of an unexpected shape are
// treated as absent instead of failing the whole manifest.
func (m *Meta) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// A non-object meta carries no usable values.
		*m = Meta{}
		return nil
	}

	*m = Meta{
		Year:     lenientString(raw["year"]),
		Approval: lenientString(raw["aprv"]),
		Tags:     lenientTags(raw["tags"]),
	}
	m.Hours, m.HoursLabel = lenientHours(raw["hours"])
	return nil
}

// MarshalJSON writes HoursLabel back as the hours value.
func (m Meta) MarshalJSON() ([]byte, error) {
	type plain Meta
	out := struct {
		plain
		Hours any `json:"hours,omitempty"`
	}{plain: plain(m)}
	switch {
	case m.HoursLabel != "":
		out.Hours = m.HoursLabel
	case m.Hours != nil:
		out.Hours = *m.Hours
	}
	return json.Marshal(out)
}

// lenientHours accepts a JSON number or a numeric string. Any other
// truthy scalar, "0" included, is returned as a label.
func lenientHours(raw json.RawMessage) (*float64, string) {
	raw = bytes.TrimSpace(raw)
	if falsy(raw) {
		return nil, ""
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f, ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && f != 0 {
			return &f, ""
		}
	}
	if label := lenientString(raw); label != nil {
		return nil, *label
	}
	return nil, ""
}

// lenientString accepts a JSON string, or a number/bool rendered as its
// literal text. false and zero are absent.
func lenientString(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if !bytes.Equal(raw, []byte(`""`)) && falsy(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	switch raw[0] {
	case '{', '[':
		return nil
	}
	s = string(raw)
	return &s
}

// falsy reports whether raw is missing, null, false, zero or the empty string.
func falsy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")), bytes.Equal(raw, []byte("false")), bytes.Equal(raw, []byte(`""`)):
		return true
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f == 0
	}
	return false
}

// lenientTags returns nil for anything that is not an array. Non-string
// elements keep their literal JSON text; null becomes "".
func lenientTags(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		var s string
		switch {
		case json.Unmarshal(item, &s) == nil:
		case bytes.Equal(item, []byte("null")):
			s = ""
		default:
			s = string(item)
		}
		tags = append(tags, s)
	}
	return tags
}

// Timestamp is the manifest generation time. A missing or malformed value
// decodes to the zero time instead of an error.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t.Time = time.Time{}
		return nil
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
