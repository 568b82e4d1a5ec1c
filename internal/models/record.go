package models

import "time"

// Status classifies how fresh a listing's advert is. Only sources that expose
// an advert start date distinguish recent from older; everything else is
// reported as current.
type Status string

const (
	StatusRecent  Status = "recent"
	StatusOlder   Status = "older"
	StatusCurrent Status = "current"
)

// ValueKind tags the concrete type held inside a Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindTime
)

// Value is one loosely-typed field of a raw record.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Ts   time.Time
}

func StringValue(value string) Value { return Value{Kind: KindString, Str: value} }

func NumberValue(value float64) Value { return Value{Kind: KindNumber, Num: value} }

func TimeValue(value time.Time) Value { return Value{Kind: KindTime, Ts: value} }

// RawRecord is the loosely-typed record a source extracts from its page,
// keyed by the source's own field names. A missing key is the explicit
// "absent" state; no field is ever guaranteed present.
type RawRecord map[string]Value

// SetString stores a string field, skipping empty values so that "absent"
// stays the single representation of a missing field.
func (r RawRecord) SetString(key, value string) {
	if value == "" {
		return
	}
	r[key] = StringValue(value)
}

func (r RawRecord) SetNumber(key string, value float64) {
	r[key] = NumberValue(value)
}

func (r RawRecord) SetTime(key string, value time.Time) {
	if value.IsZero() {
		return
	}
	r[key] = TimeValue(value)
}

// String returns the field as a string when present and string-typed.
func (r RawRecord) String(key string) (string, bool) {
	value, ok := r[key]
	if !ok || value.Kind != KindString {
		return "", false
	}
	return value.Str, true
}

func (r RawRecord) Number(key string) (float64, bool) {
	value, ok := r[key]
	if !ok || value.Kind != KindNumber {
		return 0, false
	}
	return value.Num, true
}

func (r RawRecord) Time(key string) (time.Time, bool) {
	value, ok := r[key]
	if !ok || value.Kind != KindTime {
		return time.Time{}, false
	}
	return value.Ts, true
}

// Listing is the normalized posting produced by a source's normalizer.
// Presence of optional fields varies by source, but every listing carries a
// source tag. Date fields stay nil when the source text could not be parsed;
// DaysToApply is defined only when CloseDate is set.
type Listing struct {
	Source             string     `json:"source"`
	Title              string     `json:"title"`
	Employer           string     `json:"employer_name,omitempty"`
	Location           string     `json:"display_location,omitempty"`
	ContractType       string     `json:"contract_type,omitempty"`
	ContractTerm       string     `json:"contract_term,omitempty"`
	SalaryDescription  string     `json:"salary_description,omitempty"`
	SalaryRange        string     `json:"salary_range,omitempty"`
	Description        string     `json:"short_description,omitempty"`
	URL                string     `json:"url,omitempty"`
	FullURL            string     `json:"full_url,omitempty"`
	StartDate          *time.Time `json:"advert_start_date,omitempty"`
	StartDateFormatted string     `json:"advert_start_date_formatted,omitempty"`
	CloseDate          *time.Time `json:"application_close_date,omitempty"`
	CloseDateFormatted string     `json:"application_close_date_formatted,omitempty"`
	DaysToApply        *int       `json:"days_to_apply,omitempty"`
	Status             Status     `json:"status"`
}

// Row is the presentation record every source's listings are renamed into
// before rendering. It is a lossless rename of Listing fields; nothing is
// recomputed here.
type Row struct {
	Title         string `json:"title"`
	Employer      string `json:"employer_name"`
	Location      string `json:"location,omitempty"`
	ContractType  string `json:"contract_type,omitempty"`
	ContractTerm  string `json:"contract_term,omitempty"`
	Salary        string `json:"salary,omitempty"`
	ClosingDate   string `json:"closing_date,omitempty"`
	DaysRemaining *int   `json:"days_remaining,omitempty"`
	Description   string `json:"description,omitempty"`
	URL           string `json:"url_"`
	Source        string `json:"source"`
}
