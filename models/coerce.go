package models

import (
	"bytes"
	"strconv"
	"strings"
	"time"
)

// FlexInt decodes a JSON number or a numeric string into a non-negative int.
// Anything unparseable or negative decodes to 0.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		*f = 0
		return nil
	}
	*f = FlexInt(int(v))
	return nil
}

func (f FlexInt) Int() int { return int(f) }

// FlexFloat decodes a JSON number or numeric string into a non-negative float64.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) Float() float64 { return float64(f) }

// FlexTime decodes RFC3339, RFC3339 without zone, or date-only strings.
// Unparseable input decodes to the zero time rather than erroring.
type FlexTime time.Time

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (f *FlexTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if s == "" || s == "null" {
		*f = FlexTime(time.Time{})
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*f = FlexTime(t.UTC())
			return nil
		}
	}
	*f = FlexTime(time.Time{})
	return nil
}

func (f FlexTime) Time() time.Time { return time.Time(f) }
