/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/rifcsharvest/rifcs"
)

// Reduced-precision W3C profiles not covered by strfmt.
var w3cLayouts = []string{
	"2006-01-02T15:04Z07:00",
	"2006-01",
	"2006",
}

// ParseW3CDate parses a W3C date or date-time.
func ParseW3CDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if dt, err := strfmt.ParseDateTime(v); err == nil {
		return time.Time(dt), nil
	}

	var d strfmt.Date
	if err := d.UnmarshalText([]byte(v)); err == nil {
		return time.Time(d), nil
	}

	for _, layout := range w3cLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable W3C date %q", value)
}

// ParseYear returns the 4-digit year of a W3C date.
func ParseYear(value string) (string, error) {
	t, err := ParseW3CDate(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", t.Year()), nil
}

// mapExistenceDates keeps the earliest start and the latest end. Selection compares the raw
// strings, so mixed precisions such as "2004" and "2004-07-01" order lexically.
func (m *Mapper) mapExistenceDates(doc Document, dates []rifcs.ExistenceDate) {
	var start, end string
	for _, ed := range dates {
		if s := ed.StartValue(); s != "" && (start == "" || s < start) {
			start = s
		}
		if e := ed.EndValue(); e != "" && e > end {
			end = e
		}
	}

	m.mapYear(doc, "existenceDates.startDate", start)
	m.mapYear(doc, "existenceDates.endDate", end)
}

func (m *Mapper) mapYear(doc Document, path, raw string) {
	if raw == "" {
		return
	}
	year, err := ParseYear(raw)
	if err != nil {
		m.logger.Warn("skipping unparseable existence date", "path", path, "value", raw, "error", err)
		return
	}
	m.mapPath(doc, path, year)
}
