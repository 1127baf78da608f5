package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDistrict is returned when a district name is not in the table.
var ErrUnknownDistrict = errors.New("unknown district")

// DistrictOffset shifts the regional calendar for one district.
// Offsets are minutes and may be negative.
type DistrictOffset struct {
	Name        string `json:"name"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
}

// Districts lists the Khorezm districts relative to Urganch.
// The first entry is the default selection.
var Districts = []DistrictOffset{
	{Name: "Urganch", StartOffset: 0, EndOffset: 0},
	{Name: "Xiva", StartOffset: 1, EndOffset: 1},
	{Name: "Xonqa", StartOffset: -1, EndOffset: -1},
	{Name: "Hazorasp", StartOffset: -1, EndOffset: 0},
	{Name: "Bog'ot", StartOffset: 0, EndOffset: 1},
	{Name: "Yangiariq", StartOffset: 1, EndOffset: 2},
	{Name: "Shovot", StartOffset: 0, EndOffset: 0},
	{Name: "Qo'shko'pir", StartOffset: 2, EndOffset: 2},
	{Name: "Gurlan", StartOffset: -2, EndOffset: -1},
	{Name: "Yangibozor", StartOffset: -1, EndOffset: 0},
	{Name: "Urganch tumani", StartOffset: 0, EndOffset: 0},
	{Name: "Tuproqqal'a", StartOffset: -3, EndOffset: -2},
	{Name: "Xazorasp shahri", StartOffset: -1, EndOffset: -1},
	{Name: "Pitnak", StartOffset: -2, EndOffset: -1},
}

// DefaultDistrict returns the first entry of the district table.
func DefaultDistrict() DistrictOffset {
	return Districts[0]
}

// FindDistrict looks a district up by exact name.
func FindDistrict(name string) (DistrictOffset, bool) {
	for _, d := range Districts {
		if d.Name == name {
			return d, true
		}
	}
	return DistrictOffset{}, false
}

// LookupDistrict resolves a user-typed name: exact match first, then a
// case-insensitive match. Unknown names return ErrUnknownDistrict.
func LookupDistrict(name string) (DistrictOffset, error) {
	if d, ok := FindDistrict(name); ok {
		return d, nil
	}
	for _, d := range Districts {
		if strings.EqualFold(d.Name, strings.TrimSpace(name)) {
			return d, nil
		}
	}
	return DistrictOffset{}, fmt.Errorf("%w %q; valid districts: %s", ErrUnknownDistrict, name, strings.Join(DistrictNames(), ", "))
}

// ResolveDistrict returns the named district, or the default when the name
// is empty or unknown.
func ResolveDistrict(name string) DistrictOffset {
	if d, ok := FindDistrict(name); ok {
		return d
	}
	return DefaultDistrict()
}

// DistrictNames returns the district names in table order.
func DistrictNames() []string {
	names := make([]string, len(Districts))
	for i, d := range Districts {
		names[i] = d.Name
	}
	return names
}

// FormatOffset renders a minute offset with an explicit sign, e.g. "+2m".
func FormatOffset(minutes int) string {
	if minutes >= 0 {
		return fmt.Sprintf("+%dm", minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
