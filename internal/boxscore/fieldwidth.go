package boxscore

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldWidth is one column of a fixed-width, single-space separated tail.
type FieldWidth struct {
	Name  string
	Width int
}

// DefaultCounterFields is the tail of every stat span: eight one-digit counters.
var DefaultCounterFields = []FieldWidth{
	{Name: "turnovers", Width: 1},
	{Name: "steals", Width: 1},
	{Name: "fouls_committed", Width: 1},
	{Name: "fouls_received", Width: 1},
	{Name: "blocks", Width: 1},
	{Name: "assists", Width: 1},
	{Name: "offensive_rebounds", Width: 1},
	{Name: "defensive_rebounds", Width: 1},
}

// TailWidth is the number of runes the fields occupy, separators included.
func TailWidth(fields []FieldWidth) int {
	if len(fields) == 0 {
		return 0
	}
	n := len(fields) - 1
	for _, f := range fields {
		n += f.Width
	}
	return n
}

// DecodeFixedWidth reads the fields off the end of s. The tail is split on
// single spaces, so every field must be present and numeric.
func DecodeFixedWidth(s string, fields []FieldWidth) ([]int, error) {
	width := TailWidth(fields)
	runes := []rune(s)
	if len(runes) < width {
		return nil, fmt.Errorf("need %d characters, have %d", width, len(runes))
	}
	tail := string(runes[len(runes)-width:])

	parts := strings.Split(tail, " ")
	if len(parts) != len(fields) {
		return nil, fmt.Errorf("tail %q has %d fields, want %d", tail, len(parts), len(fields))
	}

	values := make([]int, len(fields))
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fields[i].Name, err)
		}
		values[i] = v
	}
	return values, nil
}
