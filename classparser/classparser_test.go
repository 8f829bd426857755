package classparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		label   string
		year    int
		section string
		ok      bool
	}{
		{"Year 7A", 7, "A", true},
		{"year 7 a", 7, "A", true},
		{"Yr 8 B", 8, "B", true},
		{"Y9", 9, "", true},
		{"10C", 10, "C", true},
		{"13", 13, "", true},
		{"  Year  11  D ", 11, "D", true},
		{"Year-12", 12, "", true},
		{"Year 0", 0, "", false},
		{"Year 14", 0, "", false},
		{"Room 12 Kōwhai", 0, "", false},
		{"", 0, "", false},
		{"ABC", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			year, section, ok := Parse(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.year, year)
			assert.Equal(t, tt.section, section)
		})
	}
}

func TestYearLabel(t *testing.T) {
	assert.Equal(t, "Year 7", YearLabel("Year 7A"))
	assert.Equal(t, "Year 7", YearLabel("7B"))
	assert.Equal(t, "Year 10", YearLabel("yr10"))
	assert.Equal(t, "Room 12 Kōwhai", YearLabel("Room 12  Kōwhai"))
}
