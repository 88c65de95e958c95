package cubicle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseCode_Valid(t *testing.T) {
	code, ok := ParseCode("A1-SOC CUB1")
	require.True(t, ok)
	assert.Equal(t, Code{Section: "A", Row: 1, Number: 1}, code)

	code, ok = ParseCode("C12-SOC CUB34")
	require.True(t, ok)
	assert.Equal(t, Code{Section: "C", Row: 12, Number: 34}, code)
}

func TestParseCode_Invalid(t *testing.T) {
	for _, serial := range []string{
		"",
		"D1-SOC CUB1",   // unknown section
		"A1-SOC CUB",    // missing number
		"A1-CUB1",       // missing marker
		"A1-SOC CUB1 ",  // trailing space
		"a1-SOC CUB1",   // lowercase section
		"A1-SOC CUB1-2", // trailing garbage
	} {
		_, ok := ParseCode(serial)
		assert.False(t, ok, "expected %q to be rejected", serial)
	}
}

func TestSequential(t *testing.T) {
	a := Code{Section: "A", Row: 1, Number: 1}
	assert.True(t, Sequential(a, Code{Section: "A", Row: 1, Number: 2}))
	assert.False(t, Sequential(a, Code{Section: "A", Row: 1, Number: 3}))
	assert.False(t, Sequential(a, Code{Section: "A", Row: 2, Number: 2}))
	assert.False(t, Sequential(a, Code{Section: "B", Row: 1, Number: 2}))
	// Order matters: only ascending adjacency counts.
	assert.False(t, Sequential(Code{Section: "A", Row: 1, Number: 2}, a))
}

func TestCompress_Empty(t *testing.T) {
	assert.Equal(t, "", Compress(nil))
	assert.Equal(t, "", Compress([]Entry{}))
}

func TestCompress_SingleRecord(t *testing.T) {
	got := Compress([]Entry{{Date: day("2024-01-01"), Serial: "A1-SOC CUB1"}})
	assert.Equal(t, "A1-SOC CUB1", got)
}

func TestCompress_ContiguousRun(t *testing.T) {
	got := Compress([]Entry{
		{Date: day("2024-01-01"), Serial: "A1-SOC CUB1"},
		{Date: day("2024-01-01"), Serial: "A1-SOC CUB2"},
		{Date: day("2024-01-01"), Serial: "A1-SOC CUB3"},
	})
	assert.Equal(t, "A1-SOC CUB1-A1-SOC CUB3", got)
}

func TestCompress_RunsNeverCrossDateBoundary(t *testing.T) {
	got := Compress([]Entry{
		{Date: day("2024-01-01"), Serial: "A1-SOC CUB1"},
		{Date: day("2024-01-01"), Serial: "A1-SOC CUB2"},
		{Date: day("2024-01-02"), Serial: "A1-SOC CUB3"},
	})
	assert.Equal(t, "A1-SOC CUB1-A1-SOC CUB2, A1-SOC CUB3", got)
}

func TestCompress_DifferentRowsAndSectionsBreakRuns(t *testing.T) {
	got := Compress([]Entry{
		{Date: day("2024-01-01"), Serial: "A1-SOC CUB1"},
		{Date: day("2024-01-01"), Serial: "A2-SOC CUB2"},
		{Date: day("2024-01-01"), Serial: "B1-SOC CUB1"},
	})
	assert.Equal(t, "A1-SOC CUB1, A2-SOC CUB2, B1-SOC CUB1", got)
}

// Serials sort lexicographically, so CUB10 lands between CUB1 and CUB2 and
// breaks what would numerically be one run. That ordering is part of the
// output contract.
func TestCompress_LexicographicOrdering(t *testing.T) {
	got := Compress([]Entry{
		{Date: day("2024-01-01"), Serial: "A1-SOC CUB2"},
		{Date: day("2024-01-01"), Serial: "A1-SOC CUB10"},
		{Date: day("2024-01-01"), Serial: "A1-SOC CUB1"},
	})
	assert.Equal(t, "A1-SOC CUB1, A1-SOC CUB10, A1-SOC CUB2", got)
}

func TestCompress_DiscardsEmptySerials(t *testing.T) {
	got := Compress([]Entry{
		{Date: day("2024-01-01"), Serial: ""},
		{Date: day("2024-01-01"), Serial: "A1-SOC CUB1"},
		{Date: day("2024-01-02"), Serial: ""},
	})
	assert.Equal(t, "A1-SOC CUB1", got)

	assert.Equal(t, "", Compress([]Entry{{Date: day("2024-01-01"), Serial: ""}}))
}

func TestCompress_UnparseableSerialsEmittedStandalone(t *testing.T) {
	got := Compress([]Entry{
		{Date: day("2024-01-01"), Serial: "A1-SOC CUB1"},
		{Date: day("2024-01-01"), Serial: "A1-SOC CUB2"},
		{Date: day("2024-01-01"), Serial: "X-UNKNOWN"},
	})
	assert.Equal(t, "A1-SOC CUB1-A1-SOC CUB2, X-UNKNOWN", got)
}

func TestCompress_Deterministic(t *testing.T) {
	entries := []Entry{
		{Date: day("2024-01-03"), Serial: "B2-SOC CUB5"},
		{Date: day("2024-01-01"), Serial: "A1-SOC CUB2"},
		{Date: day("2024-01-01"), Serial: "A1-SOC CUB1"},
		{Date: day("2024-01-02"), Serial: "C1-SOC CUB9"},
	}
	first := Compress(entries)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compress(entries))
	}
	assert.Equal(t, "A1-SOC CUB1-A1-SOC CUB2, C1-SOC CUB9, B2-SOC CUB5", first)
}
