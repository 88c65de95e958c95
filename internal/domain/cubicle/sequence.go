// internal/domain/cubicle/sequence.go
package cubicle

import (
	"sort"
	"strings"
	"time"
)

// Entry is one reservation's contribution to a sequence: the day it falls on
// and the raw cubicle serial.
type Entry struct {
	Date   time.Time
	Serial string
}

// DayKey formats a date at calendar-day granularity. All grouping in this
// package happens on this string form, never on the full timestamp.
const dayKeyLayout = "2006-01-02"

// Compress collapses a list of (date, serial) entries into a compact textual
// sequence. Entries are bucketed per calendar day; within a day, serials are
// sorted as raw strings and contiguous runs (same section and row, numbers
// increasing by one) are emitted as "start-end" ranges. Runs never cross a
// day boundary. Entries without a serial are discarded. Empty input yields "".
//
// Note: serials are sorted lexicographically, so "A1-SOC CUB10" orders before
// "A1-SOC CUB2". That matches the historical output format and is intentional.
func Compress(entries []Entry) string {
	buckets := make(map[string][]string)
	var dayKeys []string
	for _, e := range entries {
		if e.Serial == "" {
			continue
		}
		key := e.Date.Format(dayKeyLayout)
		if _, ok := buckets[key]; !ok {
			dayKeys = append(dayKeys, key)
		}
		buckets[key] = append(buckets[key], e.Serial)
	}
	if len(dayKeys) == 0 {
		return ""
	}
	sort.Strings(dayKeys)

	var tokens []string
	for _, key := range dayKeys {
		serials := buckets[key]
		sort.Strings(serials)
		tokens = append(tokens, compressDay(serials)...)
	}
	return strings.Join(tokens, ", ")
}

// compressDay scans one day's sorted serials left to right, extending the
// current run while codes stay sequential and closing it otherwise.
func compressDay(serials []string) []string {
	var tokens []string

	runStart := serials[0]
	runEnd := serials[0]
	runEndCode, runEndOK := ParseCode(serials[0])

	flush := func() {
		if runStart == runEnd {
			tokens = append(tokens, runStart)
		} else {
			tokens = append(tokens, runStart+"-"+runEnd)
		}
	}

	for _, serial := range serials[1:] {
		code, ok := ParseCode(serial)
		if ok && runEndOK && Sequential(runEndCode, code) {
			runEnd = serial
			runEndCode = code
			continue
		}
		flush()
		runStart = serial
		runEnd = serial
		runEndCode, runEndOK = code, ok
	}
	flush()
	return tokens
}
