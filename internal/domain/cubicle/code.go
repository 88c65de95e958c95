// internal/domain/cubicle/code.go
package cubicle

import (
	"regexp"
	"strconv"
)

// codePattern matches serials like "A1-SOC CUB1": section letter, row number,
// fixed "-SOC CUB" marker, cubicle number.
var codePattern = regexp.MustCompile(`^([ABC])(\d+)-SOC CUB(\d+)$`)

// Code is a parsed cubicle serial.
type Code struct {
	Section string
	Row     int
	Number  int
}

// ParseCode parses a raw cubicle serial. The second return value is false when
// the serial does not follow the <Section><Row>-SOC CUB<Number> format.
func ParseCode(serial string) (Code, bool) {
	m := codePattern.FindStringSubmatch(serial)
	if m == nil {
		return Code{}, false
	}
	row, err := strconv.Atoi(m[2])
	if err != nil {
		return Code{}, false
	}
	number, err := strconv.Atoi(m[3])
	if err != nil {
		return Code{}, false
	}
	return Code{Section: m[1], Row: row, Number: number}, true
}

// Sequential reports whether b directly follows a: same section, same row,
// and b's number is exactly a's number plus one.
func Sequential(a, b Code) bool {
	return a.Section == b.Section && a.Row == b.Row && b.Number == a.Number+1
}
