package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Message is a localized template. Placeholders are positional: {0}, {1}, ...
type Message string

// Format substitutes args into the template. Placeholders without a matching
// argument are left untouched.
func (m Message) Format(args ...any) string {
	if len(args) == 0 {
		return string(m)
	}
	pairs := make([]string, 0, 2*len(args))
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", fmt.Sprint(arg))
	}
	return strings.NewReplacer(pairs...).Replace(string(m))
}

func (m Message) String() string {
	return string(m)
}
