// Package hackathon maps the numeric hackathon tag carried by students to
// display names and parses the tag from query strings.
package hackathon

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// AllTag is the query value meaning "any hackathon".
const AllTag = "All"

// ErrInvalidTag is returned by ParseTag for values that are neither AllTag
// nor an integer.
var ErrInvalidTag = errors.New("invalid hackathon tag")

var names = map[int]string{
	1: "Hackathon-1",
	2: "Build-for-Telangana",
	3: "NIAT X Base44",
}

// Option is one selectable hackathon.
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Name returns the display name for count, falling back to "Hackathon-N".
func Name(count int) string {
	if n, ok := names[count]; ok {
		return n
	}
	return fmt.Sprintf("Hackathon-%d", count)
}

// Options lists the known hackathons ordered by count.
func Options() []Option {
	out := make([]Option, 0, len(names))
	for count, name := range names {
		out = append(out, Option{Value: count, Label: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// ParseTag converts a query value into a filter. A nil result means no
// filter.
func ParseTag(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == AllTag {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTag, s)
	}
	return &n, nil
}
