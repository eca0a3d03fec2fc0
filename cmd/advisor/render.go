package main

import (
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"

	"agri-advisor/internal/common/config"
)

var (
	breakTag = regexp.MustCompile(`(?i)<br\s*/?>|</li>|</div>`)
	anyTag   = regexp.MustCompile(`<[^>]+>`)
)

// plainText flattens the rich-text replies for a terminal.
func plainText(s string) string {
	s = breakTag.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

type unknownFormError struct {
	name string
	cfg  *config.Config
}

func (e *unknownFormError) Error() string {
	names := make([]string, 0, len(e.cfg.Forms))
	for n := range e.cfg.Forms {
		names = append(names, n)
	}
	sort.Strings(names)
	return fmt.Sprintf("unknown form %q (configured: %s)", e.name, strings.Join(names, ", "))
}
