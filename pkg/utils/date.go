package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDate converte "YYYY-MM-DD" em data UTC. Texto vazio retorna nil.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, fmt.Errorf("data inválida %q, use o formato YYYY-MM-DD", dateStr)
	}

	return &date, nil
}

// ParseStringList divide "a, b,,c" em ["a", "b", "c"]. Texto vazio retorna lista vazia, nunca nil.
func ParseStringList(value string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseIntList converte "1,2,3" em [1 2 3]
func ParseIntList(value string) ([]int, error) {
	parts := ParseStringList(value)
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("número inválido %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}
