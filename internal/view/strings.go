package view

import (
	"strconv"
	"strings"
)

func itoa(n int) string { return strconv.Itoa(n) }

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
