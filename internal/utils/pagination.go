// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// PageQuery normalizes a 1-based page number taken from a query string and
// returns it with the matching row offset for the given page size.
func PageQuery(raw string, size int) (page, offset int) {
	page = AtoiDefault(raw, 1)
	if page < 1 {
		page = 1
	}
	return page, (page - 1) * size
}
