package repository

import (
	"strings"

	"gorm.io/gorm"
)

// MaxPageSize is the maximum allowed page size for paginated queries
const MaxPageSize = 200

// DefaultPageSize is used when the caller passes a non-positive page size
const DefaultPageSize = 20

// NormalizePagination clamps page and page size to sane bounds
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// paginate applies offset and limit for a 1-based page
func paginate(query *gorm.DB, page, pageSize int) *gorm.DB {
	page, pageSize = NormalizePagination(page, pageSize)
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}

// NormalizeSearchTerm lowercases, trims and collapses inner whitespace
func NormalizeSearchTerm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// containsPattern builds a LIKE pattern matching a normalized term anywhere in a column.
// Wildcards in the term are escaped with a backslash.
func containsPattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(NormalizeSearchTerm(term)) + "%"
}

// likeLower is a case-insensitive LIKE condition on a column using backslash escapes
func likeLower(column string) string {
	return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
}
