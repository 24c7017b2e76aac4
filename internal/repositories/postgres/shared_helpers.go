package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// baseRepository carries the root handle shared by every gorm store.
type baseRepository struct {
	db *gorm.DB
}

// getDB returns tx when the caller is inside a transaction.
func (r baseRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// handleDBError is a package-level helper for handling database errors
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern builds a lower-cased LIKE pattern for substring search.
// Wildcards in term match literally when used with likeEscape.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// likeEscape is the ESCAPE clause paired with containsPattern.
const likeEscape = ` ESCAPE '\'`

// applyPaginationAndSorting orders by a whitelisted column and pages the query.
// sortKeyToColumn maps API keys to SQL identifiers; unknown keys fall back to defaultKey.
func applyPaginationAndSorting(query *gorm.DB, sortKeyToColumn map[string]string, defaultKey, sortBy, sortDir string, limit, offset int) *gorm.DB {
	column, ok := sortKeyToColumn[sortBy]
	if !ok {
		column = sortKeyToColumn[defaultKey]
	}

	order := "ASC"
	if strings.EqualFold(sortDir, "desc") {
		order = "DESC"
	}

	// id breaks ties so pages stay stable
	query = query.Order(fmt.Sprintf("%s %s", column, order)).Order("id " + order)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}

// monthLabelExpr renders a timestamp column as YYYY-MM in the connected dialect.
func monthLabelExpr(db *gorm.DB, column string) string {
	switch db.Dialector.Name() {
	case "sqlite":
		return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
	default:
		return fmt.Sprintf("to_char(%s, 'YYYY-MM')", column)
	}
}
