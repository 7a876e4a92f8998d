package repository

import (
	"fmt"
	"strings"

	"github.com/drivespace/drivespace/internal/model"
)

// FileFilter is a logical file-search request: category filter, name
// search, sort and result cap. The zero value means "everything the
// user can see, newest first".
type FileFilter struct {
	Types  []model.FileType
	Search string
	Sort   string // "<field>-<direction>", e.g. "size-asc"
	Limit  int    // no cap when <= 0
}

// sortColumns whitelists the fields a caller may sort by. Anything
// else falls back to creation time.
var sortColumns = map[string]string{
	"name":       "name",
	"size":       "size",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

const (
	defaultSortColumn    = "created_at"
	defaultSortDirection = "DESC"
)

// sortClause parses a "<field>-<direction>" sort spec. Direction "asc"
// sorts ascending; any other value sorts descending. An omitted or
// unknown field sorts by creation time, newest first.
func sortClause(sort string) string {
	column := defaultSortColumn
	direction := defaultSortDirection

	if sort != "" {
		field, dir, _ := strings.Cut(sort, "-")
		if col, ok := sortColumns[field]; ok {
			column = col
		}
		if dir == "asc" {
			direction = "ASC"
		}
	}

	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}

// sharedPredicate expands the JSON users column into rows the way the
// driver's database dialect requires. Both forms bind the caller's
// email as $2.
func sharedPredicate(driver string) string {
	if driver == "pgx" {
		return `EXISTS (SELECT 1 FROM json_array_elements_text(files.users::json) AS shared(email) WHERE shared.email = $2)`
	}
	return `EXISTS (SELECT 1 FROM json_each(files.users) WHERE json_each.value = $2)`
}

// buildFileQuery translates a search request into SQL for the given
// driver. The visibility scope is always the first predicate and
// cannot be bypassed: a file is returned only when user owns it or
// user's email is in its shared set.
func buildFileQuery(user *model.User, filter FileFilter, driver string) (string, []any) {
	var b strings.Builder
	args := []any{user.ID, user.Email}

	b.WriteString(`SELECT * FROM files WHERE (owner_id = $1 OR ` + sharedPredicate(driver) + `)`)

	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			args = append(args, t)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		b.WriteString(" AND type IN (" + strings.Join(placeholders, ", ") + ")")
	}

	if filter.Search != "" {
		args = append(args, filter.Search)
		fmt.Fprintf(&b, " AND name LIKE '%%' || $%d || '%%'", len(args))
	}

	b.WriteString(" " + sortClause(filter.Sort))

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}

	return b.String(), args
}
