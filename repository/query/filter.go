// Package query composes storage predicates from optional filter
// criteria. Every provided criterion is ANDed; an absent criterion
// imposes no constraint. Callers never see SQL, only filter values.
package query

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/Kashyap-Pandya/book-rental-backend/util/dates"
)

const dialect = "postgres"

// ErrInvalidRange marks a date-range request with a missing or
// unparseable bound. Detected before any store access.
var ErrInvalidRange = errors.New("invalid date range")

// BookFilter carries the optional book search criteria.
// Zero value matches every book.
type BookFilter struct {
	Term     string   // case-insensitive substring of name
	Category string   // exact match
	MinRent  *float64 // rent_per_day >= MinRent
	MaxRent  *float64 // rent_per_day <= MaxRent
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (f BookFilter) expressions() []exp.Expression {
	var out []exp.Expression
	if f.Term != "" {
		out = append(out, goqu.C("name").ILike("%"+likeEscaper.Replace(f.Term)+"%"))
	}
	if f.Category != "" {
		out = append(out, goqu.C("category").Eq(f.Category))
	}
	if f.MinRent != nil {
		out = append(out, goqu.C("rent_per_day").Gte(*f.MinRent))
	}
	if f.MaxRent != nil {
		out = append(out, goqu.C("rent_per_day").Lte(*f.MaxRent))
	}
	return out
}

// Books builds the filtered book listing query.
func Books(f BookFilter) *goqu.SelectDataset {
	ds := goqu.Dialect(dialect).
		From("books").
		Select("id", "name", "category", "rent_per_day", "created_at", "updated_at").
		Order(goqu.C("created_at").Asc(), goqu.C("id").Asc())
	if exprs := f.expressions(); len(exprs) > 0 {
		ds = ds.Where(exprs...)
	}
	return ds
}

// DateRange is an inclusive issue-date window. Both bounds are
// mandatory; use ParseDateRange to construct one from request input.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange validates and parses both bounds together.
func ParseDateRange(start, end string) (DateRange, error) {
	if start == "" || end == "" {
		return DateRange{}, fmt.Errorf("%w: both startDate and endDate are required", ErrInvalidRange)
	}
	s, err := dates.Parse(start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: startDate %q", ErrInvalidRange, start)
	}
	e, err := dates.Parse(end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: endDate %q", ErrInvalidRange, end)
	}
	return DateRange{Start: s, End: e}, nil
}

// Expressions returns the window predicate against col,
// e.g. goqu.I("t.issue_date") for an aliased join.
func (r DateRange) Expressions(col exp.IdentifierExpression) []exp.Expression {
	return []exp.Expression{col.Gte(r.Start), col.Lte(r.End)}
}

// Dialect exposes the shared postgres builder for repositories that
// assemble their own join datasets.
func Dialect() goqu.DialectWrapper { return goqu.Dialect(dialect) }
