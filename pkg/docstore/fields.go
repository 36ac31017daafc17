package docstore

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fields is a merge payload keyed by column name. Values are either plain
// values, written as-is, or one of the field transforms below.
type Fields map[string]any

type arrayUnion struct {
	values []string
}

type increment struct {
	by int64
}

// ArrayUnion appends values to a string-set column, skipping any already present.
// Applying it twice with the same values leaves the column unchanged.
func ArrayUnion(values ...string) any {
	return arrayUnion{values: values}
}

// Increment adds by to a numeric column in the database.
func Increment(by int64) any {
	return increment{by: by}
}

// resolve turns a merge payload into GORM update values. current holds the
// locked row as read from the database, keyed by column name.
func (f Fields) resolve(current map[string]any) (map[string]any, error) {
	values := make(map[string]any, len(f))
	for column, v := range f {
		switch t := v.(type) {
		case arrayUnion:
			var set StringSet
			if err := set.Scan(current[column]); err != nil {
				return nil, fmt.Errorf("column %s is not a string set: %w", column, err)
			}
			values[column] = set.Union(t.values...)
		case increment:
			values[column] = gorm.Expr("? + ?", clause.Column{Name: column}, t.by)
		default:
			values[column] = v
		}
	}
	return values, nil
}
