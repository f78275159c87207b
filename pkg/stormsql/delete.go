package stormsql

import (
	"github.com/asdine/storm/v3/q"
	"github.com/pkg/errors"
	"github.com/xwb1989/sqlparser"
)

// A DeleteClause contains the parsed data of a DELETE statement.
type DeleteClause struct {
	Tablename string
	Matcher   q.Matcher
}

// ParseDelete parses the given DELETE statement.
// A WHERE clause is mandatory: an unqualified DELETE is rejected.
func ParseDelete(sql string) (*DeleteClause, error) {
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse SQL")
	}

	d, ok := stmt.(*sqlparser.Delete)
	if !ok {
		return nil, errors.New("not a delete statement")
	}

	if d.Where == nil {
		return nil, errors.New("delete without a where clause is not allowed")
	}

	// DELETE FROM whispers WHERE ...
	return &DeleteClause{
		Tablename: sqlparser.GetTableName(d.TableExprs[0].(*sqlparser.AliasedTableExpr).Expr).String(),
		Matcher:   parseWhereExpr(d.Where.Expr),
	}, nil
}
