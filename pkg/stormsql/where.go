package stormsql

import (
	"fmt"
	"strconv"

	"github.com/araddon/dateparse"
	"github.com/asdine/storm/v3/q"
	"github.com/xwb1989/sqlparser"
)

// FIXME replace panic by returned errors
func parseWhereExpr(expr sqlparser.Expr) q.Matcher {
	switch v := expr.(type) {
	//
	//
	//
	case *sqlparser.ComparisonExpr:
		field := v.Left.(*sqlparser.ColName).Name.String()
		var value any

		// Parse value
		switch sqlvalue := v.Right.(type) {
		case sqlparser.BoolVal:
			value = sqlvalue
		case sqlparser.ValTuple:
			var tuple []any
			for _, t := range sqlvalue {
				tuple = append(tuple, parseSQLVal(t.(*sqlparser.SQLVal)))
			}
			value = tuple
		case *sqlparser.SQLVal:
			value = parseSQLVal(sqlvalue)
		default:
			fmt.Printf("%#v\n", v)
			panic("unsupported Val")
		}

		// Parse operator
		switch v.Operator {
		case "=":
			return q.Eq(field, value)
		case "!=":
			return q.Not(q.Eq(field, value))
		case ">":
			return q.Gt(field, value)
		case ">=":
			return q.Gte(field, value)
		case "in":
			return q.In(field, value)
		case "<":
			return q.Lt(field, value)
		case "<=":
			return q.Lte(field, value)
		case "like":
			return q.Re(field, fmt.Sprintf("%v", value))
		default:
			fmt.Printf("%#v\n", v.Operator)
			panic("unsupported Operator")
		}
		//
		//
		//
	case *sqlparser.IsExpr:
		switch v.Operator {
		case "is not null":
			return q.Not(q.Eq(v.Expr.(*sqlparser.ColName).Name.String(), nil))
		default:
			fmt.Printf("%#v\n", v)
			panic("unsupported IsExpr")
		}
		//
		//
		//
	case *sqlparser.AndExpr:
		return q.And(
			parseWhereExpr(v.Left),
			parseWhereExpr(v.Right),
		)
		//
		//
		//
	case *sqlparser.OrExpr:
		return q.Or(
			parseWhereExpr(v.Left),
			parseWhereExpr(v.Right),
		)
		//
		//
		//
	default:
		fmt.Printf("%#v\n", v)
		panic("unsupported where expr type")
	}
}

func parseSQLVal(v *sqlparser.SQLVal) (value any) {
	switch v.Type {
	case sqlparser.StrVal:
		value = string(v.Val)

		// Try to convert to time.Time if possible
		if t, err := dateparse.ParseAny(string(v.Val)); err == nil {
			value = t.UTC()
		}
	case sqlparser.IntVal:
		value, _ = strconv.Atoi(string(v.Val))
	case sqlparser.FloatVal:
		value, _ = strconv.ParseFloat(string(v.Val), 64)
	case sqlparser.HexNum:
		value, _ = strconv.ParseInt(string(v.Val), 16, 64)
	case sqlparser.HexVal:
		b, err := v.HexDecode()
		if err != nil {
			panic(err)
		}
		value = b
	case sqlparser.ValArg:
		panic("unsupported ValArg") // TODO
	case sqlparser.BitVal:
		value = v.Val[0] == 1
	}

	return value
}
