package urlstate

import (
	"errors"
	"fmt"
	"slices"

	"github.com/promptops/console/internal/platform/datatable"
	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// DecodeFilter parses an AIP-160 expression into table filters.
//
// The accepted shape is a conjunction of terms, each either `col:"text"` on a
// text column or `col = "v"` (optionally OR-ed over one column) on a
// multi-select column. A malformed expression yields no filters; terms that
// do not fit the registry are dropped individually.
func (c *Codec[T]) DecodeFilter(raw string) (datatable.Filters, error) {
	filter, err := filtering.ParseFilterString(raw, c.decls)
	if err != nil {
		return datatable.Filters{}, fmt.Errorf("parse filter: %w", err)
	}
	if filter.CheckedExpr == nil {
		return datatable.Filters{}, nil
	}

	d := filterDecoder[T]{reg: c.reg, filters: datatable.Filters{}}
	d.conjunction(filter.CheckedExpr.GetExpr())
	return d.filters, errors.Join(d.errs...)
}

type filterDecoder[T any] struct {
	reg     *datatable.Registry[T]
	filters datatable.Filters
	errs    []error
}

func (d *filterDecoder[T]) conjunction(e *expr.Expr) {
	call, ok := callOf(e)
	if !ok {
		d.errs = append(d.errs, fmt.Errorf("filter: unsupported term %T", e.GetExprKind()))
		return
	}
	switch call.Function {
	case "_&&_", "AND":
		for _, arg := range call.Args {
			d.conjunction(arg)
		}
	case "_||_", "OR":
		d.disjunction(call)
	case "_==_", "=":
		id, value, err := comparison(call)
		if err != nil {
			d.errs = append(d.errs, err)
			return
		}
		d.addValues(id, value)
	case ":":
		id, value, err := comparison(call)
		if err != nil {
			d.errs = append(d.errs, err)
			return
		}
		d.setText(id, value)
	default:
		d.errs = append(d.errs, fmt.Errorf("filter: unsupported function %s", call.Function))
	}
}

// disjunction accepts equalities on a single column only.
func (d *filterDecoder[T]) disjunction(call *expr.Expr_Call) {
	var (
		column string
		values []string
	)
	var walk func(args []*expr.Expr) error
	walk = func(args []*expr.Expr) error {
		for _, arg := range args {
			inner, ok := callOf(arg)
			if !ok {
				return fmt.Errorf("filter: unsupported OR operand %T", arg.GetExprKind())
			}
			switch inner.Function {
			case "_||_", "OR":
				if err := walk(inner.Args); err != nil {
					return err
				}
			case "_==_", "=":
				id, value, err := comparison(inner)
				if err != nil {
					return err
				}
				if column != "" && column != id {
					return fmt.Errorf("filter: OR across columns %q and %q", column, id)
				}
				column = id
				values = append(values, value)
			default:
				return fmt.Errorf("filter: unsupported OR operand %s", inner.Function)
			}
		}
		return nil
	}
	if err := walk(call.Args); err != nil {
		d.errs = append(d.errs, err)
		return
	}
	d.addValues(column, values...)
}

func (d *filterDecoder[T]) setText(id, text string) {
	column, ok := d.reg.Get(id)
	if !ok || !column.Filterable || column.FilterKind != datatable.FilterText {
		d.errs = append(d.errs, fmt.Errorf("filter: column %q does not accept text filters", id))
		return
	}
	if text == "" {
		return
	}
	d.filters[id] = datatable.TextFilter(text)
}

func (d *filterDecoder[T]) addValues(id string, values ...string) {
	column, ok := d.reg.Get(id)
	if !ok || !column.Filterable || column.FilterKind != datatable.FilterMultiSelect {
		d.errs = append(d.errs, fmt.Errorf("filter: column %q does not accept value filters", id))
		return
	}
	merged := slices.Clone(d.filters[id].Values)
	for _, value := range values {
		if !slices.Contains(merged, value) {
			merged = append(merged, value)
		}
	}
	d.filters[id] = datatable.MultiSelectFilter(merged...)
}

func callOf(e *expr.Expr) (*expr.Expr_Call, bool) {
	kind, ok := e.GetExprKind().(*expr.Expr_CallExpr)
	if !ok {
		return nil, false
	}
	return kind.CallExpr, true
}

// comparison extracts `ident op "string"` operands.
func comparison(call *expr.Expr_Call) (string, string, error) {
	if len(call.Args) != 2 {
		return "", "", fmt.Errorf("filter: %s requires 2 arguments", call.Function)
	}
	ident, ok := call.Args[0].GetExprKind().(*expr.Expr_IdentExpr)
	if !ok {
		return "", "", fmt.Errorf("filter: expected column name, got %T", call.Args[0].GetExprKind())
	}
	constant, ok := call.Args[1].GetExprKind().(*expr.Expr_ConstExpr)
	if !ok {
		return "", "", fmt.Errorf("filter: expected constant for %s", ident.IdentExpr.GetName())
	}
	value, ok := constant.ConstExpr.GetConstantKind().(*expr.Constant_StringValue)
	if !ok {
		return "", "", fmt.Errorf("filter: expected string constant for %s", ident.IdentExpr.GetName())
	}
	return ident.IdentExpr.GetName(), value.StringValue, nil
}
