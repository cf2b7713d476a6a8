package eval

import (
	"github.com/expr-lang/expr"
	"github.com/signadot/configurator/node"
	"github.com/signadot/configurator/value"
)

func exprOpts(doc value.Value, o *options) []expr.Option {
	return []expr.Option{
		expr.Function("getpath", func(params ...any) (any, error) {
			p, err := node.ParsePath(params[0].(string))
			if err != nil {
				return nil, err
			}
			res, err := GetPath(doc, p)
			if err != nil {
				return nil, err
			}
			return ToAny(res)
		},
			new(func(string) any)),
		expr.Function("listpath", func(params ...any) (any, error) {
			p, err := node.ParsePath(params[0].(string))
			if err != nil {
				return nil, err
			}
			vRes := ListPath(doc, p)
			res := make([]any, len(vRes))
			for i := range vRes {
				a, err := ToAny(vRes[i])
				if err != nil {
					return nil, err
				}
				res[i] = a
			}
			return res, nil
		},
			new(func(string) []any)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return o.getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
