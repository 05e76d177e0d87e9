package cmd

import (
	"reflect"
	"strings"

	"github.com/ardnew/lamb/lang"
)

// ConfigValues extracts flag values from a configuration program.
//
// Each parameterless definition whose body is an identifier or an integer
// sets the flag named by the definition: namespace and name are joined with
// a hyphen and underscores become hyphens, so both
//
//	fn log::level() { debug }
//	fn log_level() { debug }
//
// set --log-level=debug. The identifiers true and false yield booleans;
// integers are kept as their decimal text. Any other definition is ignored.
// When a name is defined more than once, the last definition wins.
func ConfigValues(prog *lang.Program) map[string]any {
	values := make(map[string]any)

	for fd := range prog.All() {
		if len(fd.Params) > 0 {
			continue
		}

		var value any

		switch body := fd.Body.(type) {
		case *lang.Ident:
			switch s := body.String(); s {
			case "true":
				value = true
			case "false":
				value = false
			default:
				value = s
			}

		case *lang.IntegerLiteral:
			value = body.Text

		default:
			continue
		}

		values[flagName(fd.Name)] = value
	}

	return values
}

// flagName returns the flag that a configuration identifier sets.
func flagName(id *lang.Ident) string {
	name := hyphenate(id.Name)
	if id.IsQualified() {
		name = hyphenate(id.Namespace) + "-" + name
	}

	return name
}

// configIdent returns the identifier that sets flag. A flag in a group
// prefixed by the group key is namespaced by that key.
func configIdent(flag, group string) *lang.Ident {
	if group != "" {
		if rest, ok := strings.CutPrefix(flag, group+"-"); ok && rest != "" {
			return &lang.Ident{Namespace: underscore(group), Name: underscore(rest)}
		}
	}

	return &lang.Ident{Name: underscore(flag)}
}

// configExpr returns the expression representing a flag value, or false if
// the value has no representation in the language.
func configExpr(value any) (lang.Expr, bool) {
	if value == nil {
		return nil, false
	}

	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return lang.NewIdent("true"), true
		}

		return lang.NewIdent("false"), true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Int() < 0 {
			return nil, false
		}

		return lang.NewInteger(v.Int()), true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Uint() > 1<<63-1 {
			return nil, false
		}

		return lang.NewInteger(int64(v.Uint())), true

	case reflect.String:
		s := v.String()
		if !isIdent(s) {
			return nil, false
		}

		return lang.NewIdent(s), true

	default:
		return nil, false
	}
}

// isIdent reports whether s is exactly one identifier.
func isIdent(s string) bool {
	e, err := lang.ParseExpr(s)
	if err != nil {
		return false
	}

	id, ok := e.(*lang.Ident)

	return ok && id.String() == s
}

func hyphenate(s string) string { return strings.ReplaceAll(s, "_", "-") }

func underscore(s string) string { return strings.ReplaceAll(s, "-", "_") }
