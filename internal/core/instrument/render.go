package instrument

import (
	"fmt"
	"strconv"
	"strings"
)

// Args renders as a comma separated argument list
type Args []interface{}

// RenderInput renders call arguments the way Replay prints them between parentheses
func RenderInput(in interface{}) string {
	if args, ok := in.(Args); ok {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = renderValue(arg)
		}
		return strings.Join(parts, ", ")
	}
	return renderValue(in)
}

// RenderOutput renders a call result, or its error when the call failed
func RenderOutput(out interface{}, err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	return renderValue(out)
}

func renderValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(t)
	case []byte:
		return strconv.Quote(string(t))
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
