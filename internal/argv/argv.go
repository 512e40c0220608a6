// Package argv splits a process argument vector into positional tokens and
// an option map without knowing any declarations. Values stay strings except
// for bare flags, which become booleans; typing is left to the runner.
package argv

import (
	"slices"
	"strings"
)

// Parse tokenizes args.
//
//	--key=value    key: "value"
//	--key value    key: "value" when the next token is not a flag
//	--key          key: true
//	--no-key       key: false
//	-abc           a, b, c: true
//	-ab=c          a: true, b: "c"
//	-k value       k: "value"
//	--             everything after is positional
//
// Short flags are split per character, not per byte. A lone "-" is
// positional. Repeated options keep the last value. Because of the --no-
// form an option literally named "no-x" can only be set as --no-x=value.
func Parse(args []string) (positional []any, options map[string]any) {
	positional = []any{}
	options = map[string]any{}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			for _, rest := range args[i+1:] {
				positional = append(positional, rest)
			}
			return positional, options

		case strings.HasPrefix(arg, "--"):
			name := arg[2:]
			if key, value, ok := strings.Cut(name, "="); ok {
				options[key] = value
				continue
			}
			if key, ok := strings.CutPrefix(name, "no-"); ok && key != "" {
				options[key] = false
				continue
			}
			if i+1 < len(args) && !isFlag(args[i+1]) {
				options[name] = args[i+1]
				i++
				continue
			}
			options[name] = true

		case isFlag(arg):
			letters := []rune(arg[1:])
			var value string
			hasValue := false
			if eq := slices.Index(letters, '='); eq >= 0 {
				value, hasValue = string(letters[eq+1:]), true
				letters = letters[:eq]
			}
			if len(letters) == 0 {
				positional = append(positional, arg)
				continue
			}
			for _, r := range letters[:len(letters)-1] {
				options[string(r)] = true
			}
			last := string(letters[len(letters)-1])
			switch {
			case hasValue:
				options[last] = value
			case i+1 < len(args) && !isFlag(args[i+1]):
				options[last] = args[i+1]
				i++
			default:
				options[last] = true
			}

		default:
			positional = append(positional, arg)
		}
	}
	return positional, options
}

// isFlag reports whether tok starts an option. Negative numbers such as
// "-5" and the lone "-" are values.
func isFlag(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	if tok[1] == '-' {
		return true
	}
	c := tok[1]
	return !(c >= '0' && c <= '9') && c != '.'
}
