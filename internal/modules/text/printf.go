package text

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mshell/internal/core"
)

var errUnterminatedFormat = errors.New("unterminated format string")

func printf(ctx context.Context, env *core.Env, args []string) error {
	if len(args) == 0 {
		return core.Usage(`printf "string<%s, %d, %f>" [arg...]`)
	}
	format, fargs, err := splitFormat(strings.Join(args, " "))
	if err != nil {
		return err
	}
	out, err := formatString(format, fargs)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Formatted: %s\n", out)
	return nil
}

// splitFormat выделяет формат между первой парой кавычек; остаток
// делится на аргументы по пробелам. Без кавычек форматом считается
// первое слово.
func splitFormat(input string) (string, []string, error) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, `"`) {
		fields := core.Tokenize(input)
		return fields[0], fields[1:], nil
	}
	end := strings.IndexByte(input[1:], '"')
	if end < 0 {
		return "", nil, errUnterminatedFormat
	}
	format := input[1 : end+1]
	return format, core.Tokenize(input[end+2:]), nil
}

func formatString(format string, args []string) (string, error) {
	var b strings.Builder
	argIndex := 0
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '%' {
			b.WriteRune(c)
			continue
		}
		if i+1 >= len(runes) {
			return "", errors.New("incomplete format specifier")
		}
		i++
		spec := runes[i]
		if spec == '%' {
			b.WriteByte('%')
			continue
		}
		if argIndex >= len(args) {
			return "", fmt.Errorf("missing argument for %%%c", spec)
		}
		arg := args[argIndex]
		switch spec {
		case 'd', 'i':
			if _, err := strconv.ParseInt(arg, 10, 64); err != nil {
				return "", fmt.Errorf("expected integer for %%%c, got '%s'", spec, arg)
			}
		case 'f':
			if _, err := strconv.ParseFloat(arg, 64); err != nil {
				return "", fmt.Errorf("expected float for %%%c, got '%s'", spec, arg)
			}
		case 's':
		default:
			return "", fmt.Errorf("unsupported format specifier: %%%c", spec)
		}
		b.WriteString(arg)
		argIndex++
	}
	if argIndex < len(args) {
		return "", fmt.Errorf("too many arguments: expected %d, got %d", argIndex, len(args))
	}
	return b.String(), nil
}
