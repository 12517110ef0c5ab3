// Package script executes scanner operations given as text, one per line:
//
//	scan \w+
//	scan_until \d+
//	matched
//
// Each operation prints a result: quoted text, "nil" for a failed match or
// absent last match, a number, or a boolean.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/praetorian-inc/strscan/pkg/scanner"
)

// ErrUnknownOp is returned for an operation name Exec does not know.
var ErrUnknownOp = errors.New("unknown operation")

// Ops lists the supported operation names.
var Ops = []string{
	"scan", "scan_until", "check", "check_until", "skip", "skip_until",
	"getch", "pos", "terminate", "reset", "matched", "pre", "post",
	"group", "rest", "bol", "eos",
}

// Op is one operation with its argument, a pattern, position or group.
type Op struct {
	Name string `json:"op"`
	Arg  string `json:"arg,omitempty"`
}

func (o Op) String() string {
	if o.Arg == "" {
		return o.Name
	}
	return o.Name + " " + o.Arg
}

// Parse splits a script line into an operation. Everything after the first
// space is the argument, kept verbatim so patterns may contain spaces.
// Blank lines and # comments yield ok == false.
func Parse(line string) (Op, bool) {
	line = strings.TrimRight(line, "\r")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Op{}, false
	}
	name, arg, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	return Op{Name: name, Arg: arg}, true
}

// Run executes every operation in r against s, writing one
// "op => result" line per operation to out.
func Run(r io.Reader, s *scanner.Scanner, out io.Writer) error {
	lines := bufio.NewScanner(r)
	lineNo := 0
	for lines.Scan() {
		lineNo++
		op, ok := Parse(lines.Text())
		if !ok {
			continue
		}

		result, err := Exec(s, op)
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", lineNo, op.Name, err)
		}
		if _, err := fmt.Fprintf(out, "%s => %s\n", strings.TrimSpace(op.String()), result); err != nil {
			return err
		}
	}
	if err := lines.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return nil
}

// Exec applies one operation to s and formats its result. An empty pattern
// is passed through and matches the empty string at the cursor.
func Exec(s *scanner.Scanner, op Op) (string, error) {
	arg := op.Arg
	text := func(v string, ok bool) string {
		if !ok {
			return "nil"
		}
		return strconv.Quote(v)
	}

	switch op.Name {
	case "scan", "scan_until", "check", "check_until":
		var fn func(string) (string, bool, error)
		switch op.Name {
		case "scan":
			fn = s.Scan
		case "scan_until":
			fn = s.ScanUntil
		case "check":
			fn = s.Check
		default:
			fn = s.CheckUntil
		}
		v, ok, err := fn(arg)
		if err != nil {
			return "", err
		}
		return text(v, ok), nil

	case "skip", "skip_until":
		fn := s.Skip
		if op.Name == "skip_until" {
			fn = s.SkipUntil
		}
		n, ok, err := fn(arg)
		if err != nil {
			return "", err
		}
		if !ok {
			return "nil", nil
		}
		return strconv.Itoa(n), nil

	case "getch":
		return text(s.Getch()), nil

	case "pos":
		if strings.TrimSpace(arg) != "" {
			p, err := strconv.Atoi(strings.TrimSpace(arg))
			if err != nil {
				return "", fmt.Errorf("invalid position %q", arg)
			}
			if err := s.SetPos(p); err != nil {
				return "", err
			}
		}
		return strconv.Itoa(s.Pos()), nil

	case "terminate":
		s.Terminate()
		return strconv.Itoa(s.Pos()), nil

	case "reset":
		s.Reset()
		return strconv.Itoa(s.Pos()), nil

	case "matched":
		return text(s.Matched()), nil

	case "pre":
		return text(s.PreMatch()), nil

	case "post":
		return text(s.PostMatch()), nil

	case "group":
		name := strings.TrimSpace(arg)
		if i, err := strconv.Atoi(name); err == nil {
			return text(s.Group(i)), nil
		}
		return text(s.NamedGroup(name)), nil

	case "rest":
		return strconv.Quote(s.Rest()), nil

	case "bol":
		return strconv.FormatBool(s.BeginningOfLine()), nil

	case "eos":
		return strconv.FormatBool(s.EOS()), nil

	default:
		return "", ErrUnknownOp
	}
}
