package types

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Env maps alias names to type expressions.
// Example: {"Point": NamedTuple(Field{"x", Int()}, Field{"y", Int()})}
type Env map[string]Type

// Parse converts the textual notation of a type into a Type.
//
// Supported forms: any, null, bool, event, int, machine, model,
// "foreign Tag", "seq[T]", "map[K, V]", "(T1, ..., Tn)" and
// "(a: T1, ..., z: Tn)".
func Parse(input string) (Type, error) {
	return ParseWith(input, nil)
}

// MustParse is like Parse but panics on error. It is meant for tests and
// package-level type declarations.
func MustParse(input string) Type {
	t, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseWith parses input, resolving bare identifiers through env.
func ParseWith(input string, env Env) (Type, error) {
	p := &parser{input: input, env: env}
	p.next()
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %q after type", p.tok.text)
	}
	return t, nil
}

// ParseEnv converts a map of alias names to type strings into an Env.
// Aliases may refer to each other in any order; cycles are reported as errors.
// Example: {"Point": "(x: int, y: int)", "Path": "seq[Point]"}
func ParseEnv(typeMap map[string]string) (Env, error) {
	env := make(Env, len(typeMap))
	pending := make([]string, 0, len(typeMap))
	for name := range typeMap {
		if _, builtin := keywords[name]; builtin {
			return nil, fmt.Errorf("alias %s: shadows a built-in type", name)
		}
		pending = append(pending, name)
	}
	sort.Strings(pending)

	for len(pending) > 0 {
		var (
			rest    []string
			lastErr error
		)
		for _, name := range pending {
			t, err := ParseWith(typeMap[name], env)
			if err != nil {
				rest = append(rest, name)
				lastErr = fmt.Errorf("alias %s: %w", name, err)
				continue
			}
			env[name] = t
		}
		if len(rest) == len(pending) {
			return nil, lastErr
		}
		pending = rest
	}
	return env, nil
}

var keywords = map[string]Type{
	"any":     anyType,
	"null":    nullType,
	"bool":    boolType,
	"event":   eventType,
	"int":     intType,
	"machine": machineType,
	"model":   modelType,
	"foreign": nil,
	"seq":     nil,
	"map":     nil,
}

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokIdent
	tokPunct
	tokInvalid
)

type token struct {
	kind tokKind
	text string
	pos  int
}

type parser struct {
	input string
	env   Env
	off   int
	tok   token
}

func (p *parser) next() {
	for p.off < len(p.input) && unicode.IsSpace(rune(p.input[p.off])) {
		p.off++
	}
	start := p.off
	if p.off >= len(p.input) {
		p.tok = token{kind: tokEOF, pos: start}
		return
	}
	c := p.input[p.off]
	switch {
	case strings.IndexByte("()[],:", c) >= 0:
		p.off++
		p.tok = token{kind: tokPunct, text: string(c), pos: start}
	case isIdentByte(c, true):
		for p.off < len(p.input) && isIdentByte(p.input[p.off], false) {
			p.off++
		}
		p.tok = token{kind: tokIdent, text: p.input[start:p.off], pos: start}
	default:
		p.off++
		p.tok = token{kind: tokInvalid, text: string(c), pos: start}
	}
}

// peek returns the token after the current one without consuming anything.
func (p *parser) peek() token {
	saved, savedOff := p.tok, p.off
	p.next()
	t := p.tok
	p.tok, p.off = saved, savedOff
	return t
}

func isIdentByte(c byte, first bool) bool {
	if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return true
	}
	return !first && c >= '0' && c <= '9'
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Input: p.input, Pos: p.tok.pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(punct string) error {
	if p.tok.kind != tokPunct || p.tok.text != punct {
		if p.tok.kind == tokEOF {
			return p.errorf("expected %q, got end of input", punct)
		}
		return p.errorf("expected %q, got %q", punct, p.tok.text)
	}
	p.next()
	return nil
}

func (p *parser) parseType() (Type, error) {
	switch p.tok.kind {
	case tokEOF:
		return nil, p.errorf("expected type, got end of input")
	case tokInvalid:
		return nil, p.errorf("unexpected character %q", p.tok.text)
	case tokPunct:
		if p.tok.text == "(" {
			return p.parseTuple()
		}
		return nil, p.errorf("expected type, got %q", p.tok.text)
	}

	name := p.tok.text
	p.next()
	switch name {
	case "foreign":
		if p.tok.kind != tokIdent {
			return nil, p.errorf("expected foreign tag")
		}
		tag := p.tok.text
		p.next()
		return Foreign(tag), nil
	case "seq":
		if err := p.expect("["); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		return Seq(elem), nil
	case "map":
		if err := p.expect("["); err != nil {
			return nil, err
		}
		key, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(","); err != nil {
			return nil, err
		}
		val, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		return Map(key, val), nil
	}

	if t := keywords[name]; t != nil {
		return t, nil
	}
	if t, ok := p.env[name]; ok {
		return t, nil
	}
	return nil, &ParseError{Input: p.input, Pos: p.off - len(name), Reason: fmt.Sprintf("unknown type %q", name)}
}

func (p *parser) parseTuple() (Type, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}

	var (
		elems  []Type
		fields []Field
		named  = p.tok.kind == tokIdent && p.peek().text == ":"
		seen   = make(map[string]bool)
	)
	for {
		if named {
			if p.tok.kind != tokIdent {
				return nil, p.errorf("expected field name")
			}
			name := p.tok.text
			if seen[name] {
				return nil, p.errorf("duplicate field %q", name)
			}
			seen[name] = true
			p.next()
			if err := p.expect(":"); err != nil {
				return nil, err
			}
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Name: name, Type: t})
		} else {
			if p.tok.kind == tokIdent && p.peek().text == ":" {
				return nil, p.errorf("cannot mix named and unnamed tuple elements")
			}
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			elems = append(elems, t)
		}

		if p.tok.kind == tokPunct && p.tok.text == "," {
			p.next()
			continue
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		break
	}

	if named {
		return &NamedTupleType{Fields: fields}, nil
	}
	return &TupleType{Elems: elems}, nil
}
