package directive

import (
	"errors"
	"math"
	"strings"

	"gopkg.in/dfmt.v0/dec"
)

// ErrUnknownVerb is returned when a directive ends in a character that is
// not a conversion kind, or the template ends inside a directive.
var ErrUnknownVerb = errors.New("directive: unknown conversion")

// maxLiteral caps literal widths and precisions; larger values saturate.
const maxLiteral = math.MaxInt32

// A Parser walks a template, returning literal text and directives in
// order. The cursor is explicit: each Parser owns its position and
// several Parsers over the same template are independent.
type Parser struct {
	tmpl string
	pos  int
}

// NewParser returns a Parser positioned at the start of tmpl.
func NewParser(tmpl string) *Parser {
	return &Parser{tmpl: tmpl}
}

// Done reports whether the whole template has been consumed.
func (p *Parser) Done() bool {
	return p.pos >= len(p.tmpl)
}

// Pos returns the byte offset of the cursor.
func (p *Parser) Pos() int {
	return p.pos
}

// Literal returns the text from the cursor up to the next '%' (or the end
// of the template) and advances past it. The result is empty when the
// cursor is already at a directive.
func (p *Parser) Literal() string {
	rest := p.tmpl[p.pos:]
	i := strings.IndexByte(rest, '%')
	if i < 0 {
		i = len(rest)
	}
	p.pos += i
	return rest[:i]
}

func (p *Parser) peek() byte {
	if p.pos < len(p.tmpl) {
		return p.tmpl[p.pos]
	}
	return 0
}

// number reads a run of decimal digits at the cursor.
func (p *Parser) number() (int, bool) {
	v, n, _ := dec.ScanUint(p.tmpl[p.pos:], 10, 0, maxLiteral)
	p.pos += n
	return int(v), n > 0
}

// length reads an optional length modifier, preferring two-character
// modifiers.
func (p *Parser) length() Length {
	rest := p.tmpl[p.pos:]
	switch {
	case strings.HasPrefix(rest, "hh"):
		p.pos += 2
		return LenChar
	case strings.HasPrefix(rest, "ll"):
		p.pos += 2
		return LenLongLong
	}
	switch p.peek() {
	case 'h':
		p.pos++
		return LenShort
	case 'l':
		p.pos++
		return LenLong
	case 'L':
		p.pos++
		return LenLongDouble
	}
	return LenDefault
}

// kind reads the conversion character.
func (p *Parser) kind() (Kind, error) {
	if p.Done() {
		return KindNone, ErrUnknownVerb
	}
	k := KindOf(p.tmpl[p.pos])
	if k == KindNone {
		return KindNone, ErrUnknownVerb
	}
	p.pos++
	return k, nil
}

// ParseRender parses the directive at the cursor, which must be at '%',
// using render syntax. A '*' width or precision calls fetch for the value;
// a negative width turns on left-justification and a negative precision
// counts as absent. Errors from fetch are returned unchanged.
func (p *Parser) ParseRender(fetch func() (int, error)) (Directive, error) {
	d := Directive{Width: Absent, Precision: Absent}
	p.pos++ // '%'
flags:
	for {
		switch p.peek() {
		case '-':
			d.Flags.Minus = true
		case '+':
			d.Flags.Plus = true
		case ' ':
			d.Flags.Space = true
		case '0':
			d.Flags.Zero = true
		case '#':
			d.Flags.Sharp = true
		default:
			break flags
		}
		p.pos++
	}

	if p.peek() == '*' {
		p.pos++
		w, err := fetch()
		if err != nil {
			return d, err
		}
		if w < 0 {
			d.Flags.Minus = true
			w = -w
		}
		d.Width = w
	} else if w, ok := p.number(); ok {
		d.Width = w
	}

	if p.peek() == '.' {
		p.pos++
		if p.peek() == '*' {
			p.pos++
			prec, err := fetch()
			if err != nil {
				return d, err
			}
			if prec >= 0 {
				d.Precision = prec
			}
		} else {
			d.Precision, _ = p.number()
		}
	}

	d.Length = p.length()
	var err error
	d.Kind, err = p.kind()
	return d, err
}

// ParseScan parses the directive at the cursor, which must be at '%',
// using scan syntax: an optional '*' suppressing assignment, an optional
// maximum field width, a length modifier and the conversion character.
func (p *Parser) ParseScan() (Directive, error) {
	d := Directive{Width: Absent, Precision: Absent}
	p.pos++ // '%'
	if p.peek() == '*' {
		p.pos++
		d.Suppress = true
	}
	if w, ok := p.number(); ok {
		d.Width = w
	}
	d.Length = p.length()
	var err error
	d.Kind, err = p.kind()
	return d, err
}

// ScanDirectives returns the directives of a scan template in order,
// skipping literal text.
func ScanDirectives(tmpl string) ([]Directive, error) {
	var ds []Directive
	p := NewParser(tmpl)
	for {
		p.Literal()
		if p.Done() {
			return ds, nil
		}
		d, err := p.ParseScan()
		if err != nil {
			return ds, err
		}
		ds = append(ds, d)
	}
}
