// Package scan reads typed values from text under a directive template,
// the inverse of package render, following the rules of a native C
// sscanf.
//
// White space in the template matches any amount of white space in the
// input, including none. Other literal text must match exactly. Each
// directive that is not suppressed with '*' stores into the next Slot:
//
//	var name string
//	var age int
//	n, err := scan.Sscanf("bob 42", "%s %d", scan.String(&name), scan.Int(&age))
//	// n == 2, err == nil
//
// Integers saturate at the range selected by the length modifier (hh 8
// bits, h 16, none 32, l and ll 64) and then at the range of the slot.
package scan

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/dfmt.v0/directive"
)

// Failed is the count reported when scanning stops on an error before any
// slot was assigned.
const Failed = -1

var (
	// ErrInputMismatch is returned when the input does not match literal
	// template text.
	ErrInputMismatch = errors.New("scan: input does not match template")
	// ErrInputExhausted is returned when the input ends before a
	// conversion could read anything.
	ErrInputExhausted = errors.New("scan: unexpected end of input")
	// ErrNoDigits is returned when a numeric conversion finds no number.
	ErrNoDigits = errors.New("scan: no digits")
	// ErrUnknownVerb is returned for a malformed directive.
	ErrUnknownVerb = directive.ErrUnknownVerb
	// ErrMissingSlot is returned when there are fewer slots than
	// directives to assign.
	ErrMissingSlot = errors.New("scan: missing slot")
	// ErrSlotType is returned when a slot cannot hold the value of the
	// directive it is matched with.
	ErrSlotType = errors.New("scan: wrong slot type")
	// ErrRange is returned when a value cannot be represented by its slot,
	// such as an infinity read into a Decimal.
	ErrRange = errors.New("scan: value out of range")
)

// Sscanf scans input under tmpl, storing into slots. It returns the
// number of slots assigned. When an error stops scanning before any
// assignment the count is Failed; otherwise it is the count so far.
func Sscanf(input, tmpl string, slots ...Slot) (int, error) {
	s := scanner{in: input, slots: slots}
	err := s.run(tmpl)
	if err != nil && s.count == 0 {
		return Failed, err
	}
	return s.count, err
}

// Fscanf reads r to the end and scans the text with Sscanf.
func Fscanf(r io.Reader, tmpl string, slots ...Slot) (int, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Failed, err
	}
	return Sscanf(string(b), tmpl, slots...)
}

// scanner is the cursor over one scan call.
type scanner struct {
	in    string
	pos   int
	slots []Slot
	next  int
	count int
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.in) && isSpace(s.in[s.pos]) {
		s.pos++
	}
}

// rest returns the unread input, cut to width when one is given.
func (s *scanner) rest(width int) string {
	r := s.in[s.pos:]
	if width != directive.Absent && width < len(r) {
		r = r[:width]
	}
	return r
}

func (s *scanner) slot() (Slot, error) {
	if s.next >= len(s.slots) {
		return Slot{}, fmt.Errorf("%w: slot %d", ErrMissingSlot, s.next+1)
	}
	sl := s.slots[s.next]
	s.next++
	return sl, nil
}

// literal matches template text against the input.
func (s *scanner) literal(lit string) error {
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if isSpace(c) {
			s.skipSpace()
			continue
		}
		if s.pos >= len(s.in) || s.in[s.pos] != c {
			return fmt.Errorf("%w: want %q at offset %d", ErrInputMismatch, c, s.pos)
		}
		s.pos++
	}
	return nil
}

func (s *scanner) run(tmpl string) error {
	p := directive.NewParser(tmpl)
	for !p.Done() {
		if err := s.literal(p.Literal()); err != nil {
			return err
		}
		if p.Done() {
			break
		}
		d, err := p.ParseScan()
		if err != nil {
			return err
		}
		if err := s.convert(d); err != nil {
			return err
		}
	}
	return nil
}

func (s *scanner) convert(d directive.Directive) error {
	if d.Kind == directive.Percent {
		s.skipSpace()
		return s.literal("%")
	}
	var sl Slot
	if !d.Suppress {
		var err error
		if sl, err = s.slot(); err != nil {
			return err
		}
	}
	var err error
	switch k := d.Kind; {
	case k == directive.Count:
		if !d.Suppress {
			err = storeCount(sl, s.pos)
		}
		return err
	case k == directive.Char:
		err = s.char(d, sl)
	case k == directive.String:
		err = s.str(d, sl)
	case k.IsInteger():
		err = s.integer(d, sl)
	case k.IsFloat():
		err = s.float(d, sl)
	}
	if err != nil {
		return err
	}
	if !d.Suppress {
		s.count++
	}
	return nil
}

func slotError(d directive.Directive, sl Slot) error {
	return fmt.Errorf("%w: %s into %s", ErrSlotType, d, sl.kind)
}

func storeCount(sl Slot, n int) error {
	switch sl.kind {
	case slotInt:
		sl.setInt(int64(n))
	case slotUint:
		sl.setUint(uint64(n))
	default:
		return fmt.Errorf("%w: %%n into %s", ErrSlotType, sl.kind)
	}
	return nil
}
