package cliargs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopkg.in/dfmt.v0/render"
	"gopkg.in/dfmt.v0/scan"
)

func TestParseArg(t *testing.T) {
	tests := []struct {
		tok  string
		tmpl string
		want string
	}{
		{"i:42", "%d", "42"},
		{"i:-0x1f", "%d", "-31"},
		{"i:010", "%d", "8"},
		{"u:4294967295", "%u", "4294967295"},
		{"f:2.5", "%.2f", "2.50"},
		{"f:-1e3", "%g", "-1000"},
		{"L:0.125", "%.2Lf", "0.13"},
		{"c:x", "[%c]", "[x]"},
		{"lc:é", "%lc", "é"},
		{"s:hello world", "%s", "hello world"},
		{"s:", "[%s]", "[]"},
		{"ls:héllo", "%.3ls", "hé"},
		{"ls:héllo", "%.2ls", "h"},
		{"p:0xff", "%p", "0xff"},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			a, err := ParseArg(tt.tok)
			require.NoError(t, err)
			got, err := render.Sprintf(tt.tmpl, a)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgErrors(t *testing.T) {
	for _, tok := range []string{
		"42",
		"x:1",
		"i:",
		"i:12abc",
		"f:nope",
		"L:1.5.5",
		"c:ab",
		"lc:",
		"lc:ab",
		"p:zz",
	} {
		t.Run(tok, func(t *testing.T) {
			_, err := ParseArg(tok)
			assert.ErrorIs(t, err, ErrBadArg)
		})
	}
}

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs([]string{"s:n", "i:3"})
	require.NoError(t, err)
	got, err := render.Sprintf("%s=%d", args...)
	require.NoError(t, err)
	assert.Equal(t, "n=3", got)

	_, err = ParseArgs([]string{"s:n", "bad"})
	assert.ErrorIs(t, err, ErrBadArg)
}

func scanValues(t *testing.T, input, tmpl string) ([]string, int, error) {
	t.Helper()
	vals, err := SlotsFor(tmpl)
	require.NoError(t, err)
	slots := make([]scan.Slot, len(vals))
	for i, v := range vals {
		slots[i] = v.Slot
	}
	n, err := scan.Sscanf(input, tmpl, slots...)
	var out []string
	for _, v := range Assigned(vals, n) {
		out = append(out, v.Text())
	}
	return out, n, err
}

func TestSlotsFor(t *testing.T) {
	tests := []struct {
		input, tmpl string
		want        []string
	}{
		{"42 -7 0x1f", "%d %i %x", []string{"42", "-7", "31"}},
		{"-1", "%u", []string{"4294967295"}},
		{"abc xyz", "%s %*s%n", []string{"abc", "7"}},
		{"q", "%c", []string{"q"}},
		{"0.1 0.1 0.1", "%f %lf %Lf", []string{"0.1", "0.1", "0.1"}},
		{"1e400", "%lf", []string{"+Inf"}},
		{"0x10 100%", "%p %d%%", []string{"0x10", "100"}},
	}
	for _, tt := range tests {
		t.Run(tt.tmpl, func(t *testing.T) {
			got, _, err := scanValues(t, tt.input, tt.tmpl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssignedStopsAtFailure(t *testing.T) {
	got, n, err := scanValues(t, "7 x", "%d%n %d%n")
	assert.ErrorIs(t, err, scan.ErrNoDigits)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"7", "1"}, got)

	got, n, err = scanValues(t, "", "%d")
	assert.ErrorIs(t, err, scan.ErrInputExhausted)
	assert.Equal(t, scan.Failed, n)
	assert.Empty(t, got)
}

func TestSlotsForUnknownVerb(t *testing.T) {
	_, err := SlotsFor("%d %y")
	assert.ErrorIs(t, err, scan.ErrUnknownVerb)
}
