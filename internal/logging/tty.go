package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether w is a terminal. Anything exposing Fd() is checked,
// which covers *os.File.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colour should be written to w.
func SupportsColor(w io.Writer) bool {
	return colorPolicy{lookupEnv: os.LookupEnv, isTTY: IsTTY}.enabled(w)
}

// colorPolicy applies NO_COLOR (https://no-color.org), FORCE_COLOR and
// TERM=dumb on top of terminal detection. NO_COLOR wins over FORCE_COLOR.
type colorPolicy struct {
	lookupEnv func(string) (string, bool)
	isTTY     func(io.Writer) bool
}

func (p colorPolicy) enabled(w io.Writer) bool {
	if _, ok := p.lookupEnv("NO_COLOR"); ok {
		return false
	}
	if v, ok := p.lookupEnv("FORCE_COLOR"); ok && v != "" && v != "0" {
		return true
	}
	if v, _ := p.lookupEnv("TERM"); v == "dumb" {
		return false
	}
	return p.isTTY(w)
}
