package cashew

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// DumpPalette holds the colors Dump uses on terminals.
type DumpPalette struct {
	Inner, Leaf, Thin, Info *color.Color
}

func makeDefaultPalette() DumpPalette {
	return DumpPalette{
		Inner: color.New(color.FgBlue),
		Leaf:  color.New(color.FgGreen),
		Thin:  color.New(color.FgRed, color.Bold),
		Info:  color.New(color.Faint),
	}
}

// Dump writes an indented listing of the tree's nodes to w, one node per line,
// keys in storage order (for debugging purposes). Output is colored if w is a
// terminal.
func (s *Set[K, A]) Dump(w io.Writer) error {
	return s.DumpWithPalette(w, makeDefaultPalette())
}

// DumpWithPalette is Dump with client-selected colors.
func (s *Set[K, A]) DumpWithPalette(w io.Writer, palette DumpPalette) error {
	colorize := isTerminal(w)
	for _, c := range []*color.Color{palette.Inner, palette.Leaf, palette.Thin, palette.Info} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	var buf bytes.Buffer
	palette.Info.Fprintf(&buf, "set of %d keys, depth %d, %d keys per node\n",
		s.size, s.depth, keyCapacity[K, A]())
	_ = s.each(func(n, parent *node[K, A], slot, depth int) error {
		buf.WriteString(strings.Repeat("  ", depth-1))
		if slot >= 0 {
			palette.Info.Fprintf(&buf, "%d: ", slot)
		}
		switch {
		case n.isLeaf():
			palette.Leaf.Fprint(&buf, keyList(n))
		case n.count() == 0:
			palette.Thin.Fprint(&buf, "[] thin")
		default:
			palette.Inner.Fprint(&buf, keyList(n))
		}
		buf.WriteByte('\n')
		return nil
	})
	_, err := w.Write(buf.Bytes())
	return err
}

func keyList[K any, A Slots[K]](n *node[K, A]) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < n.count(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, n.key(i))
	}
	b.WriteByte(']')
	return b.String()
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
