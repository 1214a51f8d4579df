package cashew

import (
	"fmt"
	"io"
	"strings"
)

// each calls f for every meaningful node of the tree in depth-first order,
// parents before children. slot is the node's index in its parent's family,
// -1 for the root.
func (s *Set[K, A]) each(f func(n, parent *node[K, A], slot, depth int) error) error {
	var walk func(n, parent *node[K, A], slot, depth int) error
	walk = func(n, parent *node[K, A], slot, depth int) error {
		if err := f(n, parent, slot, depth); err != nil {
			return err
		}
		kids := n.children()
		for c := 0; kids != nil && c <= n.count(); c++ {
			if err := walk(&kids[c], n, c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(&s.root, nil, -1, 1)
}

// WriteDot outputs the internal structure of a set in Graphviz DOT format
// (for debugging purposes). Keys are shown in storage order, which is not
// sorted. Nodes without keys but with children are highlighted.
func (s *Set[K, A]) WriteDot(w io.Writer) error {
	var nodelist, edgelist strings.Builder
	// each visits parents first, so a parent always has its id when its
	// children are drawn
	ids := make(map[*node[K, A]]int)
	err := s.each(func(n, parent *node[K, A], slot, depth int) error {
		ID := len(ids) + 1
		ids[n] = ID
		if parent != nil {
			fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\" [label=%d];\n", ids[parent], ID, slot)
		}
		if n.isEmpty() {
			fmt.Fprintf(&nodelist, "\"%d\" %s;\n", ID, emptyNode())
			return nil
		}
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", ID, dotKeys(n), nodeDotStyles(n))
		return nil
	})
	if err != nil {
		T().Errorf("cashew DOT: %s", err.Error())
		return err
	}
	var out strings.Builder
	out.WriteString("strict digraph {\n")
	out.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	out.WriteString(nodelist.String())
	out.WriteString(edgelist.String())
	out.WriteString("}\n")
	_, err = io.WriteString(w, out.String())
	return err
}

func dotKeys[K any, A Slots[K]](n *node[K, A]) string {
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i < n.count(); i++ {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(dotEscaper.Replace(fmt.Sprint(n.key(i))))
	}
	b.WriteByte('}')
	return b.String()
}

var dotEscaper = strings.NewReplacer(
	`\`, `\\`, `"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
)

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.2]"
}

func nodeDotStyles[K any, A Slots[K]](n *node[K, A]) string {
	s := ",shape=record,style=filled"
	switch {
	case n.isLeaf():
		s += ",fillcolor=white"
	case n.count() == 0:
		s += ",color=black,fillcolor=\"#FFBB88\""
	default:
		s += ",color=black,fillcolor=\"#a3d7e4\""
	}
	return s
}
