package cashew

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteDot(t *testing.T) {
	defer redirectTracing(t)()
	//
	s := makeIntSet(t)
	for i := int32(1); s.Depth() < 3; i++ {
		mustInsert(t, s, i)
	}
	var buf bytes.Buffer
	if err := s.WriteDot(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dot := buf.String()
	t.Logf("\n%s", dot)
	if !strings.HasPrefix(dot, "strict digraph {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("not a DOT graph")
	}
	if !strings.Contains(dot, "#FFBB88") {
		t.Errorf("expected thin node to be highlighted")
	}
	if !strings.Contains(dot, "shape=circle") {
		t.Errorf("expected empty leaf to be drawn as circle")
	}
	// two root children, a full family under the left one, one empty leaf
	// under the thin right one
	want := 2 + keyCapacity[int32, Int32Slots]() + 1 + 1
	if n := strings.Count(dot, "->"); n != want {
		t.Errorf("expected %d edges, have %d", want, n)
	}
	// a tree has one node more than edges, each with its own id
	declared := map[string]bool{}
	for _, line := range strings.Split(dot, "\n") {
		if strings.HasPrefix(line, "\"") && !strings.Contains(line, "->") {
			id := line[:strings.Index(line[1:], "\"")+2]
			if declared[id] {
				t.Errorf("node id %s declared twice", id)
			}
			declared[id] = true
		}
	}
	if len(declared) != want+1 {
		t.Errorf("expected %d nodes, have %d", want+1, len(declared))
	}
}

func TestWriteDotEscapesRecordLabels(t *testing.T) {
	s, err := NewOrdered[string, StringSlots]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustInsert(t, s, `a|b{c}"d"`)
	var buf bytes.Buffer
	if err := s.WriteDot(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `a\|b\{c\}\"d\"`) {
		t.Errorf("label not escaped: %s", buf.String())
	}
}
