package cashew

import (
	"math/rand"
	"testing"
)

func BenchmarkInsertRandom(b *testing.B) {
	keys := rand.New(rand.NewSource(1)).Perm(b.N)
	s, err := NewOrdered[int32, Int32Slots]()
	if err != nil {
		b.Fatalf("setup failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Insert(int32(keys[i])); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCount(b *testing.B) {
	const n = 1 << 16
	s, err := NewOrdered[int32, Int32Slots]()
	if err != nil {
		b.Fatalf("setup failed: %v", err)
	}
	for _, k := range rand.New(rand.NewSource(1)).Perm(n) {
		if _, err := s.Insert(int32(k)); err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Count(int32(i % (2 * n)))
	}
}
