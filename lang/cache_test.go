package lang

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"testing/iotest"
)

func TestParseString_Cached(t *testing.T) {
	ClearCache()

	ctx := context.Background()
	src := "fn f(x) { x * 2 } fn g() { f(3) }"

	first, err := ParseString(ctx, src)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	second, err := ParseString(ctx, src)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	if first != second {
		t.Error("expected the cached program to be reused")
	}

	ClearCache()

	third, err := ParseString(ctx, src)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	if third == first {
		t.Error("expected a fresh program after ClearCache")
	}

	if third.String() != first.String() {
		t.Errorf("re-parse differs: %s vs %s", third, first)
	}
}

func TestParseString_CachedFailure(t *testing.T) {
	ClearCache()

	ctx := context.Background()

	for range 2 {
		prog, err := ParseString(ctx, "fn f() {")
		if !errors.Is(err, ErrUnmatchedBrace) {
			t.Fatalf("error = %v, want ErrUnmatchedBrace", err)
		}

		if prog != nil {
			t.Fatal("expected no program on failure")
		}
	}
}

func TestParseString_WithoutCache(t *testing.T) {
	ClearCache()

	ctx := context.Background()
	src := "fn f() { 1 }"

	first, err := ParseString(ctx, src, WithCache(false))
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	second, err := ParseString(ctx, src, WithCache(false))
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	if first == second {
		t.Error("expected distinct programs when caching is disabled")
	}
}

func TestParseString_MaxDepth(t *testing.T) {
	ClearCache()

	ctx := context.Background()
	src := "fn f() { ((1)) }"

	if _, err := ParseString(ctx, src, WithMaxDepth(3)); err != nil {
		t.Fatalf("depth 3 should suffice: %v", err)
	}

	_, err := ParseString(ctx, src, WithMaxDepth(2))
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("error = %v, want ErrMaxDepthExceeded", err)
	}

	// The bound is part of the cache key.
	if _, err := ParseString(ctx, src); err != nil {
		t.Fatalf("default parse failed: %v", err)
	}
}

func TestParseString_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ParseString(ctx, "fn f() { 1 }"); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestParseString_Concurrent(t *testing.T) {
	ClearCache()

	ctx := context.Background()
	src := "fn f(a, b) { lambda c { a + b * c } }"

	var (
		wg    sync.WaitGroup
		progs = make([]*Program, 16)
	)

	for i := range progs {
		wg.Add(1)

		go func() {
			defer wg.Done()

			prog, err := ParseString(ctx, src)
			if err != nil {
				t.Errorf("ParseString error: %v", err)

				return
			}

			progs[i] = prog
		}()
	}

	wg.Wait()

	for i, prog := range progs {
		if prog != progs[0] {
			t.Errorf("goroutine %d got a different program", i)
		}
	}
}

func TestParseReader(t *testing.T) {
	ClearCache()

	ctx := context.Background()
	src := "fn f() { 1 }\nfn g() { f() + 2 }\n"

	prog, err := ParseReader(ctx, strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}

	if got := prog.Names(); len(got) != 2 || got[0] != "f" || got[1] != "g" {
		t.Errorf("Names() = %v, want [f g]", got)
	}

	cached, err := ParseString(ctx, src)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	if cached != prog {
		t.Error("expected ParseReader and ParseString to share the cache")
	}
}

func TestParseReader_ReadError(t *testing.T) {
	boom := errors.New("boom")

	_, err := ParseReader(context.Background(), iotest.ErrReader(boom))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("error = %v, want ErrReadInput", err)
	}

	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want it to wrap the reader error", err)
	}
}

func BenchmarkParse(b *testing.B) {
	src := strings.Repeat("fn f(a, b) { g(a)(b, 1) + lambda x y { x * y - a / b } }\n", 64)

	b.ReportAllocs()

	for b.Loop() {
		if _, err := Parse(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseString_Cached(b *testing.B) {
	ClearCache()

	ctx := context.Background()
	src := strings.Repeat("fn f(a, b) { g(a)(b, 1) + lambda x y { x * y - a / b } }\n", 64)

	if _, err := ParseString(ctx, src); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	for b.Loop() {
		if _, err := ParseString(ctx, src); err != nil {
			b.Fatal(err)
		}
	}
}
