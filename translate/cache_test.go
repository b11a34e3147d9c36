package translate_test

import (
	"testing"

	schematype "github.com/reoring/schematype"
	"github.com/reoring/schematype/translate"
	"github.com/reoring/schematype/typeexpr"
)

func TestCache_StableAcrossRepeatedLookups(t *testing.T) {
	id := schematype.FileIdentity("/tmp/a.json")
	cache := translate.NewCache(nil)
	computes := 0
	compute := func() (typeexpr.Expr, error) {
		computes++
		return &typeexpr.Primitive{Name: typeexpr.String}, nil
	}

	a, err := cache.GetOrCompute(id, []string{"x"}, compute)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, err := cache.GetOrCompute(id, []string{"x"}, compute)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if computes != 1 {
		t.Fatalf("expected a single compute, got %d", computes)
	}
	if !typeexpr.Equal(a, b) {
		t.Fatalf("cached results should be structurally identical")
	}
}

func TestCache_KeyPathsArePartitioned(t *testing.T) {
	id := schematype.FileIdentity("/tmp/a.json")
	cache := translate.NewCache(nil)
	_, _ = cache.GetOrCompute(id, []string{"x"}, func() (typeexpr.Expr, error) {
		return &typeexpr.Primitive{Name: typeexpr.String}, nil
	})
	got, _ := cache.GetOrCompute(id, []string{"y"}, func() (typeexpr.Expr, error) {
		return &typeexpr.Primitive{Name: typeexpr.Number}, nil
	})
	if !typeexpr.Equal(got, &typeexpr.Primitive{Name: typeexpr.Number}) {
		t.Fatalf("distinct key paths must not share entries")
	}
}

func TestCache_MarkerChangeRecomputesOnce(t *testing.T) {
	id := schematype.FileIdentity("/tmp/a.json")
	marker := "v1"
	cache := translate.NewCache(func(schematype.Identity) string { return marker })
	computes := 0
	compute := func() (typeexpr.Expr, error) {
		computes++
		if computes > 1 {
			return &typeexpr.Primitive{Name: typeexpr.Number}, nil
		}
		return &typeexpr.Primitive{Name: typeexpr.String}, nil
	}

	first, _ := cache.GetOrCompute(id, nil, compute)
	_, _ = cache.GetOrCompute(id, nil, compute)
	if computes != 1 {
		t.Fatalf("unchanged marker should not recompute, got %d computes", computes)
	}

	marker = "v2"
	second, _ := cache.GetOrCompute(id, nil, compute)
	third, _ := cache.GetOrCompute(id, nil, compute)
	if computes != 2 {
		t.Fatalf("changed marker should recompute exactly once, got %d computes", computes)
	}
	if typeexpr.Equal(first, second) {
		t.Fatalf("recomputed entry may differ from the first")
	}
	if !typeexpr.Equal(second, third) {
		t.Fatalf("recomputed entry should be stable again")
	}
}

func TestCache_RecursiveLookupForDifferentKeyDoesNotDeadlock(t *testing.T) {
	id := schematype.FileIdentity("/tmp/a.json")
	cache := translate.NewCache(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = cache.GetOrCompute(id, []string{"outer"}, func() (typeexpr.Expr, error) {
			// Same goroutine re-enters the cache for another key, the way a
			// $ref resolution may during translation.
			inner, err := cache.GetOrCompute(id, []string{"inner"}, func() (typeexpr.Expr, error) {
				return &typeexpr.Primitive{Name: typeexpr.Boolean}, nil
			})
			if err != nil {
				return nil, err
			}
			return &typeexpr.Array{Elem: inner}, nil
		})
	}()
	<-done

	if cache.Len() != 2 {
		t.Fatalf("expected both entries cached, got %d", cache.Len())
	}
}

func TestCache_InvalidateDropsAllPathsForIdentity(t *testing.T) {
	a := schematype.FileIdentity("/tmp/a.json")
	b := schematype.FileIdentity("/tmp/b.json")
	cache := translate.NewCache(nil)
	str := func() (typeexpr.Expr, error) { return &typeexpr.Primitive{Name: typeexpr.String}, nil }
	_, _ = cache.GetOrCompute(a, []string{"x"}, str)
	_, _ = cache.GetOrCompute(a, []string{"y"}, str)
	_, _ = cache.GetOrCompute(b, []string{"x"}, str)

	cache.Invalidate(a)
	if cache.Len() != 1 {
		t.Fatalf("expected only the other identity's entry to survive, got %d", cache.Len())
	}
}

func TestTranslate_CachedResultsAreStable(t *testing.T) {
	src := `{"type":"object","properties":{"a":{"type":"string"}},"required":["a"]}`
	root := mustDecode(t, src)
	id := schematype.FileIdentity("/tmp/a.json")
	cache := translate.NewCache(nil)

	first, err := translate.Translate(root, translate.WithIdentity(id), translate.WithCache(cache))
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	second, err := translate.Translate(root, translate.WithIdentity(id), translate.WithCache(cache))
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if !typeexpr.Equal(first, second) {
		t.Fatalf("cache must hand back a structurally identical expression")
	}
}

func TestTranslate_BypassSkipsCache(t *testing.T) {
	src := `{"type":"string"}`
	root := mustDecode(t, src)
	id := schematype.FileIdentity("/tmp/a.json")
	cache := translate.NewCache(nil)

	if _, err := translate.Translate(root, translate.WithIdentity(id), translate.WithCache(cache), translate.WithBypass(true)); err != nil {
		t.Fatalf("translate: %v", err)
	}
	if cache.Len() != 0 {
		t.Fatalf("bypass must not populate the cache, got %d entries", cache.Len())
	}
}
