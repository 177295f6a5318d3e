package search_test

import (
	"reflect"
	"testing"

	"github.com/ykhknw/pocketnavi/pkg/search"
)

// chainFixture sets up one architect appearing in two different composite
// credits across two different buildings, plus a two-person credit.
//
//	credit 100: tange (solo)                 -> building 1
//	credit 200: tange + maki (ordered pair)  -> building 2
//	credit 300: maki (solo, supervision)     -> building 2, credit order 2
func chainFixture() *fakeArchitectStore {
	return &fakeArchitectStore{
		architects: []search.ArchitectRow{
			{ArchitectID: 10, Name: "丹下健三", NameEn: "Kenzo Tange", Slug: "kenzo-tange"},
			{ArchitectID: 11, Name: "槇文彦", NameEn: "Fumihiko Maki", Slug: "fumihiko-maki"},
		},
		compositions: []composition{
			{creditID: 100, architectID: 10, orderIndex: 1},
			{creditID: 200, architectID: 10, orderIndex: 1},
			{creditID: 200, architectID: 11, orderIndex: 2},
			{creditID: 300, architectID: 11, orderIndex: 1},
		},
		links: []creditLink{
			{buildingID: 1, creditID: 100, creditOrder: 1},
			{buildingID: 2, creditID: 200, creditOrder: 1},
			{buildingID: 2, creditID: 300, creditOrder: 2},
		},
	}
}

func TestResolverByName(t *testing.T) {
	resolver := search.NewResolver(chainFixture())

	tests := []struct {
		name          string
		nameSubstring string
		lang          search.Lang
		want          []int
	}{
		{
			name:          "architect in two credits returns both buildings",
			nameSubstring: "丹下",
			lang:          search.LangJa,
			want:          []int{1, 2},
		},
		{
			name:          "english name column",
			nameSubstring: "tange",
			lang:          search.LangEn,
			want:          []int{1, 2},
		},
		{
			name:          "second architect",
			nameSubstring: "槇",
			lang:          search.LangJa,
			want:          []int{2},
		},
		{
			name:          "no match is empty not error",
			nameSubstring: "磯崎",
			lang:          search.LangJa,
			want:          nil,
		},
		{
			name:          "blank substring is no constraint",
			nameSubstring: "  ",
			lang:          search.LangJa,
			want:          nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.ByName(tt.nameSubstring, tt.lang)
			if err != nil {
				t.Fatalf("ByName returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ByName(%q) = %v, want %v", tt.nameSubstring, got, tt.want)
			}
		})
	}
}

func TestResolverByNameDeduplicates(t *testing.T) {
	// Both members of credit 200 match "a" in their slug-free English
	// names; building 2 must still appear once.
	store := chainFixture()
	resolver := search.NewResolver(store)

	ids, err := resolver.ByName("ki", search.LangEn) // Maki only
	if err != nil {
		t.Fatalf("ByName returned error: %v", err)
	}
	if !reflect.DeepEqual(ids, []int{2}) {
		t.Fatalf("ByName = %v, want [2]", ids)
	}

	// A substring matching both architects reaches building 2 twice
	// through credits 200 and 300 and through both members of 200.
	ids, err = resolver.ByName("n", search.LangEn)
	if err != nil {
		t.Fatalf("ByName returned error: %v", err)
	}
	seen := make(map[int]int)
	for _, id := range ids {
		seen[id]++
		if seen[id] > 1 {
			t.Fatalf("building %d returned more than once: %v", id, ids)
		}
	}
}

func TestResolverBySlug(t *testing.T) {
	resolver := search.NewResolver(chainFixture())

	architect, ids, err := resolver.BySlug("kenzo-tange")
	if err != nil {
		t.Fatalf("BySlug returned error: %v", err)
	}
	if architect == nil || architect.ArchitectID != 10 {
		t.Fatalf("architect = %+v, want ID 10", architect)
	}
	if !reflect.DeepEqual(ids, []int{1, 2}) {
		t.Errorf("building IDs = %v, want [1 2]", ids)
	}
}

func TestResolverBySlugMissing(t *testing.T) {
	resolver := search.NewResolver(chainFixture())

	architect, ids, err := resolver.BySlug("arata-isozaki")
	if err != nil {
		t.Fatalf("missing slug must not error, got: %v", err)
	}
	if architect != nil || ids != nil {
		t.Errorf("missing slug must resolve to nothing, got %+v / %v", architect, ids)
	}
}

func TestResolverOfBuildingOrder(t *testing.T) {
	resolver := search.NewResolver(chainFixture())

	refs, err := resolver.OfBuilding(2)
	if err != nil {
		t.Fatalf("OfBuilding returned error: %v", err)
	}

	// credit 200 (order 1) lists tange then maki; credit 300 (order 2)
	// lists maki again as an independent credit.
	want := []string{"kenzo-tange", "fumihiko-maki", "fumihiko-maki"}
	if len(refs) != len(want) {
		t.Fatalf("refs = %+v, want slugs %v", refs, want)
	}
	for i, ref := range refs {
		if ref.Slug != want[i] {
			t.Errorf("refs[%d].Slug = %q, want %q", i, ref.Slug, want[i])
		}
	}
}
