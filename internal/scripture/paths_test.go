package scripture

import (
	"testing"
)

func containsVariation(vs []PathVariation, want PathVariation) bool {
	for _, v := range vs {
		if v == want {
			return true
		}
	}
	return false
}

func TestPathVariations_NumberedBook(t *testing.T) {
	vs := PathVariations("1 Reyes")

	want := []PathVariation{
		{Folder: "1Reyes", File: "1_reyes"},
		{Folder: "1_Reyes", File: "1_reyes"},
		{Folder: "1reyes", File: "1_reyes"},
	}
	if len(vs) != len(want) {
		t.Fatalf("len(PathVariations) = %d, want %d: %+v", len(vs), len(want), vs)
	}
	for i := range want {
		if vs[i] != want[i] {
			t.Errorf("variation[%d] = %+v, want %+v", i, vs[i], want[i])
		}
	}
}

func TestPathVariations_SimpleBook(t *testing.T) {
	vs := PathVariations("Juan")
	if !containsVariation(vs, PathVariation{Folder: "Juan", File: "juan"}) {
		t.Errorf("PathVariations(Juan) = %+v, missing {Juan juan}", vs)
	}
	if vs[0] != (PathVariation{Folder: "Juan", File: "juan"}) {
		t.Errorf("first variation = %+v, want {Juan juan}", vs[0])
	}
}

func TestPathVariations_StripsDiacritics(t *testing.T) {
	vs := PathVariations("Josué")
	if vs[0] != (PathVariation{Folder: "Josue", File: "josue"}) {
		t.Errorf("first variation = %+v, want {Josue josue}", vs[0])
	}

	vs = PathVariations("1 Crónicas")
	if !containsVariation(vs, PathVariation{Folder: "1Cronicas", File: "1_cronicas"}) {
		t.Errorf("PathVariations(1 Crónicas) = %+v", vs)
	}
}

func TestPathVariations_MultiWordName(t *testing.T) {
	vs := PathVariations("Cantar de los Cantares")
	if !containsVariation(vs, PathVariation{Folder: "Cantar_de_los_Cantares", File: "cantar_de_los_cantares"}) {
		t.Errorf("missing simple variation: %+v", vs)
	}
	if !containsVariation(vs, PathVariation{Folder: "cantardeloscantares", File: "cantar_de_los_cantares"}) {
		t.Errorf("missing lowercase variation: %+v", vs)
	}
}

func TestPathVariations_NoDuplicates(t *testing.T) {
	for _, b := range BookNames() {
		vs := PathVariations(b)
		if len(vs) == 0 {
			t.Fatalf("PathVariations(%q) returned nothing", b)
		}
		seen := make(map[PathVariation]bool)
		for _, v := range vs {
			if seen[v] {
				t.Errorf("PathVariations(%q) repeats %+v", b, v)
			}
			seen[v] = true
		}
	}
}

func TestPathVariations_AlwaysNonEmpty(t *testing.T) {
	if vs := PathVariations(""); len(vs) != 1 {
		t.Errorf("PathVariations(\"\") len = %d, want 1", len(vs))
	}
}
