package fetch

import (
	"testing"

	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/scripture"
)

func TestParse(t *testing.T) {
	key := scripture.ChapterKey{Book: "Juan", Chapter: 3}

	tests := []struct {
		name        string
		body        string
		wantShape   string
		wantVerses  []int
		wantMissing int
	}{
		{
			name:       "flat object",
			body:       `{"book":"Juan","chapter":3,"verses":[{"verse":16,"text":"Porque de tal manera"},{"verse":17,"text":"Porque no envió Dios"}]}`,
			wantShape:  ShapeFlat,
			wantVerses: []int{16, 17},
		},
		{
			name:       "bare array",
			body:       `[{"number":1,"text":"a"},{"number":2,"text":"b"}]`,
			wantShape:  ShapeFlat,
			wantVerses: []int{1, 2},
		},
		{
			name:       "verse preferred over number",
			body:       `[{"verse":5,"number":9,"text":"a"}]`,
			wantShape:  ShapeFlat,
			wantVerses: []int{5},
		},
		{
			name:       "string numbers",
			body:       `[{"verse":"7","text":"a"}]`,
			wantShape:  ShapeFlat,
			wantVerses: []int{7},
		},
		{
			name:       "positional fallback",
			body:       `[{"text":"a"},{"text":"b"},{"text":"c"}]`,
			wantShape:  ShapeFlat,
			wantVerses: []int{1, 2, 3},
		},
		{
			name:       "verse below one falls back to position",
			body:       `[{"verse":0,"text":"a"},{"verse":-2,"text":"b"}]`,
			wantShape:  ShapeFlat,
			wantVerses: []int{1, 2},
		},
		{
			name:       "number used when verse is zero",
			body:       `[{"verse":0,"number":4,"text":"a"}]`,
			wantShape:  ShapeFlat,
			wantVerses: []int{4},
		},
		{
			name:        "missing text kept",
			body:        `[{"verse":1,"text":"a"},{"verse":2},{"verse":3,"text":"  "}]`,
			wantShape:   ShapeFlat,
			wantVerses:  []int{1, 2, 3},
			wantMissing: 2,
		},
		{
			name:       "nested by chapter",
			body:       `{"chapters":[{"chapter":2,"verses":[{"verse":1,"text":"x"}]},{"chapter":3,"verses":[{"verse":1,"text":"y"},{"verse":2,"text":"z"}]}]}`,
			wantShape:  ShapeNested,
			wantVerses: []int{1, 2},
		},
		{
			name:       "nested after unusable verses field",
			body:       `{"verses":{"1":"x"},"chapters":[{"chapter":3,"verses":[{"verse":1,"text":"y"}]}]}`,
			wantShape:  ShapeNested,
			wantVerses: []int{1},
		},
		{
			name:       "nested by number",
			body:       `{"chapters":[{"number":"3","verses":[{"number":1,"text":"y"}]}]}`,
			wantShape:  ShapeNested,
			wantVerses: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse([]byte(tt.body), key)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if res.Shape != tt.wantShape {
				t.Errorf("Shape = %q, want %q", res.Shape, tt.wantShape)
			}
			if len(res.Verses) != len(tt.wantVerses) {
				t.Fatalf("len(Verses) = %d, want %d", len(res.Verses), len(tt.wantVerses))
			}
			for i, n := range tt.wantVerses {
				v := res.Verses[i]
				if v.Verse != n {
					t.Errorf("Verses[%d].Verse = %d, want %d", i, v.Verse, n)
				}
				if v.Book != "Juan" || v.Chapter != 3 {
					t.Errorf("Verses[%d] not stamped with key: %+v", i, v)
				}
			}
			if res.MissingText != tt.wantMissing {
				t.Errorf("MissingText = %d, want %d", res.MissingText, tt.wantMissing)
			}
		})
	}
}

func TestParse_CountsPositional(t *testing.T) {
	res, err := Parse([]byte(`[{"verse":0,"text":"a"},{"verse":2,"text":"b"},{"text":"c"}]`), scripture.ChapterKey{Book: "Juan", Chapter: 3})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if res.Positional != 2 {
		t.Errorf("Positional = %d, want 2", res.Positional)
	}
	for _, v := range res.Verses {
		if v.Verse < 1 {
			t.Errorf("verse number %d below 1", v.Verse)
		}
	}
}

func TestParse_KeepsTitle(t *testing.T) {
	res, err := Parse([]byte(`[{"verse":1,"text":"a","title":"El nuevo nacimiento"}]`), scripture.ChapterKey{Book: "Juan", Chapter: 3})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if res.Verses[0].Title != "El nuevo nacimiento" {
		t.Errorf("Title = %q", res.Verses[0].Title)
	}
}

func TestParse_Malformed(t *testing.T) {
	key := scripture.ChapterKey{Book: "Juan", Chapter: 3}

	bodies := map[string]string{
		"empty":            ``,
		"garbage":          `<html>not found</html>`,
		"empty array":      `[]`,
		"empty verses":     `{"verses":[]}`,
		"null verses":      `{"verses":null}`,
		"no known fields":  `{"book":"Juan"}`,
		"chapter missing":  `{"chapters":[{"chapter":1,"verses":[{"verse":1,"text":"a"}]}]}`,
		"chapter no verse": `{"chapters":[{"chapter":3,"verses":[]}]}`,
		"bad number":       `[{"verse":"tres","text":"a"}]`,
		"verses not array": `{"verses":{"1":"x"}}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body), key)
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			if !errors.Is(err, errors.ErrMalformedResponse) {
				t.Errorf("error code = %v, want MALFORMED_RESPONSE", errors.CodeOf(err))
			}
		})
	}
}
