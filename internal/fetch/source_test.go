package fetch

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/hpungsan/verso/internal/config"
	"github.com/hpungsan/verso/internal/scripture"
)

func TestSource_Location(t *testing.T) {
	v := scripture.PathVariation{Folder: "1Reyes", File: "1_reyes"}

	primary := Source{Name: "primary", Network: true, Base: "https://h.test/", Pattern: "{folder}/{file}_{chapter}.json"}
	if got := primary.Location(v, 19); got != "https://h.test/1Reyes/1_reyes_19.json" {
		t.Errorf("primary Location = %q", got)
	}

	bundle := Source{Name: "bundle", Base: "/data/bundle", Pattern: "/{folder}/{file}.json"}
	if got := bundle.Location(v, 19); got != "1Reyes/1_reyes.json" {
		t.Errorf("bundle Location = %q", got)
	}
}

func TestSource_Usable(t *testing.T) {
	r := NewBundleRetriever(nil)
	tests := []struct {
		name string
		src  Source
		want bool
	}{
		{"network with base", Source{Network: true, Base: "http://x", Pattern: "p", Retriever: r}, true},
		{"network without base", Source{Network: true, Pattern: "p", Retriever: r}, false},
		{"bundle", Source{Pattern: "p", Retriever: r}, true},
		{"no retriever", Source{Pattern: "p"}, false},
		{"no pattern", Source{Retriever: r}, false},
	}
	for _, tt := range tests {
		if got := tt.src.Usable(); got != tt.want {
			t.Errorf("%s: Usable() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSourcesFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PrimaryHost = "https://h.test"
	base := t.TempDir()

	sources := SourcesFromConfig(cfg, base, http.DefaultClient)
	if len(sources) != 3 {
		t.Fatalf("len(sources) = %d, want 3", len(sources))
	}
	if !sources[0].Network || !sources[1].Network || sources[2].Network {
		t.Errorf("network flags = %v %v %v", sources[0].Network, sources[1].Network, sources[2].Network)
	}
	if sources[0].Retriever != sources[1].Retriever {
		t.Error("HTTP sources should share one retriever")
	}
	if sources[2].Base != filepath.Join(base, "bundle") {
		t.Errorf("bundle base = %q", sources[2].Base)
	}
}
