package scene

import (
	"strings"
	"testing"
)

func TestCheckReportsBrokenLinks(t *testing.T) {
	fsys := testFS()
	fsys["forest.json"].Data = []byte(`{
  "name": "forest",
  "width": 640,
  "height": 480,
  "entities": [
    {"type": "portal", "name": "ToHub", "x": 10, "y": 240, "props": {"target": "hub", "destination": "Hub_From_Forest"}},
    {"type": "portal", "name": "ToNowhere", "x": 10, "y": 40, "props": {"target": "hub", "destination": "Missing"}},
    {"type": "portal", "name": "ToLimbo", "x": 10, "y": 80, "props": {"target": "limbo"}}
  ]
}`)
	catalog, err := LoadCatalog(fsys)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	var got []string
	for _, p := range Check(fsys, catalog) {
		got = append(got, p.String())
	}
	joined := strings.Join(got, "\n")

	for _, want := range []string{"ghost:", "broken:", "unbuildable:", "forest/ToNowhere", "forest/ToLimbo"} {
		if !strings.Contains(joined, want) {
			t.Errorf("problems missing %q:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "ToHub") || strings.Contains(joined, "start") {
		t.Errorf("valid links reported:\n%s", joined)
	}
}
