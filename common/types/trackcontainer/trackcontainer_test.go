package trackcontainer

import (
	"strings"
	"testing"
)

const validDocument = `{
	"meta": {"name": "test-oval", "version": 1},
	"data": {
		"controlPoints": [
			{"x": 0, "y": 0, "halfWidth": 6},
			{"x": 200, "y": 0, "halfWidth": 6},
			{"x": 200, "y": 120, "halfWidth": 8},
			{"x": 0, "y": 120, "halfWidth": 6}
		],
		"checkpointCount": 6
	}
}`

func TestLoadValidDocument(t *testing.T) {
	container, err := Load(strings.NewReader(validDocument))
	if err != nil {
		t.Fatalf("could not load document: %v", err)
	}

	if container.Meta.Name != "test-oval" {
		t.Fatalf("got name %q", container.Meta.Name)
	}

	if len(container.Data.ControlPoints) != 4 {
		t.Fatalf("got %d control points", len(container.Data.ControlPoints))
	}

	trk, err := container.BuildTrack()
	if err != nil {
		t.Fatalf("could not build track: %v", err)
	}

	if trk.TotalLength() <= 0 {
		t.Fatalf("built track has length %f", trk.TotalLength())
	}

	if len(trk.Checkpoints()) != 6 {
		t.Fatalf("got %d checkpoints", len(trk.Checkpoints()))
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	if _, err := Load(strings.NewReader(`{"meta": {`)); err == nil {
		t.Fatal("truncated document was accepted")
	}
}

func TestValidateRejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name     string
		document string
	}{
		{
			"too few control points",
			`{"meta": {"name": "bad"}, "data": {"controlPoints": [
				{"x": 0, "y": 0, "halfWidth": 5},
				{"x": 100, "y": 0, "halfWidth": 5}
			], "checkpointCount": 4}}`,
		},
		{
			"zero checkpoints",
			`{"meta": {"name": "bad"}, "data": {"controlPoints": [
				{"x": 0, "y": 0, "halfWidth": 5},
				{"x": 100, "y": 0, "halfWidth": 5},
				{"x": 50, "y": 80, "halfWidth": 5}
			], "checkpointCount": 0}}`,
		},
		{
			"negative half-width",
			`{"meta": {"name": "bad"}, "data": {"controlPoints": [
				{"x": 0, "y": 0, "halfWidth": 5},
				{"x": 100, "y": 0, "halfWidth": -2},
				{"x": 50, "y": 80, "halfWidth": 5}
			], "checkpointCount": 4}}`,
		},
	}

	for _, c := range cases {
		if _, err := Load(strings.NewReader(c.document)); err == nil {
			t.Fatalf("%s: document was accepted", c.name)
		}
	}
}

func TestBuiltinTracksBuild(t *testing.T) {
	builtins := Builtin()
	if len(builtins) == 0 {
		t.Fatal("no builtin tracks")
	}

	for name, container := range builtins {
		trk, err := container.BuildTrack()
		if err != nil {
			t.Fatalf("%s: could not build: %v", name, err)
		}

		if trk.TotalLength() <= 0 {
			t.Fatalf("%s: built track has length %f", name, trk.TotalLength())
		}
	}
}
