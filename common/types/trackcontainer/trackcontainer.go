// Package trackcontainer defines the versioned JSON document format for
// static track content, and turns validated documents into built
// tracks. Track definitions are content, not runtime state; there is no
// editing interface.
package trackcontainer

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/openracer/racetrack/common/utils/number"
	"github.com/openracer/racetrack/common/utils/vector"
	"github.com/openracer/racetrack/engine/track"
)

type TrackPoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	HalfWidth float64 `json:"halfWidth"`
}

type TrackContainer struct {
	Meta struct {
		Name    string `json:"name"`
		Version int    `json:"version"`
	} `json:"meta"`
	Data struct {
		ControlPoints   []TrackPoint `json:"controlPoints"`
		CheckpointCount int          `json:"checkpointCount"`

		// arc distance of the start line along the centerline; wraps
		StartOffset float64 `json:"startOffset,omitempty"`
	} `json:"data"`
}

func Load(r io.Reader) (*TrackContainer, error) {
	var container TrackContainer

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&container); err != nil {
		return nil, errors.Wrap(err, "trackcontainer: could not decode track document")
	}

	if err := container.Validate(); err != nil {
		return nil, err
	}

	return &container, nil
}

func LoadFromFile(path string) (*TrackContainer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "trackcontainer: could not open %s", path)
	}
	defer f.Close()

	return Load(f)
}

// Validate fails loudly at load time; malformed content must never
// reach the simulation.
func (container *TrackContainer) Validate() error {

	if len(container.Data.ControlPoints) < 3 {
		return errors.Errorf("trackcontainer: %s: need at least 3 control points, got %d",
			container.Meta.Name, len(container.Data.ControlPoints))
	}

	if container.Data.CheckpointCount < 1 {
		return errors.Errorf("trackcontainer: %s: need at least 1 checkpoint, got %d",
			container.Meta.Name, container.Data.CheckpointCount)
	}

	if !number.IsFinite(container.Data.StartOffset) {
		return errors.Errorf("trackcontainer: %s: start offset is not finite", container.Meta.Name)
	}

	for i, p := range container.Data.ControlPoints {
		if !number.IsFinite(p.X) || !number.IsFinite(p.Y) || !number.IsFinite(p.HalfWidth) {
			return errors.Errorf("trackcontainer: %s: control point %d is not finite", container.Meta.Name, i)
		}

		if p.HalfWidth <= 0 {
			return errors.Errorf("trackcontainer: %s: control point %d has half-width %f",
				container.Meta.Name, i, p.HalfWidth)
		}
	}

	return nil
}

// BuildTrack samples the document into an immutable Track.
func (container *TrackContainer) BuildTrack() (*track.Track, error) {

	if err := container.Validate(); err != nil {
		return nil, err
	}

	controlPoints := make([]track.ControlPoint, len(container.Data.ControlPoints))
	for i, p := range container.Data.ControlPoints {
		controlPoints[i] = track.ControlPoint{
			Position:  vector.MakeVector2(p.X, p.Y),
			HalfWidth: p.HalfWidth,
		}
	}

	return track.BuildWithStart(controlPoints, container.Data.CheckpointCount, container.Data.StartOffset)
}
