// Package recording persists episode tick streams for replay: one JSON
// document per tick plus a metadata header, archived as a zip. Replay
// only needs the record and the track document; the engine's
// determinism guarantees the rest.
package recording

import (
	"github.com/openracer/racetrack/common/types/trackcontainer"
)

type Recorder interface {
	RecordMetadata(episodeId string, container *trackcontainer.TrackContainer) error
	Record(episodeId string, msg string) error
	Close(episodeId string)
	Stop()
}
