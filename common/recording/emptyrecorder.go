package recording

import (
	"github.com/openracer/racetrack/common/types/trackcontainer"
)

type EmptyRecorder struct{}

func MakeEmptyRecorder() EmptyRecorder {
	return EmptyRecorder{}
}

func (r EmptyRecorder) Record(episodeId string, msg string) error {
	return nil
}

func (r EmptyRecorder) RecordMetadata(episodeId string, container *trackcontainer.TrackContainer) error {
	return nil
}

func (r EmptyRecorder) Close(episodeId string) {}
func (r EmptyRecorder) Stop()                  {}
