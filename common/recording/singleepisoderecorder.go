package recording

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/openracer/racetrack/common/types/trackcontainer"
	"github.com/openracer/racetrack/common/utils"
)

type RecordMetadata struct {
	EpisodeId      string                         `json:"episodeId"`
	TrackContainer *trackcontainer.TrackContainer `json:"track"`
	Date           string                         `json:"date"`
}

// SingleEpisodeRecorder buffers one episode's tick stream in memory and
// writes the archive on Close.
type SingleEpisodeRecorder struct {
	buffer         strings.Builder
	filename       string
	recordMetadata *RecordMetadata
}

func MakeSingleEpisodeRecorder(filename string) *SingleEpisodeRecorder {
	return &SingleEpisodeRecorder{
		filename: filename,
	}
}

func (r *SingleEpisodeRecorder) Stop() {}

func (r *SingleEpisodeRecorder) RecordMetadata(episodeId string, container *trackcontainer.TrackContainer) error {
	r.recordMetadata = &RecordMetadata{
		EpisodeId:      episodeId,
		TrackContainer: container,
		Date:           time.Now().Format(time.RFC3339),
	}

	return nil
}

func (r *SingleEpisodeRecorder) Record(episodeId string, msg string) error {
	r.buffer.WriteString(msg)
	r.buffer.WriteString("\n")

	return nil
}

func (r *SingleEpisodeRecorder) Close(episodeId string) {
	if r.recordMetadata == nil {
		panic("Missing RecordMetadata")
	}

	metadata, err := json.Marshal(*r.recordMetadata)
	utils.Check(err, "Could not serialize RecordMetadata")

	files := []ArchiveFile{
		{Name: "RecordMetadata", Body: string(metadata)},
		{Name: "Record", Body: r.buffer.String()},
	}

	err = MakeArchive(r.filename, files)
	utils.Check(err, "Could not create record archive")

	utils.Debug("SingleEpisodeRecorder", "write record archive "+r.filename)
}
