package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/cheggaaa/pb"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"github.com/urfave/cli"

	"github.com/openracer/racetrack/bridge"
	"github.com/openracer/racetrack/common/recording"
	"github.com/openracer/racetrack/common/types/trackcontainer"
	"github.com/openracer/racetrack/common/utils"
	"github.com/openracer/racetrack/engine/dynamics"
	"github.com/openracer/racetrack/engine/simulation"
	"github.com/openracer/racetrack/engine/track"
)

func main() {
	app := cli.NewApp()
	app.Name = "racetrack"
	app.Usage = "Deterministic 2D racing simulation engine"
	app.Version = "1.0.0"

	app.Commands = []cli.Command{
		{
			Name:  "bridge",
			Usage: "Serve episodes to a trainer process over WebSocket",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "listen", Value: ":9876", Usage: "listen address"},
			},
			Action: func(c *cli.Context) error {
				server := bridge.NewServer(c.String("listen"))
				if err := server.ListenAndServe(); err != nil {
					utils.FailWith(err)
				}
				return nil
			},
		},
		{
			Name:  "bench",
			Usage: "Run a throwaway episode and report simulation throughput",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "track", Value: "track-01", Usage: "built-in track id"},
				cli.IntFlag{Name: "ticks", Value: 60000, Usage: "number of ticks to simulate"},
			},
			Action: func(c *cli.Context) error {
				if err := bench(c.String("track"), c.Int("ticks")); err != nil {
					utils.FailWith(err)
				}
				return nil
			},
		},
		{
			Name:  "record",
			Usage: "Simulate an episode and archive its tick stream for replay",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "track", Value: "track-01", Usage: "built-in track id"},
				cli.IntFlag{Name: "ticks", Value: 3600, Usage: "number of ticks to simulate"},
				cli.StringFlag{Name: "out", Value: "episode.zip", Usage: "archive filename"},
			},
			Action: func(c *cli.Context) error {
				if err := record(c.String("track"), c.Int("ticks"), c.String("out")); err != nil {
					utils.FailWith(err)
				}
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		utils.FailWith(err)
	}
}

func loadTrack(trackId string) (*trackcontainer.TrackContainer, error) {
	container, ok := trackcontainer.Builtin()[trackId]
	if !ok {
		return nil, errors.Errorf("unknown track %q", trackId)
	}

	return container, nil
}

// benchInput is the deterministic probe policy used by bench and
// record: full throttle with a slow steering sweep, enough to exercise
// cornering, wall contact and both surfaces.
func benchInput(tick int) dynamics.Input {
	return dynamics.Input{
		Steer:    0.4 * math.Sin(float64(tick)/120.0),
		Throttle: 1,
		Brake:    0,
	}
}

// runEpisode drives one probe episode, streaming every tick snapshot to
// the recorder. bench passes the empty recorder; record passes an
// archive-backed one.
func runEpisode(trk *track.Track, ticks int, episodeId string, recorder recording.Recorder, progress *pb.ProgressBar) (simulation.WorldState, error) {

	cfg := simulation.DefaultConfig()
	state := simulation.NewEpisode(trk)

	for i := 0; i < ticks; i++ {
		state = simulation.Step(state, benchInput(i), cfg)

		snapshot, err := json.Marshal(state)
		if err != nil {
			return state, errors.Wrap(err, "could not serialize snapshot")
		}

		if err := recorder.Record(episodeId, string(snapshot)); err != nil {
			return state, err
		}

		if progress != nil {
			progress.Increment()
		}
	}

	return state, nil
}

func bench(trackId string, ticks int) error {
	utils.Assert(ticks > 0, "bench: ticks must be positive")

	container, err := loadTrack(trackId)
	if err != nil {
		return err
	}

	trk, err := container.BuildTrack()
	if err != nil {
		return err
	}

	bar := pb.StartNew(ticks)
	start := time.Now()

	state, err := runEpisode(trk, ticks, "", recording.MakeEmptyRecorder(), bar)
	if err != nil {
		return err
	}

	bar.Finish()

	elapsed := time.Since(start)
	fmt.Printf("%d ticks in %s (%.0f ticks/sec), %d laps, best lap %d ticks\n",
		ticks,
		elapsed,
		float64(ticks)/elapsed.Seconds(),
		state.Timing.CurrentLap-1,
		state.Timing.BestLapTicks,
	)

	return nil
}

func record(trackId string, ticks int, out string) error {
	utils.Assert(ticks > 0, "record: ticks must be positive")

	if _, err := os.Stat(out); err == nil {
		utils.WarnWith(errors.Errorf("overwriting existing archive %s", out))
	}

	container, err := loadTrack(trackId)
	if err != nil {
		return err
	}

	trk, err := container.BuildTrack()
	if err != nil {
		return err
	}

	episodeId := uuid.NewV4().String()

	recorder := recording.MakeSingleEpisodeRecorder(out)
	if err := recorder.RecordMetadata(episodeId, container); err != nil {
		return err
	}

	if _, err := runEpisode(trk, ticks, episodeId, recorder, nil); err != nil {
		return err
	}

	recorder.Close(episodeId)

	return nil
}
