package trackcontainer

// Builtin returns the track definitions shipped with the engine, keyed
// by id. The documents go through the same validation as loaded files.
func Builtin() map[string]*TrackContainer {
	tracks := map[string]*TrackContainer{
		"track-01": makeContainer("track-01", 8, []TrackPoint{
			{X: 0, Y: 0, HalfWidth: 8},
			{X: 120, Y: -10, HalfWidth: 8},
			{X: 180, Y: 40, HalfWidth: 6},
			{X: 160, Y: 110, HalfWidth: 6},
			{X: 80, Y: 140, HalfWidth: 7},
			{X: -20, Y: 120, HalfWidth: 7},
			{X: -60, Y: 60, HalfWidth: 8},
		}),
		"track-02": makeContainer("track-02", 12, []TrackPoint{
			{X: 0, Y: 0, HalfWidth: 7},
			{X: 90, Y: -20, HalfWidth: 7},
			{X: 170, Y: 10, HalfWidth: 5},
			{X: 200, Y: 80, HalfWidth: 5},
			{X: 150, Y: 130, HalfWidth: 6},
			{X: 90, Y: 100, HalfWidth: 5},
			{X: 40, Y: 150, HalfWidth: 6},
			{X: -40, Y: 160, HalfWidth: 7},
			{X: -80, Y: 90, HalfWidth: 7},
			{X: -50, Y: 30, HalfWidth: 7},
		}),
	}

	// track-02 starts mid-way down the opening straight
	tracks["track-02"].Data.StartOffset = 40

	return tracks
}

func makeContainer(name string, checkpointCount int, points []TrackPoint) *TrackContainer {
	container := &TrackContainer{}
	container.Meta.Name = name
	container.Meta.Version = 1
	container.Data.ControlPoints = points
	container.Data.CheckpointCount = checkpointCount

	return container
}
