package bridge

import (
	"encoding/json"
	"math"
	"testing"
)

func TestStepBeforeResetFails(t *testing.T) {
	session := NewSession()

	if _, err := session.Step([]float64{0, 1, 0}); err == nil {
		t.Fatal("step before reset was accepted")
	}
}

func TestResetThenStep(t *testing.T) {
	session := NewSession()

	reset, err := session.Reset("", nil)
	if err != nil {
		t.Fatalf("could not reset: %v", err)
	}

	obsSize := session.cfg.Observation.Size()
	if len(reset.Observation) != obsSize {
		t.Fatalf("reset observation has %d components, want %d", len(reset.Observation), obsSize)
	}

	step, err := session.Step([]float64{0, 1, 0})
	if err != nil {
		t.Fatalf("could not step: %v", err)
	}

	if len(step.Observation) != obsSize {
		t.Fatalf("step observation has %d components, want %d", len(step.Observation), obsSize)
	}

	if step.Terminated || step.Truncated {
		t.Fatal("first tick ended the episode")
	}

	if step.Info["tick"] != 1 {
		t.Fatalf("got tick %v after one step", step.Info["tick"])
	}
}

func TestResetRejectsDegenerateConfigs(t *testing.T) {
	cases := []string{
		`{"observation": {"rayCount": 1}}`,
		`{"observation": {"rayCount": 0}}`,
		`{"observation": {"rayMaxDistance": -5}}`,
		`{"simulation": {"dt": 0}}`,
		`{"maxEpisodeTicks": 0}`,
		`{"offroadTerminationTicks": 0}`,
	}

	for _, config := range cases {
		session := NewSession()

		if _, err := session.Reset("", json.RawMessage(config)); err == nil {
			t.Fatalf("config %s was accepted", config)
		}
	}
}

func TestResetRejectsUnknownTrack(t *testing.T) {
	session := NewSession()

	if _, err := session.Reset("no-such-track", nil); err == nil {
		t.Fatal("unknown track was accepted")
	}
}

func TestStepRejectsMalformedActions(t *testing.T) {
	session := NewSession()

	if _, err := session.Reset("", nil); err != nil {
		t.Fatalf("could not reset: %v", err)
	}

	cases := [][]float64{
		{0, 1},
		{0, 1, 0, 0},
		{math.NaN(), 1, 0},
		{0, math.Inf(1), 0},
	}

	for _, action := range cases {
		if _, err := session.Step(action); err == nil {
			t.Fatalf("action %v was accepted", action)
		}
	}

	// a rejected action must not have advanced the episode
	step, err := session.Step([]float64{0, 1, 0})
	if err != nil {
		t.Fatalf("could not step after rejections: %v", err)
	}
	if step.Info["tick"] != 1 {
		t.Fatalf("got tick %v, rejected actions advanced the episode", step.Info["tick"])
	}
}

func TestEpisodeTruncatesAtTheTickBudget(t *testing.T) {
	session := NewSession()

	config, _ := json.Marshal(map[string]interface{}{
		"maxEpisodeTicks":         10,
		"offroadTerminationTicks": 180,
	})

	if _, err := session.Reset("", config); err != nil {
		t.Fatalf("could not reset: %v", err)
	}

	var last StepResponse
	for i := 0; i < 10; i++ {
		step, err := session.Step([]float64{0, 0, 0})
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		last = step
	}

	if !last.Truncated {
		t.Fatal("episode was not truncated at the tick budget")
	}
	if last.Terminated {
		t.Fatal("truncation was reported as termination")
	}

	if _, err := session.Step([]float64{0, 0, 0}); err == nil {
		t.Fatal("step after truncation was accepted")
	}
}

func TestHandleRequestRoundTrip(t *testing.T) {
	session := NewSession()

	response, quit := handleRequest(session, []byte(`{"type": "reset", "trackId": "track-01"}`))
	if quit {
		t.Fatal("reset closed the connection")
	}
	if _, ok := response.(ResetResponse); !ok {
		t.Fatalf("got %T, want ResetResponse", response)
	}

	response, quit = handleRequest(session, []byte(`{"type": "step", "action": [0, 1, 0]}`))
	if quit {
		t.Fatal("step closed the connection")
	}
	step, ok := response.(StepResponse)
	if !ok {
		t.Fatalf("got %T, want StepResponse", response)
	}
	if len(step.Observation) != session.cfg.Observation.Size() {
		t.Fatalf("got %d observation components", len(step.Observation))
	}

	response, quit = handleRequest(session, []byte(`{"type": "warp"}`))
	if quit {
		t.Fatal("unknown request closed the connection")
	}
	if _, ok := response.(ErrorResponse); !ok {
		t.Fatalf("got %T, want ErrorResponse", response)
	}

	response, quit = handleRequest(session, []byte(`{"type": "close"}`))
	if !quit {
		t.Fatal("close kept the connection open")
	}
	if _, ok := response.(CloseResponse); !ok {
		t.Fatalf("got %T, want CloseResponse", response)
	}
}

func TestHandleRequestRejectsBrokenJSON(t *testing.T) {
	session := NewSession()

	response, quit := handleRequest(session, []byte(`{"type":`))
	if quit {
		t.Fatal("broken payload closed the connection")
	}
	if _, ok := response.(ErrorResponse); !ok {
		t.Fatalf("got %T, want ErrorResponse", response)
	}
}
