package bridge

import "encoding/json"

// Wire protocol spoken with the trainer process: one JSON request per
// message, one JSON response back, strictly request/response.

type Request struct {
	Type    string          `json:"type"` // "reset" | "step" | "close"
	TrackId string          `json:"trackId,omitempty"`
	Config  json.RawMessage `json:"config,omitempty"`
	Action  []float64       `json:"action,omitempty"` // [steer, throttle, brake]
}

type StepResponse struct {
	Type        string                 `json:"type"`
	Observation []float64              `json:"observation"`
	Reward      float64                `json:"reward"`
	Terminated  bool                   `json:"terminated"`
	Truncated   bool                   `json:"truncated"`
	Info        map[string]interface{} `json:"info"`
}

type ResetResponse struct {
	Type        string                 `json:"type"`
	Observation []float64              `json:"observation"`
	Info        map[string]interface{} `json:"info"`
}

type CloseResponse struct {
	Type string `json:"type"`
}

type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func makeError(message string) ErrorResponse {
	return ErrorResponse{
		Type:    "error",
		Message: message,
	}
}
