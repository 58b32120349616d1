package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventTick      Event = "tick"
	EventQuestion  Event = "question"
	EventExtraTime Event = "extra_time"
	EventTimeout   Event = "timeout"
	EventFinished  Event = "finished"
	EventError     Event = "error"
	EventPong      Event = "pong"
)

// TickResponse is pushed once per second while a question countdown runs.
type TickResponse struct {
	Event            Event `json:"event"`
	QuestionIndex    int   `json:"question_index"`
	RemainingSeconds int   `json:"remaining_seconds"`
}

// TimerResponse carries a countdown transition: a new question, an
// extra-time grant, a timeout, or the end of the quiz.
type TimerResponse struct {
	Event            Event `json:"event"`
	QuestionIndex    int   `json:"question_index"`
	RemainingSeconds int   `json:"remaining_seconds"`
	Finished         bool  `json:"finished"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
