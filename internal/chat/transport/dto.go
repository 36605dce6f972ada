package transport

// HistoryTurn is a prior message the client replays with every request.
type HistoryTurn struct {
	Role string `json:"role" validate:"required,oneof=user model"`
	Text string `json:"text" validate:"max=8000"`
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message string        `json:"message" validate:"required,max=4000"`
	Mode    string        `json:"mode" validate:"omitempty,oneof=search thinking"`
	History []HistoryTurn `json:"history" validate:"max=100,dive"`
}

type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// ChatResponse carries the model answer and the tags recorded for the turn.
type ChatResponse struct {
	Text             string   `json:"text"`
	Sources          []Source `json:"sources"`
	Mode             string   `json:"mode"`
	DetectedColleges []string `json:"detected_colleges"`
}
