package history

// Turn is one completed question/answer exchange. The tone and level are
// the ones in effect when the answer was produced, captured at send time.
// A Turn is immutable once recorded.
type Turn struct {
	Question  string `json:"question"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
	Tone      string `json:"tone"`
	Level     string `json:"level"`
}

// View receives a replayed turn. Replaying never touches the live
// conversation state and never issues a remote call.
type View interface {
	ShowQuestion(question string)
	ShowAnswer(answer string)
}
