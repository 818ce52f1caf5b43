package entities

// ConversationMessage is one turn of the interview transcript as exchanged
// with the client. Role is "user" for the candidate and "assistant" for the
// interviewer.
type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
