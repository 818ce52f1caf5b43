package entities

import "testing"

func TestSessionCreation(t *testing.T) {
	session := NewSession(5)

	if session.ID == "" {
		t.Error("expected a generated session ID")
	}
	if session.Status != SessionStatusActive {
		t.Errorf("Status = %q, want %q", session.Status, SessionStatusActive)
	}
	if session.NumberOfQuestions != 5 {
		t.Errorf("NumberOfQuestions = %d, want 5", session.NumberOfQuestions)
	}
	if len(session.Messages) != 0 {
		t.Errorf("expected empty transcript, got %d messages", len(session.Messages))
	}
}

func TestAddMessage(t *testing.T) {
	session := NewSession(2)

	session.AddMessage(MessageRoleUser, "Hello, I'm ready.")
	if len(session.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(session.Messages))
	}
	if session.Messages[0].Role != MessageRoleUser {
		t.Errorf("Role = %q, want user", session.Messages[0].Role)
	}
	if session.QuestionsAsked != 0 {
		t.Errorf("QuestionsAsked = %d, want 0 after user message", session.QuestionsAsked)
	}

	session.AddMessage(MessageRoleAssistant, "Tell me about yourself.")
	if session.QuestionsAsked != 1 {
		t.Errorf("QuestionsAsked = %d, want 1 after assistant message", session.QuestionsAsked)
	}
	if session.IsFinished() {
		t.Error("session finished after 1 of 2 questions")
	}

	session.AddMessage(MessageRoleAssistant, "What is a goroutine?")
	if !session.IsFinished() {
		t.Error("session not finished after all questions asked")
	}
}

func TestSessionValidate(t *testing.T) {
	session := NewSession(5)
	if err := session.Validate(); err != nil {
		t.Errorf("valid session rejected: %v", err)
	}

	session.ID = ""
	if err := session.Validate(); err == nil {
		t.Error("expected error for missing ID")
	}

	session = NewSession(0)
	if err := session.Validate(); err == nil {
		t.Error("expected error for zero question count")
	}

	session = NewSession(5)
	session.Status = "bogus"
	if err := session.Validate(); err == nil {
		t.Error("expected error for invalid status")
	}
}
