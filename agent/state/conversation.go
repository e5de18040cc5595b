package state

import "strings"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Intent string

const (
	IntentNone        Intent = ""
	IntentAccountInfo Intent = "account_info"
	IntentTransaction Intent = "transaction"
	IntentHelp        Intent = "help"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Conversation is the state of one chat turn. It is a value: every With*
// method returns a new Conversation and leaves the receiver untouched, so
// router nodes can be tested with literal input/output pairs.
type Conversation struct {
	UserID         string    `json:"user_id,omitempty"`
	SessionID      string    `json:"session_id,omitempty"`
	Messages       []Message `json:"messages"`
	Authenticated  bool      `json:"authenticated"`
	Token          string    `json:"-"`
	ReauthRequired bool      `json:"reauth_required"`
	Intent         Intent    `json:"intent,omitempty"`
}

func (c Conversation) WithMessages(msgs ...Message) Conversation {
	out := c
	out.Messages = make([]Message, 0, len(c.Messages)+len(msgs))
	out.Messages = append(out.Messages, c.Messages...)
	out.Messages = append(out.Messages, msgs...)
	return out
}

func (c Conversation) WithIntent(intent Intent) Conversation {
	out := c.clone()
	out.Intent = intent
	return out
}

func (c Conversation) WithAuthenticated() Conversation {
	out := c.clone()
	out.Authenticated = true
	out.ReauthRequired = false
	return out
}

// NeedsAuth reports whether the authentication gate has to run before a
// tool-calling agent may proceed.
func (c Conversation) NeedsAuth() bool {
	return !c.Authenticated || c.ReauthRequired
}

// LastUserMessage returns the most recent user-authored message.
func (c Conversation) LastUserMessage() (Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i], true
		}
	}
	return Message{}, false
}

// LastMessage returns the final message of the conversation, if any.
func (c Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// Transcript renders the conversation as "User:"/"Assistant:" lines.
func (c Conversation) Transcript() string {
	lines := make([]string, 0, len(c.Messages))
	for _, m := range c.Messages {
		switch m.Role {
		case RoleUser:
			lines = append(lines, "User: "+m.Content)
		case RoleAssistant:
			lines = append(lines, "Assistant: "+m.Content)
		}
	}
	return strings.Join(lines, "\n")
}

func (c Conversation) clone() Conversation {
	out := c
	out.Messages = append([]Message(nil), c.Messages...)
	return out
}
