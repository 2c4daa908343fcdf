package chat

// Turn roles, matching the wire format the chat model expects.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message in a conversation, tagged with its role.
// Turns are immutable once appended and their order is replayed to the
// model on every call.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemTurn builds a system-role turn.
func SystemTurn(content string) Turn {
	return Turn{Role: RoleSystem, Content: content}
}

// UserTurn builds a user-role turn.
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// AssistantTurn builds an assistant-role turn.
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}
