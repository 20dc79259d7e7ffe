package entities

// ActionType represents the type of gesture performed against an element
type ActionType string

const (
	ActionClick       ActionType = "click"
	ActionDoubleClick ActionType = "doubleclick"
	ActionTypeText    ActionType = "type into"
	ActionBackspace   ActionType = "send backspace into"
	ActionHover       ActionType = "hover over"
)

// Key is a named keyboard key sent to an element
type Key string

const (
	KeyEnter     Key = "Enter"
	KeyBackspace Key = "Backspace"
)
