package model

// Verb identifies which upstream a command targets.
type Verb string

const (
	VerbCrate Verb = "crate"
	VerbDocs  Verb = "docs"
)

// Command is a parsed chat command. Argument is non-empty after trimming;
// the router guarantees that before a Command is ever constructed.
type Command struct {
	Verb     Verb
	Argument string
}

// RejectReason classifies why raw input never became a Command.
type RejectReason string

const (
	RejectUnknownCommand RejectReason = "unknown_command"
	RejectMissingQuery   RejectReason = "missing_query"
)

// RejectedInput is returned by the router for malformed input. It is always
// surfaced to the user as guidance text, never silently dropped.
type RejectedInput struct {
	Reason RejectReason
	Verb   string // raw first token, as typed
}
