package model

// OutcomeKind discriminates the Outcome variant.
type OutcomeKind int

const (
	OutcomeFound OutcomeKind = iota
	OutcomeNotFound
	OutcomeUpstreamError
)

// FailureKind classifies an upstream failure for logging and metrics. The
// kind is never shown verbatim to the end user.
type FailureKind string

const (
	FailTimeout   FailureKind = "timeout"
	FailHTTP      FailureKind = "http_failure"
	FailMalformed FailureKind = "malformed_response"
)

// Outcome is the single result of one search attempt. Exactly one of Crate
// and Doc is set when Kind is OutcomeFound, depending on the command verb.
type Outcome struct {
	Kind  OutcomeKind
	Query string

	Crate *CrateInfo
	Doc   *DocEntry

	// Set only when Kind is OutcomeUpstreamError.
	Failure FailureKind
	Cause   error
}

func Found(query string, crate *CrateInfo, doc *DocEntry) Outcome {
	return Outcome{Kind: OutcomeFound, Query: query, Crate: crate, Doc: doc}
}

func NotFound(query string) Outcome {
	return Outcome{Kind: OutcomeNotFound, Query: query}
}

func UpstreamFailure(query string, kind FailureKind, cause error) Outcome {
	return Outcome{Kind: OutcomeUpstreamError, Query: query, Failure: kind, Cause: cause}
}
