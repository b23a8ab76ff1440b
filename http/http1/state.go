package http1

// State is the outcome of a single parser or decoder call.
type State uint8

const (
	// Pending means more data is required. It's never an error: call again once more
	// bytes arrive.
	Pending State = iota + 1
	// Completed means the message head (and the body, if it's sized) or the chunked
	// body is complete.
	Completed
	// Error means the input is rejected. The accompanying error describes why.
	Error
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Completed:
		return "completed"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}
