package checkout

type Status string

const (
	StatusLoading    Status = "LOADING"
	StatusEmpty      Status = "EMPTY"
	StatusPopulated  Status = "POPULATED"
	StatusValidating Status = "VALIDATING"
	StatusFinalized  Status = "FINALIZED"
	StatusInvalid    Status = "INVALID"
)

// IsTerminal reports whether the session can make no further transitions.
// An empty-cart session ends immediately; a finalized one cannot finalize
// again because its persisted snapshot no longer exists.
func (s Status) IsTerminal() bool {
	return s == StatusEmpty || s == StatusFinalized
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
