package lister

// PagingStatus describes whether more pages can be fetched and whether a
// fetch is currently running.
type PagingStatus int

const (
	// PagingUnavailable: the loader produced no continuation; no further
	// pages exist.
	PagingUnavailable PagingStatus = iota
	// PagingReady: a continuation exists and is not currently being invoked.
	PagingReady
	// PagingInProgress: the continuation is being invoked.
	PagingInProgress
)

func (p PagingStatus) String() string {
	switch p {
	case PagingReady:
		return "ready"
	case PagingInProgress:
		return "in-progress"
	default:
		return "unavailable"
	}
}
