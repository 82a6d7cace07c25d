package models

// FetchStatus tracks the state of a collection fetch alongside the data itself,
// so an empty collection is never confused with one still loading.
type FetchStatus int

const (
	FetchIdle FetchStatus = iota
	FetchLoading
	FetchLoadedEmpty
	FetchLoadedNonEmpty
	FetchFailed
)

// StatusForCount returns the loaded status matching the number of items
func StatusForCount(n int) FetchStatus {
	if n == 0 {
		return FetchLoadedEmpty
	}
	return FetchLoadedNonEmpty
}

// Loaded reports whether a fetch completed successfully
func (s FetchStatus) Loaded() bool {
	return s == FetchLoadedEmpty || s == FetchLoadedNonEmpty
}

func (s FetchStatus) String() string {
	switch s {
	case FetchIdle:
		return "idle"
	case FetchLoading:
		return "loading"
	case FetchLoadedEmpty:
		return "loaded-empty"
	case FetchLoadedNonEmpty:
		return "loaded-nonempty"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}
