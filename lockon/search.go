package lockon

// SearchStatus is what a search policy sees each Searching tick.
type SearchStatus struct {
	Elapsed       float64
	Scans         int
	LastScanEmpty bool
}

// SearchPolicy decides when an unsuccessful search gives up.
type SearchPolicy interface {
	Abandon(s SearchStatus) bool
}

// FailFast abandons after the first scan that finds nothing.
type FailFast struct{}

func (FailFast) Abandon(s SearchStatus) bool {
	return s.Scans > 0 && s.LastScanEmpty
}

// Timeout abandons once the search has run for Limit seconds.
type Timeout struct {
	Limit float64
}

func (t Timeout) Abandon(s SearchStatus) bool {
	return s.Elapsed >= t.Limit
}

// KeepSearching never abandons.
type KeepSearching struct{}

func (KeepSearching) Abandon(SearchStatus) bool {
	return false
}

func searchPolicyFor(cfg Config) SearchPolicy {
	switch cfg.SearchPolicy {
	case SearchFailFast:
		return FailFast{}
	case SearchPersistent:
		return KeepSearching{}
	default:
		return Timeout{Limit: cfg.SearchTimeout}
	}
}
