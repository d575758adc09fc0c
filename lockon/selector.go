package lockon

// Selector picks the lock-on target out of a distance-ordered candidate list.
// Implementations must be deterministic and prefer the earliest candidate on
// ties.
type Selector interface {
	Select(candidates []Candidate, radius float64) (Candidate, bool)
}

// SelectorFunc adapts a plain function to Selector.
type SelectorFunc func(candidates []Candidate, radius float64) (Candidate, bool)

func (f SelectorFunc) Select(candidates []Candidate, radius float64) (Candidate, bool) {
	return f(candidates, radius)
}

// NearestSelector picks the closest candidate.
type NearestSelector struct{}

func (NearestSelector) Select(candidates []Candidate, _ float64) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	return candidates[0], true
}

// WeightedSelector blends closeness and how centred the candidate is in view:
// DistanceWeight*(1-d/radius) + AngleWeight*(dot+1)/2.
type WeightedSelector struct {
	DistanceWeight float64
	AngleWeight    float64
}

func (s WeightedSelector) Score(c Candidate, radius float64) float64 {
	distanceScore := 0.0
	if radius > 0 {
		distanceScore = 1 - c.Distance/radius
	}
	directionScore := (c.Dot + 1) * 0.5
	return s.DistanceWeight*distanceScore + s.AngleWeight*directionScore
}

func (s WeightedSelector) Select(candidates []Candidate, radius float64) (Candidate, bool) {
	var best Candidate
	bestScore := 0.0
	found := false
	for _, c := range candidates {
		score := s.Score(c, radius)
		if !found || score > bestScore {
			best, bestScore, found = c, score, true
		}
	}
	return best, found
}

// selectorFor builds the built-in selector a config names. Script selection
// needs a compiled script, so callers inject it with WithSelector.
func selectorFor(cfg Config) Selector {
	if cfg.Selection == SelectNearest {
		return NearestSelector{}
	}
	return WeightedSelector{DistanceWeight: cfg.DistanceWeight, AngleWeight: cfg.AngleWeight}
}
