package rule

// EvaluatorConfig holds the scoring parameters of the weighted system.
// The exact scales are tunable; the invariants are that a larger weight and
// a larger condition excess both produce a larger effect, and that the final
// score stays within [MinScore, MaxScore].
type EvaluatorConfig struct {
	BaseScore        float64
	MinScore         float64
	MaxScore         float64
	WarningThreshold float64
	HighScore        float64
	PreferScale      float64
	WarnScale        float64
}

// DefaultConfig returns the production scoring parameters.
func DefaultConfig() EvaluatorConfig {
	return EvaluatorConfig{
		BaseScore:        50,
		MinScore:         0,
		MaxScore:         100,
		WarningThreshold: 30,
		HighScore:        70,
		PreferScale:      20,
		WarnScale:        20,
	}
}

// Contribution converts a match into a signed score delta. PREFER adds a
// bonus, WARN subtracts a penalty, BLOCK contributes nothing here because the
// evaluator forces the score to the floor instead.
func (c EvaluatorConfig) Contribution(m Match, weight int) float64 {
	if !m.Matched {
		return 0
	}
	magnitude := m.Magnitude
	if magnitude <= 0 {
		magnitude = 1
	}
	if magnitude > 1 {
		magnitude = 1
	}
	w := float64(weight) / float64(MaxWeight)

	switch m.Action {
	case ActionPrefer:
		return c.PreferScale * w * magnitude
	case ActionWarn:
		return -c.WarnScale * w * magnitude
	default:
		return 0
	}
}

// Clamp bounds a score to [MinScore, MaxScore].
func (c EvaluatorConfig) Clamp(score float64) float64 {
	if score < c.MinScore {
		return c.MinScore
	}
	if score > c.MaxScore {
		return c.MaxScore
	}
	return score
}
