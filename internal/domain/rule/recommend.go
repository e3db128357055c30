package rule

// RecommendationKind classifies the headline advice for a product
type RecommendationKind string

const (
	RecommendRemove RecommendationKind = "REMOVE"
	RecommendReview RecommendationKind = "REVIEW"
	RecommendAdd    RecommendationKind = "ADD"
	RecommendInfo   RecommendationKind = "INFO"
)

// Recommendation is a user-facing advisory derived from an evaluation.
// Recommendations are recomputed at display time and never persisted.
type Recommendation struct {
	Kind    RecommendationKind `json:"kind"`
	Message string             `json:"message"`
}

// Recommendations derives advisory messages from an evaluation: a headline
// by status, then one entry per applied prefer/warn rule using the reason
// recorded in the trace.
func Recommendations(eval *ProductEvaluation, cfg EvaluatorConfig) []Recommendation {
	if eval == nil {
		return nil
	}
	var recs []Recommendation

	switch {
	case eval.Status == StatusBlocked:
		recs = append(recs, Recommendation{
			Kind:    RecommendRemove,
			Message: "Usuń produkt z zestawienia — zablokowany przez reguły zakupowe",
		})
	case eval.Status == StatusWarning:
		recs = append(recs, Recommendation{
			Kind:    RecommendReview,
			Message: "Sprawdź produkt przed zakupem",
		})
	case eval.Score >= cfg.HighScore:
		recs = append(recs, Recommendation{
			Kind:    RecommendAdd,
			Message: "Dodaj produkt do zamówienia — wysoka ocena",
		})
	}

	for _, applied := range eval.AppliedRules {
		if applied.Kind != KindWeighted {
			continue
		}
		if applied.Action != ActionPrefer && applied.Action != ActionWarn {
			continue
		}
		recs = append(recs, Recommendation{Kind: RecommendInfo, Message: applied.Reason})
	}

	return recs
}
