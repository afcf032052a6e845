// Package confidence scores pre-implementation readiness signals into a
// graded action recommendation.
package confidence

import "math"

// Level is the confidence tier derived from the score.
type Level string

// Confidence levels, highest first.
const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Action is the recommendation attached to an assessment.
type Action string

// Recommended actions per confidence level.
const (
	ActionProceed             Action = "proceed"
	ActionPresentAlternatives Action = "present_alternatives"
	ActionAskUser             Action = "ask_user"
)

// Signals is the fixed set of readiness indicators the scorer evaluates.
// The zero value means nothing has been verified.
type Signals struct {
	// Positive indicators (+0.2 each).
	HasOfficialDocs     bool
	HasExistingPatterns bool
	HasClearPath        bool

	// Neutral-negative indicators (-0.1 each, not blockers).
	MultipleApproaches bool
	HasTradeOffs       bool

	// Blocking indicators (-0.2 each).
	UnclearRequirements    bool
	NoPrecedent            bool
	MissingDomainKnowledge bool
}

// Assessment is the immutable result of a confidence check.
type Assessment struct {
	Score     float64  `json:"score"`
	Level     Level    `json:"level"`
	Evidence  []string `json:"evidence"`
	Action    Action   `json:"action"`
	Questions []string `json:"questions,omitempty"`
}

const baseline = 0.5

// Assess converts readiness signals into a scored assessment. It is a pure
// function: identical signals always yield identical assessments. Evidence
// markers are appended in evaluation order (positives, neutrals, blockers).
func Assess(s Signals) Assessment {
	score := baseline
	var evidence []string

	if s.HasOfficialDocs {
		score += 0.2
		evidence = append(evidence, "✅ Official documentation reviewed")
	}
	if s.HasExistingPatterns {
		score += 0.2
		evidence = append(evidence, "✅ Existing codebase patterns identified")
	}
	if s.HasClearPath {
		score += 0.2
		evidence = append(evidence, "✅ Clear implementation path")
	}

	if s.MultipleApproaches {
		score -= 0.1
		evidence = append(evidence, "⚠️ Multiple viable approaches exist")
	}
	if s.HasTradeOffs {
		score -= 0.1
		evidence = append(evidence, "⚠️ Trade-offs require consideration")
	}

	if s.UnclearRequirements {
		score -= 0.2
		evidence = append(evidence, "❌ Unclear requirements")
	}
	if s.NoPrecedent {
		score -= 0.2
		evidence = append(evidence, "❌ No clear precedent")
	}
	if s.MissingDomainKnowledge {
		score -= 0.2
		evidence = append(evidence, "❌ Missing domain knowledge")
	}

	score = math.Max(0.0, math.Min(1.0, score))
	// Two decimals keeps the threshold comparisons free of float drift.
	score = math.Round(score*100) / 100

	assessment := Assessment{
		Score:    score,
		Evidence: evidence,
	}
	switch {
	case score >= 0.9:
		assessment.Level = LevelHigh
		assessment.Action = ActionProceed
	case score >= 0.7:
		assessment.Level = LevelMedium
		assessment.Action = ActionPresentAlternatives
	default:
		assessment.Level = LevelLow
		assessment.Action = ActionAskUser
		assessment.Questions = clarificationQuestions(s)
	}
	return assessment
}

func clarificationQuestions(s Signals) []string {
	var questions []string
	if s.UnclearRequirements {
		questions = append(questions, "What are the specific requirements for this feature?")
	}
	if s.NoPrecedent {
		questions = append(questions, "Are there any similar implementations we can reference?")
	}
	if s.MissingDomainKnowledge {
		questions = append(questions, "What domain-specific constraints should I consider?")
	}
	return questions
}
