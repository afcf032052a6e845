// Package gate exposes the confidence scorer under the readiness-check
// contract consumed by the CLI and MCP adapters.
package gate

import (
	"fmt"

	"github.com/agiletec/airis/internal/confidence"
)

// Action is the tool-surface action vocabulary. It is coarser than the
// scorer's: medium confidence maps to "investigate", low to "stop".
type Action string

// Gate actions.
const (
	ActionProceed     Action = "proceed"
	ActionInvestigate Action = "investigate"
	ActionStop        Action = "stop"
)

// Request is the explicit readiness questionnaire for a task. The five
// booleans replace the loose dict-shaped context of earlier revisions.
type Request struct {
	Task                      string         `json:"task"`
	DuplicateCheckComplete    bool           `json:"duplicate_check_complete"`
	ArchitectureCheckComplete bool           `json:"architecture_check_complete"`
	OfficialDocsVerified      bool           `json:"official_docs_verified"`
	OSSReferenceComplete      bool           `json:"oss_reference_complete"`
	RootCauseIdentified       bool           `json:"root_cause_identified"`
	Metadata                  map[string]any `json:"metadata,omitempty"`
}

// Response is the gate verdict.
type Response struct {
	Score  float64  `json:"score"`
	Action Action   `json:"action"`
	Checks []string `json:"checks"`
}

// Evaluate maps the readiness flags onto scorer signals and grades the
// result. Verified docs count as the docs signal; completed duplicate and
// OSS reference checks stand in for existing patterns; an identified root
// cause plus architecture check means the path is clear. Unchecked boxes
// become the corresponding blockers.
func Evaluate(req Request) (Response, error) {
	if req.Task == "" {
		return Response{}, fmt.Errorf("task description is required")
	}

	signals := confidence.Signals{
		HasOfficialDocs:        req.OfficialDocsVerified,
		HasExistingPatterns:    req.DuplicateCheckComplete && req.OSSReferenceComplete,
		HasClearPath:           req.ArchitectureCheckComplete && req.RootCauseIdentified,
		MultipleApproaches:     !req.OSSReferenceComplete,
		HasTradeOffs:           !req.ArchitectureCheckComplete,
		UnclearRequirements:    !req.DuplicateCheckComplete,
		NoPrecedent:            !req.OSSReferenceComplete && !req.OfficialDocsVerified,
		MissingDomainKnowledge: !req.RootCauseIdentified && !req.OfficialDocsVerified,
	}
	assessment := confidence.Assess(signals)

	return Response{
		Score:  assessment.Score,
		Action: toAction(assessment.Action),
		Checks: assessment.Evidence,
	}, nil
}

func toAction(a confidence.Action) Action {
	switch a {
	case confidence.ActionProceed:
		return ActionProceed
	case confidence.ActionPresentAlternatives:
		return ActionInvestigate
	default:
		return ActionStop
	}
}
