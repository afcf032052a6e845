// Package selfcheck verifies post-implementation completion claims against
// actual evidence and flags hallucination indicators.
package selfcheck

import (
	"fmt"
	"strings"
)

// Complexity selects the token budget for a self-check.
type Complexity string

// Task complexity tiers.
const (
	Simple  Complexity = "simple"
	Medium  Complexity = "medium"
	Complex Complexity = "complex"
)

// ErrUnknownComplexity reports an unrecognized complexity tier.
var ErrUnknownComplexity = fmt.Errorf("unknown task complexity")

var tokenBudgets = map[Complexity]int{
	Simple:  200,
	Medium:  1000,
	Complex: 2500,
}

// RedFlag names a hallucination indicator.
type RedFlag string

// The fixed red flag vocabulary.
const (
	FlagTestsPassWithoutOutput RedFlag = "tests_pass_without_output"
	FlagEverythingWorksNoProof RedFlag = "everything_works_without_evidence"
	FlagCompleteWithFailing    RedFlag = "complete_with_failing_tests"
	FlagSkippingErrorMessages  RedFlag = "skipping_error_messages"
	FlagIgnoringWarnings       RedFlag = "ignoring_warnings"
	FlagProbablyWorks          RedFlag = "probably_works"
	FlagDidntRunTests          RedFlag = "didnt_run_tests"
)

// Self-check question keys. All four must be answered true for completion.
const (
	QuestionTestsAllPass    = "tests_all_pass"
	QuestionRequirementsMet = "requirements_met"
	QuestionNoAssumptions   = "no_assumptions"
	QuestionEvidenceExists  = "evidence_exists"
)

// questionOrder fixes the reporting order of failed questions.
var questionOrder = []string{
	QuestionTestsAllPass,
	QuestionRequirementsMet,
	QuestionNoAssumptions,
	QuestionEvidenceExists,
}

// TestResults captures an actual test run, not a claim about one.
type TestResults struct {
	Total           int
	Passed          int
	Failed          int
	CoveragePercent float64
	Output          string
}

// AllPassed reports whether every test passed.
func (r TestResults) AllPassed() bool {
	return r.Failed == 0 && r.Passed == r.Total
}

// CodeChanges summarizes what was actually modified.
type CodeChanges struct {
	FilesModified []string
	LinesAdded    int
	LinesRemoved  int
	DiffSummary   string
}

// Validation holds the three independent validation outcomes.
type Validation struct {
	LintPassed      bool
	TypecheckPassed bool
	BuildPassed     bool
}

// Evidence bundles the three evidence objects. Any of them may be nil,
// which is itself evidence of incompleteness.
type Evidence struct {
	TestResults *TestResults
	CodeChanges *CodeChanges
	Validation  *Validation
}

// Input is everything the verifier needs from the caller.
type Input struct {
	TestResults         *TestResults
	CodeChanges         *CodeChanges
	Validation          *Validation
	Requirements        []string
	AssumptionsVerified bool
	// RequirementsProvided distinguishes "no list supplied" from an empty
	// list; both fail the check but for different reasons.
	RequirementsProvided bool
}

// Result is the verdict of a self-check run.
type Result struct {
	Passed                bool
	QuestionsAnswered     map[string]bool
	EvidenceProvided      Evidence
	RedFlagsDetected      []RedFlag
	HallucinationDetected bool
	CompletionAllowed     bool
	Message               string
}

// Protocol executes self-checks under a complexity-tiered token budget.
type Protocol struct {
	complexity  Complexity
	tokenBudget int
}

// New creates a protocol for the given complexity tier.
func New(complexity Complexity) (*Protocol, error) {
	budget, ok := tokenBudgets[complexity]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComplexity, complexity)
	}
	return &Protocol{complexity: complexity, tokenBudget: budget}, nil
}

// Complexity returns the tier this protocol was built for.
func (p *Protocol) Complexity() Complexity { return p.complexity }

// TokenBudget returns the fixed budget for this tier. It is a lookup, not a
// function of evidence size.
func (p *Protocol) TokenBudget() int { return p.tokenBudget }

// Execute runs the four mandatory questions against the supplied evidence.
// Questions are evaluated independently, never short-circuited: each one
// contributes its own red flags.
func (p *Protocol) Execute(in Input) Result {
	questions := make(map[string]bool, 4)
	var redFlags []RedFlag
	evidence := Evidence{
		TestResults: in.TestResults,
		CodeChanges: in.CodeChanges,
		Validation:  in.Validation,
	}

	// Question 1: do all tests pass?
	switch {
	case in.TestResults == nil:
		questions[QuestionTestsAllPass] = false
		redFlags = append(redFlags, FlagDidntRunTests)
	case !in.TestResults.AllPassed():
		questions[QuestionTestsAllPass] = false
		redFlags = append(redFlags, FlagCompleteWithFailing)
	default:
		questions[QuestionTestsAllPass] = true
		if in.TestResults.Output == "" {
			redFlags = append(redFlags, FlagTestsPassWithoutOutput)
		}
	}

	// Question 2: are all requirements met? A non-empty list is the bar
	// here; semantic validation is out of scope by contract.
	if !in.RequirementsProvided {
		questions[QuestionRequirementsMet] = false
	} else {
		questions[QuestionRequirementsMet] = len(in.Requirements) > 0
	}

	// Question 3: were assumptions verified against documentation?
	questions[QuestionNoAssumptions] = in.AssumptionsVerified
	if !in.AssumptionsVerified {
		redFlags = append(redFlags, FlagProbablyWorks)
	}

	// Question 4: does evidence exist for the claim?
	evidenceExists := in.TestResults != nil && in.CodeChanges != nil && in.Validation != nil
	questions[QuestionEvidenceExists] = evidenceExists
	if !evidenceExists {
		redFlags = append(redFlags, FlagEverythingWorksNoProof)
	}

	// Failing tests also mean error output was not dealt with. Flags are
	// additive, not exclusive.
	if in.TestResults != nil && in.TestResults.Failed > 0 {
		redFlags = append(redFlags, FlagSkippingErrorMessages)
	}

	hallucination := len(redFlags) > 0
	allAnswered := true
	for _, key := range questionOrder {
		if !questions[key] {
			allAnswered = false
			break
		}
	}
	completionAllowed := allAnswered && !hallucination

	var message string
	if completionAllowed {
		message = successMessage(evidence)
	} else {
		message = failureMessage(questions, redFlags, evidence)
	}

	return Result{
		Passed:                completionAllowed,
		QuestionsAnswered:     questions,
		EvidenceProvided:      evidence,
		RedFlagsDetected:      redFlags,
		HallucinationDetected: hallucination,
		CompletionAllowed:     completionAllowed,
		Message:               message,
	}
}

func successMessage(evidence Evidence) string {
	var b strings.Builder
	b.WriteString("✅ Feature Complete\n\n")
	b.WriteString("Test Results:\n")
	fmt.Fprintf(&b, "  tests: %d/%d passed\n", evidence.TestResults.Passed, evidence.TestResults.Total)
	if evidence.TestResults.CoveragePercent > 0 {
		fmt.Fprintf(&b, "  coverage: %g%%\n", evidence.TestResults.CoveragePercent)
	}
	b.WriteString("\n")

	b.WriteString("Code Changes:\n")
	fmt.Fprintf(&b, "  Files modified: %s\n", strings.Join(evidence.CodeChanges.FilesModified, ", "))
	fmt.Fprintf(&b, "  Lines: +%d/-%d\n", evidence.CodeChanges.LinesAdded, evidence.CodeChanges.LinesRemoved)
	b.WriteString("\n")

	b.WriteString("Validation:\n")
	fmt.Fprintf(&b, "  lint: %s\n", passFail(evidence.Validation.LintPassed, "passed", "failed"))
	fmt.Fprintf(&b, "  typecheck: %s\n", passFail(evidence.Validation.TypecheckPassed, "passed", "failed"))
	fmt.Fprintf(&b, "  build: %s\n", passFail(evidence.Validation.BuildPassed, "success", "failed"))
	return b.String()
}

func failureMessage(questions map[string]bool, redFlags []RedFlag, evidence Evidence) string {
	var b strings.Builder
	b.WriteString("⚠️ Implementation Incomplete\n\n")

	var failed []string
	for _, key := range questionOrder {
		if !questions[key] {
			failed = append(failed, key)
		}
	}
	if len(failed) > 0 {
		b.WriteString("Failed Self-Check Questions:\n")
		for _, q := range failed {
			fmt.Fprintf(&b, "  ❌ %s\n", q)
		}
		b.WriteString("\n")
	}

	if len(redFlags) > 0 {
		b.WriteString("Hallucination Red Flags Detected:\n")
		for _, flag := range redFlags {
			fmt.Fprintf(&b, "  🚨 %s\n", flag)
		}
		b.WriteString("\n")
	}

	if evidence.TestResults != nil {
		fmt.Fprintf(&b, "Tests: %d/%d passed (%d failing)\n",
			evidence.TestResults.Passed, evidence.TestResults.Total, evidence.TestResults.Failed)
	} else {
		b.WriteString("Tests: NOT RUN\n")
	}

	b.WriteString("\nNext: Fix failing items before claiming completion\n")
	return b.String()
}

func passFail(ok bool, pass, fail string) string {
	if ok {
		return "✅ " + pass
	}
	return "❌ " + fail
}
