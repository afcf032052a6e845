package selfcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullEvidenceInput() Input {
	return Input{
		TestResults: &TestResults{
			Total:           15,
			Passed:          15,
			Failed:          0,
			CoveragePercent: 87.0,
			Output:          "go test: 15 passed",
		},
		CodeChanges: &CodeChanges{
			FilesModified: []string{"auth.go", "auth_test.go"},
			LinesAdded:    50,
			LinesRemoved:  10,
			DiffSummary:   "Added JWT auth middleware",
		},
		Validation: &Validation{
			LintPassed:      true,
			TypecheckPassed: true,
			BuildPassed:     true,
		},
		Requirements:         []string{"JWT authentication", "Token validation"},
		RequirementsProvided: true,
		AssumptionsVerified:  true,
	}
}

func TestNewRejectsUnknownComplexity(t *testing.T) {
	t.Parallel()

	_, err := New(Complexity("heroic"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownComplexity)
}

func TestTokenBudgetPerComplexity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		complexity Complexity
		budget     int
	}{
		{Simple, 200},
		{Medium, 1000},
		{Complex, 2500},
	}
	for _, tc := range cases {
		p, err := New(tc.complexity)
		require.NoError(t, err)
		assert.Equal(t, tc.budget, p.TokenBudget())
	}
}

func TestExecuteAllQuestionsPass(t *testing.T) {
	t.Parallel()

	p, err := New(Medium)
	require.NoError(t, err)

	result := p.Execute(fullEvidenceInput())

	assert.True(t, result.QuestionsAnswered[QuestionTestsAllPass])
	assert.True(t, result.QuestionsAnswered[QuestionRequirementsMet])
	assert.True(t, result.QuestionsAnswered[QuestionNoAssumptions])
	assert.True(t, result.QuestionsAnswered[QuestionEvidenceExists])
	assert.Empty(t, result.RedFlagsDetected)
	assert.False(t, result.HallucinationDetected)
	assert.True(t, result.CompletionAllowed)
	assert.Contains(t, result.Message, "✅ Feature Complete")
	assert.Contains(t, result.Message, "15/15 passed")
}

func TestExecuteFailingTests(t *testing.T) {
	t.Parallel()

	p, _ := New(Medium)
	in := fullEvidenceInput()
	in.TestResults = &TestResults{
		Total:  15,
		Passed: 12,
		Failed: 3,
		Output: "go test: 12 passed, 3 failed",
	}

	result := p.Execute(in)

	assert.False(t, result.QuestionsAnswered[QuestionTestsAllPass])
	assert.Contains(t, result.RedFlagsDetected, FlagCompleteWithFailing)
	assert.Contains(t, result.RedFlagsDetected, FlagSkippingErrorMessages)
	assert.False(t, result.CompletionAllowed)
	assert.Contains(t, result.Message, "3 failing")
	// The remaining questions still run.
	assert.True(t, result.QuestionsAnswered[QuestionRequirementsMet])
	assert.True(t, result.QuestionsAnswered[QuestionNoAssumptions])
	assert.True(t, result.QuestionsAnswered[QuestionEvidenceExists])
}

func TestExecuteNoTestResults(t *testing.T) {
	t.Parallel()

	p, _ := New(Medium)
	in := fullEvidenceInput()
	in.TestResults = nil

	result := p.Execute(in)

	assert.False(t, result.QuestionsAnswered[QuestionTestsAllPass])
	assert.Contains(t, result.RedFlagsDetected, FlagDidntRunTests)
	assert.False(t, result.QuestionsAnswered[QuestionEvidenceExists])
	assert.Contains(t, result.RedFlagsDetected, FlagEverythingWorksNoProof)
	assert.True(t, result.HallucinationDetected)
	assert.False(t, result.CompletionAllowed)
	assert.Contains(t, result.Message, "Tests: NOT RUN")
}

func TestExecuteTestsPassWithoutOutput(t *testing.T) {
	t.Parallel()

	p, _ := New(Medium)
	in := fullEvidenceInput()
	in.TestResults.Output = ""

	result := p.Execute(in)

	assert.True(t, result.QuestionsAnswered[QuestionTestsAllPass])
	assert.Contains(t, result.RedFlagsDetected, FlagTestsPassWithoutOutput)
	assert.True(t, result.HallucinationDetected)
	assert.False(t, result.CompletionAllowed)
}

func TestExecuteRequirementsMissing(t *testing.T) {
	t.Parallel()

	p, _ := New(Medium)

	in := fullEvidenceInput()
	in.Requirements = nil
	in.RequirementsProvided = false
	result := p.Execute(in)
	assert.False(t, result.QuestionsAnswered[QuestionRequirementsMet])
	assert.False(t, result.CompletionAllowed)

	// An explicitly empty list also fails coverage.
	in.Requirements = []string{}
	in.RequirementsProvided = true
	result = p.Execute(in)
	assert.False(t, result.QuestionsAnswered[QuestionRequirementsMet])
}

func TestExecuteAssumptionsNotVerified(t *testing.T) {
	t.Parallel()

	p, _ := New(Medium)
	in := fullEvidenceInput()
	in.AssumptionsVerified = false

	result := p.Execute(in)

	assert.False(t, result.QuestionsAnswered[QuestionNoAssumptions])
	assert.Contains(t, result.RedFlagsDetected, FlagProbablyWorks)
	assert.False(t, result.CompletionAllowed)
	// Only the assumptions question fails.
	assert.True(t, result.QuestionsAnswered[QuestionTestsAllPass])
	assert.True(t, result.QuestionsAnswered[QuestionRequirementsMet])
	assert.True(t, result.QuestionsAnswered[QuestionEvidenceExists])
}

func TestExecuteNoEvidenceAtAll(t *testing.T) {
	t.Parallel()

	p, _ := New(Medium)
	result := p.Execute(Input{
		Requirements:         []string{"Feature A"},
		RequirementsProvided: true,
		AssumptionsVerified:  true,
	})

	assert.False(t, result.QuestionsAnswered[QuestionEvidenceExists])
	assert.Contains(t, result.RedFlagsDetected, FlagEverythingWorksNoProof)
	assert.False(t, result.CompletionAllowed)
}

func TestSuccessMessageDetails(t *testing.T) {
	t.Parallel()

	p, _ := New(Complex)
	in := fullEvidenceInput()
	in.CodeChanges = &CodeChanges{
		FilesModified: []string{"auth.go", "auth_test.go", "config.go"},
		LinesAdded:    120,
		LinesRemoved:  35,
		DiffSummary:   "JWT auth middleware + tests + config",
	}

	result := p.Execute(in)

	require.True(t, result.CompletionAllowed)
	assert.Contains(t, result.Message, "Files modified: auth.go, auth_test.go, config.go")
	assert.Contains(t, result.Message, "Lines: +120/-35")
	assert.Contains(t, result.Message, "lint: ✅ passed")
	assert.Contains(t, result.Message, "typecheck: ✅ passed")
	assert.Contains(t, result.Message, "build: ✅ success")
	assert.Contains(t, result.Message, "coverage: 87%")
}

func TestFailureMessageListsQuestionsAndFlags(t *testing.T) {
	t.Parallel()

	p, _ := New(Complex)
	in := fullEvidenceInput()
	in.TestResults = &TestResults{
		Total:  25,
		Passed: 20,
		Failed: 5,
		Output: "go test: 20/25 passed, 5 failed",
	}
	in.Validation.TypecheckPassed = false

	result := p.Execute(in)

	assert.False(t, result.CompletionAllowed)
	assert.True(t, result.HallucinationDetected)
	assert.Contains(t, result.Message, "⚠️ Implementation Incomplete")
	assert.Contains(t, result.Message, "❌ tests_all_pass")
	assert.Contains(t, result.Message, "🚨 complete_with_failing_tests")
	assert.Contains(t, result.Message, "Tests: 20/25 passed (5 failing)")
	assert.Contains(t, result.Message, "Next: Fix failing items before claiming completion")
}

func TestDetectAntiPatterns(t *testing.T) {
	t.Parallel()

	p, _ := New(Medium)

	assert.Contains(t, p.DetectAntiPatterns("動きました！"), RedFlag("no_evidence"))
	assert.Contains(t, p.DetectAntiPatterns("Probably works fine"), FlagProbablyWorks)
	assert.Contains(t, p.DetectAntiPatterns("テストもpassしました"), FlagDidntRunTests)
	assert.Empty(t, p.DetectAntiPatterns("Here is the diff and the failing test output"))
}

func TestDetectAntiPatternsOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	p, _ := New(Simple)
	detected := p.DetectAntiPatterns("Everything works. Tests pass. 完了です")

	require.Len(t, detected, 3)
	assert.Equal(t, RedFlag("no_verification"), detected[0])
	assert.Equal(t, FlagEverythingWorksNoProof, detected[1])
	assert.Equal(t, FlagTestsPassWithoutOutput, detected[2])
}
