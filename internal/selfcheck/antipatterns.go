package selfcheck

import "strings"

// antiPattern pairs a claim phrase with the flag it raises. A slice keeps
// detection order deterministic.
type antiPattern struct {
	phrase string
	flag   RedFlag
}

var antiPatterns = []antiPattern{
	{"動きました", "no_evidence"},
	{"テストもpassしました", FlagDidntRunTests},
	{"完了です", "no_verification"},
	{"Probably works", FlagProbablyWorks},
	{"Everything works", FlagEverythingWorksNoProof},
	{"Tests pass", FlagTestsPassWithoutOutput},
}

// DetectAntiPatterns scans a completion claim for phrases that assert
// success without evidence. Duplicate flags are possible when a claim
// contains multiple trigger phrases.
func (p *Protocol) DetectAntiPatterns(claim string) []RedFlag {
	var detected []RedFlag
	for _, ap := range antiPatterns {
		if strings.Contains(claim, ap.phrase) {
			detected = append(detected, ap.flag)
		}
	}
	return detected
}
