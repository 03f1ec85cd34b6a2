package agent

import (
	"github.com/Vasudevshetty/studysyncs/apperr"
)

// Learner modes shape answer verbosity; the same closed set doubles as
// the classifier's label space.
const (
	LearnerSlow   = "slow"
	LearnerMedium = "medium"
	LearnerFast   = "fast"
)

const DefaultLearnerMode = LearnerMedium

// learnerLabels is ordered: substring fallback in the classifier walks
// this order, so matching stays deterministic.
var learnerLabels = []string{LearnerSlow, LearnerMedium, LearnerFast}

// ValidateLearnerMode rejects anything outside the closed set.
// Silently defaulting would mask caller bugs.
func ValidateLearnerMode(mode string) error {
	for _, label := range learnerLabels {
		if mode == label {
			return nil
		}
	}
	return apperr.Newf(apperr.InvalidArgument, "unknown learner mode %q", mode)
}
