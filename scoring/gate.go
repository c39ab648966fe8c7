// Package scoring holds the judging rules: the submission window gate, the
// mentor/admin score aggregation and the leaderboard ranking. Everything in
// here is a pure function over storage records so the rules stay testable
// without DynamoDB.
package scoring

import (
	"errors"
	"time"

	"github.com/codebreakerd260/SIH2k25-Prod/storage"
)

var ErrRoundNotActive = errors.New("round not active")
var ErrWindowClosed = errors.New("submission window closed")

// CheckSubmissionWindow decides whether a new submission is allowed for the
// given round at the given instant. The round is nil when no active round
// record matched the requested number. Both window ends are inclusive.
func CheckSubmissionWindow(round *storage.Round, now time.Time) error {
	if round == nil || !round.IsActive {
		return ErrRoundNotActive
	}
	if now.Before(round.StartAt) || now.After(round.EndAt) {
		return ErrWindowClosed
	}
	return nil
}
