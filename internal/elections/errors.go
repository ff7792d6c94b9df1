package elections

import "github.com/pkg/errors"

var (
	ErrInvalidIndex = errors.New("invalid election index")
	ErrNotEligible  = errors.New("not eligible to vote in settlement")
	ErrVoteRejected = errors.New("vote rejected")
	ErrUnavailable  = errors.New("elections unavailable")
)
