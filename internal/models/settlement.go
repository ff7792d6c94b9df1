package models

// Citizenry answers membership questions about a settlement's citizens.
type Citizenry interface {
	Contains(userID string) bool
}

// CitizenSet is an in-memory Citizenry keyed by user ID.
type CitizenSet map[string]struct{}

func NewCitizenSet(userIDs ...string) CitizenSet {
	set := make(CitizenSet, len(userIDs))
	for _, id := range userIDs {
		set[id] = struct{}{}
	}
	return set
}

func (s CitizenSet) Contains(userID string) bool {
	_, ok := s[userID]
	return ok
}

type Settlement struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Citizens Citizenry `json:"-"`
}
