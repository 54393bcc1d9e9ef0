package teams

import "fmt"

// MaxNameLength bounds a team name, colour codes included.
const MaxNameLength = 16

// DuplicateTeamError is returned when a team with the same stripped,
// case-folded name already exists.
type DuplicateTeamError struct {
	Name string
}

func (e *DuplicateTeamError) Error() string {
	return fmt.Sprintf("team %q already exists", e.Name)
}

// NameTooLongError is returned for names over MaxNameLength.
type NameTooLongError struct {
	Name string
}

func (e *NameTooLongError) Error() string {
	return fmt.Sprintf("team name %q is longer than %d characters", e.Name, MaxNameLength)
}

// ReservedNameError is returned for names the line renderer owns.
type ReservedNameError struct {
	Name string
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("team name %q is reserved for sidebar lines", e.Name)
}
