package domain

type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
)

// ActiveStatuses are the statuses shown on the kitchen board.
var ActiveStatuses = []Status{StatusPending, StatusPreparing, StatusReady}

var transitions = map[Status]Status{
	StatusPending:   StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusCompleted,
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted:
		return true
	}
	return false
}

// Next returns the only status s may move to. Completed has none.
func (s Status) Next() (Status, bool) {
	next, ok := transitions[s]
	return next, ok
}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusPreparing || s == StatusReady
}

func (s Status) AcceptsGuestMessage() bool {
	return s == StatusPending || s == StatusPreparing
}

func CanTransition(from, to Status) bool {
	next, ok := transitions[from]
	return ok && next == to
}

func StatusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
