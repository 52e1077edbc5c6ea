package domain

type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every order status in lifecycle order.
var Statuses = []Status{StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus accepts exactly one of the enumerated values.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", NewValidationError("Invalid status")
	}
	return s, nil
}

// CanTransitionTo reports whether staff may move an order to next. Any valid
// status is reachable from any other.
func (s Status) CanTransitionTo(next Status) bool {
	return next.Valid()
}
