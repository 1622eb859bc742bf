package behaviortree

import "fmt"

// Status is the outcome of ticking a node.
type Status uint8

const (
	Success Status = 0
	Failure Status = 1
	Running Status = 2
	Error   Status = 255
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Running:
		return "running"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the four defined outcomes.
func (s Status) Valid() bool {
	switch s {
	case Success, Failure, Running, Error:
		return true
	}
	return false
}

// IsTerminal reports whether s ends a run (anything but Running).
func (s Status) IsTerminal() bool {
	return s != Running
}

// ParseStatus is the inverse of Status.String for the four defined outcomes.
func ParseStatus(text string) (Status, error) {
	switch text {
	case "success":
		return Success, nil
	case "failure":
		return Failure, nil
	case "running":
		return Running, nil
	case "error":
		return Error, nil
	}
	return Error, fmt.Errorf("unknown status %q", text)
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
