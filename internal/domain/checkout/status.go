package checkout

type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	// StatusFailed is transient; Fail lands the session in StatusValidating.
	StatusFailed Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusIdle, StatusValidating, StatusSubmitting, StatusSucceeded, StatusFailed:
		return true
	default:
		return false
	}
}

// accepts input and a new submission attempt
func (s Status) isEditable() bool {
	return s == StatusValidating
}
