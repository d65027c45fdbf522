package submission

import "time"

// Reserved document keys written by the pipeline itself.
const (
	KeyLatitude          = "latitude"
	KeyLongitude         = "longitude"
	KeyFamilyMembersData = "family_members_data"
	KeyTimestamp         = "Timestamp"
	KeySecretToken       = "secretToken"

	HeaderSubmissionID = "X-Submission-ID"
)

// Snapshot is the form content captured at submit time.
type Snapshot struct {
	Fields            map[string]string
	Latitude          string
	Longitude         string
	FamilyMembersData string
}

// Outcome is the tri-state result of one send.
type Outcome int

const (
	// OutcomeSentUnconfirmed means the request completed but the response
	// was not inspected.
	OutcomeSentUnconfirmed Outcome = iota
	OutcomeAcknowledged
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSentUnconfirmed:
		return "sent_unconfirmed"
	case OutcomeAcknowledged:
		return "acknowledged"
	default:
		return "failed"
	}
}

// Succeeded reports whether the form should treat the send as done.
func (o Outcome) Succeeded() bool {
	return o != OutcomeFailed
}

type Result struct {
	SubmissionID string
	Outcome      Outcome
	StatusCode   int
	Duration     time.Duration
	Err          error
}
