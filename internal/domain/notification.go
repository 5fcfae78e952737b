package domain

// Notifier dispatches outbound candidate mail. Implementations must never
// block the caller and must never surface delivery failures: a dropped
// message is logged, not returned.
type Notifier interface {
	CandidatureConfirmation(c *Candidate, job *Job)
	CandidateMessage(c *Candidate, subject, body string)
}
