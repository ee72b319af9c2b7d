package verdict

type Verdict string

// Intervened - the check decided the content violates policy.
const Intervened Verdict = "INTERVENED"

// Clear - the check found no violation.
const Clear Verdict = "CLEAR"

func (v Verdict) String() string {
	return string(v)
}
