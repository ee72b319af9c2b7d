package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Check names which of the two verdict sources produced a result.
type Check string

const CheckService Check = "service"
const CheckJudge Check = "judge"

// Kind names which payload variant was checked.
type Kind string

const KindText Kind = "text"
const KindImage Kind = "image"

var CheckVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "novaguard_check_verdicts",
	Help: "The total number of completed checks, by check, payload kind and verdict",
}, []string{"check", "kind", "verdict"})

var JudgeInvalidReplies = promauto.NewCounter(prometheus.CounterOpts{
	Name: "novaguard_judge_invalid_replies",
	Help: "The total number of judge replies that were not one of the two accepted tokens",
})

var JudgeExhausted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "novaguard_judge_exhausted",
	Help: "The total number of judge checks abandoned after exhausting all retry attempts",
})

func RecordCheckVerdict(check Check, kind Kind, verdict string) {
	CheckVerdicts.With(prometheus.Labels{
		"check":   string(check),
		"kind":    string(kind),
		"verdict": verdict,
	}).Inc()
}

func RecordJudgeInvalidReply() {
	JudgeInvalidReplies.Inc()
}

func RecordJudgeExhausted() {
	JudgeExhausted.Inc()
}
