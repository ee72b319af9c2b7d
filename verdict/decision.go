package verdict

import "fmt"

// Decision is the per-invocation result record: one verdict from the managed
// guardrail service and one from the judge model. The two are reported
// independently and never combined into a single pass/fail - that call is
// left to the consumer.
type Decision struct {
	ServiceVerdict Verdict `json:"service_verdict"`
	JudgeVerdict   Verdict `json:"judge_verdict"`
}

func NewDecision() *Decision {
	return &Decision{
		ServiceVerdict: Clear,
		JudgeVerdict:   Clear,
	}
}

// FoldService merges a service-side verdict into the decision. Text and image
// results share the key: once Intervened, a later Clear never resets it.
func (d *Decision) FoldService(v Verdict) {
	if v == Intervened {
		d.ServiceVerdict = Intervened
	}
}

// FoldJudge merges a judge-side verdict into the decision, with the same
// fold-up-only semantics as FoldService.
func (d *Decision) FoldJudge(v Verdict) {
	if v == Intervened {
		d.JudgeVerdict = Intervened
	}
}

func (d *Decision) String() string {
	return fmt.Sprintf("service_verdict=%s judge_verdict=%s", d.ServiceVerdict, d.JudgeVerdict)
}
