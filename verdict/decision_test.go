package verdict

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDecisionDefaultsToClear(t *testing.T) {
	t.Parallel()

	d := NewDecision()
	assert.Equal(t, Clear, d.ServiceVerdict)
	assert.Equal(t, Clear, d.JudgeVerdict)
}

func TestFoldNeverResets(t *testing.T) {
	t.Parallel()

	d := NewDecision()

	// Folding Clear over the default changes nothing
	d.FoldService(Clear)
	d.FoldJudge(Clear)
	assert.Equal(t, Clear, d.ServiceVerdict)
	assert.Equal(t, Clear, d.JudgeVerdict)

	// The text check fires...
	d.FoldService(Intervened)
	assert.Equal(t, Intervened, d.ServiceVerdict)
	assert.Equal(t, Clear, d.JudgeVerdict) // keys are independent

	// ... and a later Clear image check must not undo it
	d.FoldService(Clear)
	assert.Equal(t, Intervened, d.ServiceVerdict)

	d.FoldJudge(Intervened)
	d.FoldJudge(Clear)
	assert.Equal(t, Intervened, d.JudgeVerdict)
}

func TestDecisionJsonKeys(t *testing.T) {
	t.Parallel()

	d := NewDecision()
	d.FoldService(Intervened)

	b, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"service_verdict":"INTERVENED","judge_verdict":"CLEAR"}`, string(b))
}

func TestDecisionString(t *testing.T) {
	t.Parallel()

	d := NewDecision()
	d.FoldJudge(Intervened)
	assert.Equal(t, "service_verdict=CLEAR judge_verdict=INTERVENED", d.String())
}
