package test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/assert"
)

// ScriptedBedrock stands in for the Bedrock runtime. Guardrail actions and
// judge replies are consumed in order; the last scripted value repeats once
// the script runs dry. With nothing scripted, everything comes back clear.
type ScriptedBedrock struct {
	T *testing.T

	GuardrailActions []types.GuardrailAction
	GuardrailErr     error
	ConverseReplies  []string
	ConverseErr      error
	ConverseNoText   bool

	ApplyGuardrailCalls int
	ConverseCalls       int

	LastApplyGuardrailInput *bedrockruntime.ApplyGuardrailInput
	LastConverseInput       *bedrockruntime.ConverseInput
}

func MustMakeBedrock(t *testing.T) *ScriptedBedrock {
	return &ScriptedBedrock{
		T: t,
	}
}

func (s *ScriptedBedrock) WithGuardrailActions(actions ...types.GuardrailAction) *ScriptedBedrock {
	s.GuardrailActions = actions
	return s
}

func (s *ScriptedBedrock) WithConverseReplies(replies ...string) *ScriptedBedrock {
	s.ConverseReplies = replies
	return s
}

func (s *ScriptedBedrock) ApplyGuardrail(ctx context.Context, params *bedrockruntime.ApplyGuardrailInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ApplyGuardrailOutput, error) {
	assert.NotNil(s.T, ctx, "context is required")

	s.ApplyGuardrailCalls++
	s.LastApplyGuardrailInput = params

	if s.GuardrailErr != nil {
		return nil, s.GuardrailErr
	}

	action := types.GuardrailActionNone
	if len(s.GuardrailActions) > 0 {
		action = s.GuardrailActions[0]
		if len(s.GuardrailActions) > 1 {
			s.GuardrailActions = s.GuardrailActions[1:]
		}
	}

	return &bedrockruntime.ApplyGuardrailOutput{
		Action: action,
	}, nil
}

func (s *ScriptedBedrock) Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	assert.NotNil(s.T, ctx, "context is required")

	s.ConverseCalls++
	s.LastConverseInput = params

	if s.ConverseErr != nil {
		return nil, s.ConverseErr
	}

	if s.ConverseNoText {
		return &bedrockruntime.ConverseOutput{
			Output: &types.ConverseOutputMemberMessage{
				Value: types.Message{
					Role: types.ConversationRoleAssistant,
				},
			},
			StopReason: types.StopReasonEndTurn,
		}, nil
	}

	reply := "NONE"
	if len(s.ConverseReplies) > 0 {
		reply = s.ConverseReplies[0]
		if len(s.ConverseReplies) > 1 {
			s.ConverseReplies = s.ConverseReplies[1:]
		}
	}

	return &bedrockruntime.ConverseOutput{
		Output: &types.ConverseOutputMemberMessage{
			Value: types.Message{
				Role: types.ConversationRoleAssistant,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: reply},
				},
			},
		},
		StopReason: types.StopReasonEndTurn,
	}, nil
}
