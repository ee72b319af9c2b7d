package ai

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/media"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/verdict"
)

// ContentChecker is a single source of verdicts over submitted content. Both
// the managed guardrail and the prompted judge implement it. The checkId is
// only used to correlate log lines for one guard invocation.
type ContentChecker interface {
	Name() string
	CheckText(ctx context.Context, checkId string, text string) (verdict.Verdict, error)
	CheckImage(ctx context.Context, checkId string, img *media.Image) (verdict.Verdict, error)
}

// GuardrailApi is the slice of the Bedrock runtime used by the guardrail
// client. *bedrockruntime.Client satisfies it; tests substitute their own.
type GuardrailApi interface {
	ApplyGuardrail(ctx context.Context, params *bedrockruntime.ApplyGuardrailInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ApplyGuardrailOutput, error)
}

// ConverseApi is the slice of the Bedrock runtime used by the judge client.
// *bedrockruntime.Client satisfies it; tests substitute their own.
type ConverseApi interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}
