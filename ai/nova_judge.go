package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/document"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"
	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"

	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/config"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/media"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/metrics"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/verdict"
)

const defaultJudgeMaxAttempts = 8
const defaultJudgeBackoffBase = 250 * time.Millisecond

// judgeMaxTokens bounds the reply length. The judge only ever needs enough
// room for one of its two tokens - the rest is headroom for models that
// insist on padding their answer.
const judgeMaxTokens = 300

// errInvalidJudgeReply marks a reply that arrived intact but wasn't one of
// the two accepted tokens. It never escapes this package: callers see a
// JudgeExhaustedError once the retry budget runs out.
var errInvalidJudgeReply = errors.New("invalid judge reply")

// JudgeExhaustedError is returned when the judge kept answering with
// something other than its two accepted tokens until no attempts were left.
type JudgeExhaustedError struct {
	Attempts  int
	LastReply string
}

func (e *JudgeExhaustedError) Error() string {
	return fmt.Sprintf("no valid judge reply after %d attempts (last reply: '%s')", e.Attempts, e.LastReply)
}

type NovaJudge struct {
	// Implements ContentChecker

	api         ConverseApi
	modelId     string
	maxAttempts int
	backoffBase time.Duration
}

func NewNovaJudge(cnf *config.InstanceConfig, api ConverseApi) (ContentChecker, error) {
	if len(cnf.ModelId) == 0 {
		return nil, errors.New("model id not set")
	}
	maxAttempts := cnf.JudgeMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultJudgeMaxAttempts
	}
	backoffBase := cnf.JudgeBackoffBase
	if backoffBase <= 0 {
		backoffBase = defaultJudgeBackoffBase
	}
	return &NovaJudge{
		api:         api,
		modelId:     cnf.ModelId,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
	}, nil
}

func (j *NovaJudge) Name() string {
	return "nova"
}

func (j *NovaJudge) CheckText(ctx context.Context, checkId string, text string) (verdict.Verdict, error) {
	return j.converse(ctx, checkId, []types.ContentBlock{
		&types.ContentBlockMemberText{Value: judgeTextMessage(text)},
	})
}

func (j *NovaJudge) CheckImage(ctx context.Context, checkId string, img *media.Image) (verdict.Verdict, error) {
	format, err := converseImageFormat(img.Format)
	if err != nil {
		return "", err
	}
	return j.converse(ctx, checkId, []types.ContentBlock{
		&types.ContentBlockMemberText{Value: judgeImageMessage()},
		&types.ContentBlockMemberImage{
			Value: types.ImageBlock{
				Format: format,
				Source: &types.ImageSourceMemberBytes{
					Value: img.Bytes,
				},
			},
		},
	})
}

// converse asks the judge for a verdict on the given content, retrying while
// the model answers with anything other than its two accepted tokens. The
// request is built once and resent unchanged, so retrying is safe. Transport
// and endpoint errors are environmental rather than self-inflicted: those
// are never retried and propagate to the caller immediately.
func (j *NovaJudge) converse(ctx context.Context, checkId string, content []types.ContentBlock) (verdict.Verdict, error) {
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(j.modelId),
		System: []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: judgeSystemPrompt},
		},
		Messages: []types.Message{
			{
				Role:    types.ConversationRoleUser,
				Content: content,
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(judgeMaxTokens),
			Temperature: aws.Float32(0),
			TopP:        aws.Float32(1),
		},
		// Nova takes topK as a model-specific field rather than a standard
		// inference parameter. topK=1 with temperature 0 pins the model to
		// its single most likely token at every step.
		AdditionalModelRequestFields: document.NewLazyDocument(map[string]any{
			"inferenceConfig": map[string]any{
				"topK": 1,
			},
		}),
	}

	var out verdict.Verdict
	var lastReply string
	attempts := 0

	op := func() error {
		attempts++
		res, err := j.api.Converse(ctx, input)
		if err != nil {
			var apiErr smithy.APIError
			if errors.As(err, &apiErr) {
				log.Printf("[%s] Judge endpoint returned %s: %s", checkId, apiErr.ErrorCode(), apiErr.ErrorMessage())
			}
			return backoff.Permanent(errors.Wrap(err, "error while requesting the judge model"))
		}

		reply, ok := firstTextSegment(res)
		if !ok {
			return backoff.Permanent(errors.New("judge reply contained no text segment"))
		}

		switch reply {
		case judgeTokenIntervened:
			out = verdict.Intervened
			return nil
		case judgeTokenNone:
			out = verdict.Clear
			return nil
		default:
			lastReply = reply
			metrics.RecordJudgeInvalidReply()
			log.Printf("[%s] Unexpected judge reply '%s'. Retrying...", checkId, reply)
			return errInvalidJudgeReply
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = j.backoffBase
	bo.MaxElapsedTime = 0 // the attempt budget is the only bound

	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(j.maxAttempts-1)), ctx))
	if err != nil {
		if errors.Is(err, errInvalidJudgeReply) {
			metrics.RecordJudgeExhausted()
			exhausted := &JudgeExhaustedError{Attempts: attempts, LastReply: lastReply}
			log.Printf("[%s] %s", checkId, exhausted.Error())
			return "", exhausted
		}
		log.Printf("[%s] %+v", checkId, err)
		return "", err
	}
	return out, nil
}

// firstTextSegment digs the first text block out of a converse reply. A
// reply with no message or no text block at all can't carry a verdict and
// isn't worth retrying.
func firstTextSegment(res *bedrockruntime.ConverseOutput) (string, bool) {
	msg, ok := res.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", false
	}
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			return text.Value, true
		}
	}
	return "", false
}

func converseImageFormat(format media.Format) (types.ImageFormat, error) {
	switch format {
	case media.FormatJpeg:
		return types.ImageFormatJpeg, nil
	case media.FormatPng:
		return types.ImageFormatPng, nil
	default:
		return "", errors.Errorf("unsupported image format '%s'", format)
	}
}
