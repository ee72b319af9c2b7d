package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"

	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/config"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/media"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/verdict"
)

// MaxGuardrailImageSize is the upper bound ApplyGuardrail places on image
// payloads (4 MiB). Checked locally so oversized payloads don't spend quota
// or latency on a request that can only fail.
const MaxGuardrailImageSize = 4 * 1024 * 1024

type ImageTooLargeError struct {
	Size int
}

func (e *ImageTooLargeError) Error() string {
	return fmt.Sprintf("image size (%d bytes) exceeds the maximum allowed size (%d bytes)", e.Size, MaxGuardrailImageSize)
}

type GuardrailModeration struct {
	// Implements ContentChecker

	api        GuardrailApi
	identifier string
	version    string
}

func NewGuardrailModeration(cnf *config.InstanceConfig, api GuardrailApi) (ContentChecker, error) {
	if len(cnf.GuardrailIdentifier) == 0 || len(cnf.GuardrailVersion) == 0 {
		return nil, errors.New("guardrail identifier or version not set")
	}
	return &GuardrailModeration{
		api:        api,
		identifier: cnf.GuardrailIdentifier,
		version:    cnf.GuardrailVersion,
	}, nil
}

func (m *GuardrailModeration) Name() string {
	return "guardrail"
}

func (m *GuardrailModeration) CheckText(ctx context.Context, checkId string, text string) (verdict.Verdict, error) {
	return m.apply(ctx, checkId, []types.GuardrailContentBlock{
		&types.GuardrailContentBlockMemberText{
			Value: types.GuardrailTextBlock{
				Text: aws.String(text),
				Qualifiers: []types.GuardrailContentQualifier{
					types.GuardrailContentQualifierGuardContent,
				},
			},
		},
	})
}

func (m *GuardrailModeration) CheckImage(ctx context.Context, checkId string, img *media.Image) (verdict.Verdict, error) {
	if len(img.Bytes) > MaxGuardrailImageSize {
		return "", &ImageTooLargeError{Size: len(img.Bytes)}
	}
	format, err := guardrailImageFormat(img.Format)
	if err != nil {
		return "", err
	}
	return m.apply(ctx, checkId, []types.GuardrailContentBlock{
		&types.GuardrailContentBlockMemberImage{
			Value: types.GuardrailImageBlock{
				Format: format,
				Source: &types.GuardrailImageSourceMemberBytes{
					Value: img.Bytes,
				},
			},
		},
	})
}

// apply makes exactly one ApplyGuardrail call. The endpoint's answer is
// authoritative, so there is no retrying at this level: errors go straight
// back to the caller.
func (m *GuardrailModeration) apply(ctx context.Context, checkId string, content []types.GuardrailContentBlock) (verdict.Verdict, error) {
	res, err := m.api.ApplyGuardrail(ctx, &bedrockruntime.ApplyGuardrailInput{
		GuardrailIdentifier: aws.String(m.identifier),
		GuardrailVersion:    aws.String(m.version),
		Source:              types.GuardrailContentSourceInput,
		Content:             content,
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			log.Printf("[%s] Guardrail endpoint returned %s: %s", checkId, apiErr.ErrorCode(), apiErr.ErrorMessage())
		}
		wrapped := errors.Wrap(err, "error while applying the guardrail")
		log.Printf("[%s] %+v", checkId, wrapped)
		return "", wrapped
	}

	switch res.Action {
	case types.GuardrailActionGuardrailIntervened:
		return verdict.Intervened, nil
	case types.GuardrailActionNone:
		return verdict.Clear, nil
	default:
		return "", errors.Errorf("unexpected guardrail action '%s'", res.Action)
	}
}

func guardrailImageFormat(format media.Format) (types.GuardrailImageFormat, error) {
	switch format {
	case media.FormatJpeg:
		return types.GuardrailImageFormatJpeg, nil
	case media.FormatPng:
		return types.GuardrailImageFormatPng, nil
	default:
		return "", errors.Errorf("unsupported image format '%s'", format)
	}
}
