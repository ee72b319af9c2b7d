package guard

import (
	"context"
	"log"

	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/ai"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/internal"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/media"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/metrics"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/verdict"
)

// Gate runs the managed guardrail service and the judge model over the same
// content and reports both verdicts side by side.
type Gate struct {
	service ai.ContentChecker
	judge   ai.ContentChecker
}

func NewGate(service ai.ContentChecker, judge ai.ContentChecker) *Gate {
	return &Gate{
		service: service,
		judge:   judge,
	}
}

// Guard checks the given text and/or local image path. Both are optional:
// with neither present the returned Decision is all-clear. Checks run
// sequentially in a fixed order (service text, judge text, service image,
// judge image) and the first error stops the run - the caller gets either a
// complete Decision or an error, never a partial result.
func (g *Gate) Guard(ctx context.Context, text *string, imagePath *string) (*verdict.Decision, error) {
	checkId := internal.NextCheckId()
	decision := verdict.NewDecision()

	if text != nil {
		if err := g.checkText(ctx, checkId, decision, *text); err != nil {
			return nil, err
		}
	}

	if imagePath != nil {
		if err := g.checkImage(ctx, checkId, decision, *imagePath); err != nil {
			return nil, err
		}
	}

	log.Printf("[%s] %s", checkId, decision)
	return decision, nil
}

func (g *Gate) checkText(ctx context.Context, checkId string, decision *verdict.Decision, text string) error {
	// The text under check stays out of the logs.
	log.Printf("[%s] Checking text (%d bytes)", checkId, len(text))

	v, err := runCheck(checkId, metrics.CheckService, metrics.KindText, g.service.Name(), func() (verdict.Verdict, error) {
		return g.service.CheckText(ctx, checkId, text)
	})
	if err != nil {
		return err
	}
	decision.FoldService(v)

	v, err = runCheck(checkId, metrics.CheckJudge, metrics.KindText, g.judge.Name(), func() (verdict.Verdict, error) {
		return g.judge.CheckText(ctx, checkId, text)
	})
	if err != nil {
		return err
	}
	decision.FoldJudge(v)

	return nil
}

// checkImage resolves the path and folds both image verdicts into the
// decision. A missing or unsupported file skips the image checks entirely
// (media.Resolve warns about it) and the decision stands as-is.
func (g *Gate) checkImage(ctx context.Context, checkId string, decision *verdict.Decision, imagePath string) error {
	img, err := media.Resolve(imagePath)
	if err != nil {
		return err
	}
	if img == nil {
		return nil
	}

	log.Printf("[%s] Checking image %s (%s, %d bytes)", checkId, img.Path, img.Format, len(img.Bytes))

	v, err := runCheck(checkId, metrics.CheckService, metrics.KindImage, g.service.Name(), func() (verdict.Verdict, error) {
		return g.service.CheckImage(ctx, checkId, img)
	})
	if err != nil {
		return err
	}
	decision.FoldService(v)

	v, err = runCheck(checkId, metrics.CheckJudge, metrics.KindImage, g.judge.Name(), func() (verdict.Verdict, error) {
		return g.judge.CheckImage(ctx, checkId, img)
	})
	if err != nil {
		return err
	}
	decision.FoldJudge(v)

	return nil
}

func runCheck(checkId string, check metrics.Check, kind metrics.Kind, name string, fn func() (verdict.Verdict, error)) (verdict.Verdict, error) {
	timer := metrics.StartCheckTimer(check, kind)
	defer timer.ObserveDuration()

	v, err := fn()
	if err != nil {
		return "", err
	}

	metrics.RecordCheckVerdict(check, kind, v.String())
	log.Printf("[%s] %s %s verdict: %s", checkId, name, kind, v)
	return v, nil
}
