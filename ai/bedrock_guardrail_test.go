package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/assert"

	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/media"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/test"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/verdict"
)

// makeWireClient returns a real Bedrock runtime client pointed at the mock
// server. SDK-level retries are disabled so call counts mean what they say.
func makeWireClient(srv *httptest.Server) *bedrockruntime.Client {
	return bedrockruntime.New(bedrockruntime.Options{
		BaseEndpoint: aws.String(srv.URL),
		Region:       "us-east-1",
		Credentials:  credentials.NewStaticCredentialsProvider("not_a_real_key", "not_a_real_secret", ""),
		HTTPClient:   srv.Client(),
		Retryer:      aws.NopRetryer{},
	})
}

// applyGuardrailRequest mirrors the REST-JSON shape of ApplyGuardrail
// requests closely enough for assertions.
type applyGuardrailRequest struct {
	Source  string `json:"source"`
	Content []struct {
		Text *struct {
			Text       string   `json:"text"`
			Qualifiers []string `json:"qualifiers"`
		} `json:"text"`
		Image *struct {
			Format string `json:"format"`
			Source struct {
				Bytes string `json:"bytes"`
			} `json:"source"`
		} `json:"image"`
	} `json:"content"`
}

func TestGuardrailModeration(t *testing.T) {
	t.Parallel()

	// This mocks the Bedrock REST API to drive the guardrail client through 3 cases:
	//  1. Neutral text (action NONE)
	//  2. Text the guardrail blocks (action GUARDRAIL_INTERVENED)
	//  3. An image the guardrail blocks

	// Dev note: this HTTP handler is sensitive to changes in the AWS SDK's wire format. If assertions
	// in here start failing after an SDK upgrade, check the serialized request shapes first.
	mockApi := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/guardrail/gr-test/version/DRAFT/apply", r.URL.Path)

		b, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatal(err) // "should never happen"
		}
		req := applyGuardrailRequest{}
		if err = json.Unmarshal(b, &req); err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, "INPUT", req.Source)
		if len(req.Content) != 1 {
			t.Fatal("expected exactly one content block")
		}

		action := "NONE"
		block := req.Content[0]
		if block.Text != nil {
			assert.Equal(t, []string{"guard_content"}, block.Text.Qualifiers)
			if strings.Contains(block.Text.Text, "BR_BLOCK") {
				action = "GUARDRAIL_INTERVENED"
			}
		} else if block.Image != nil {
			assert.Equal(t, "png", block.Image.Format)
			assert.Equal(t, base64.StdEncoding.EncodeToString(test.TinyPng()), block.Image.Source.Bytes)
			action = "GUARDRAIL_INTERVENED"
		} else {
			t.Fatal("content block carries neither text nor image")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"action":"` + action + `"}`))
	}))
	defer mockApi.Close()

	checker, err := NewGuardrailModeration(test.MakeConfig(), makeWireClient(mockApi))
	assert.NoError(t, err)
	assert.NotNil(t, checker)

	v, err := checker.CheckText(context.Background(), "check-1", "this text is fine")
	assert.NoError(t, err)
	assert.Equal(t, verdict.Clear, v)

	v, err = checker.CheckText(context.Background(), "check-2", "BR_BLOCK this text")
	assert.NoError(t, err)
	assert.Equal(t, verdict.Intervened, v)

	v, err = checker.CheckImage(context.Background(), "check-3", &media.Image{
		Path:   "blocked.png",
		Format: media.FormatPng,
		Bytes:  test.TinyPng(),
	})
	assert.NoError(t, err)
	assert.Equal(t, verdict.Intervened, v)
}

func TestGuardrailModerationRejectsOversizedImages(t *testing.T) {
	t.Parallel()

	api := test.MustMakeBedrock(t)
	checker, err := NewGuardrailModeration(test.MakeConfig(), api)
	assert.NoError(t, err)

	img := &media.Image{
		Path:   "huge.png",
		Format: media.FormatPng,
		Bytes:  make([]byte, MaxGuardrailImageSize+1),
	}
	_, err = checker.CheckImage(context.Background(), "check-1", img)

	tooLarge := &ImageTooLargeError{}
	assert.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, MaxGuardrailImageSize+1, tooLarge.Size)
	assert.Equal(t, 0, api.ApplyGuardrailCalls, "oversized images must fail before any call goes out")
}

func TestGuardrailModerationPropagatesEndpointErrors(t *testing.T) {
	t.Parallel()

	api := test.MustMakeBedrock(t)
	api.GuardrailErr = errors.New("simulated outage")
	checker, err := NewGuardrailModeration(test.MakeConfig(), api)
	assert.NoError(t, err)

	_, err = checker.CheckText(context.Background(), "check-1", "some text")
	assert.ErrorContains(t, err, "error while applying the guardrail")
	assert.Equal(t, 1, api.ApplyGuardrailCalls, "the endpoint's answer is authoritative - no retrying")
}

func TestGuardrailModerationRejectsUnknownActions(t *testing.T) {
	t.Parallel()

	api := test.MustMakeBedrock(t).WithGuardrailActions(types.GuardrailAction("BANANA"))
	checker, err := NewGuardrailModeration(test.MakeConfig(), api)
	assert.NoError(t, err)

	_, err = checker.CheckText(context.Background(), "check-1", "some text")
	assert.ErrorContains(t, err, "unexpected guardrail action")
	assert.Equal(t, 1, api.ApplyGuardrailCalls)
}

func TestGuardrailModerationRejectsUnknownImageFormats(t *testing.T) {
	t.Parallel()

	api := test.MustMakeBedrock(t)
	checker, err := NewGuardrailModeration(test.MakeConfig(), api)
	assert.NoError(t, err)

	img := &media.Image{
		Path:   "anim.gif",
		Format: media.Format("gif"),
		Bytes:  []byte{0x47, 0x49, 0x46},
	}
	_, err = checker.CheckImage(context.Background(), "check-1", img)
	assert.ErrorContains(t, err, "unsupported image format")
	assert.Equal(t, 0, api.ApplyGuardrailCalls)
}

func TestNewGuardrailModerationRequiresIdentifiers(t *testing.T) {
	t.Parallel()

	cnf := test.MakeConfig()
	cnf.GuardrailIdentifier = ""
	_, err := NewGuardrailModeration(cnf, test.MustMakeBedrock(t))
	assert.ErrorContains(t, err, "guardrail identifier or version not set")

	cnf = test.MakeConfig()
	cnf.GuardrailVersion = ""
	_, err = NewGuardrailModeration(cnf, test.MustMakeBedrock(t))
	assert.ErrorContains(t, err, "guardrail identifier or version not set")
}
