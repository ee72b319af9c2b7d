package test

import (
	"time"

	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/config"
)

// MakeConfig returns an InstanceConfig wired for unit tests: fake
// identifiers and a judge retry policy that barely sleeps.
func MakeConfig() *config.InstanceConfig {
	return &config.InstanceConfig{
		Region:              "us-east-1",
		GuardrailIdentifier: "gr-test",
		GuardrailVersion:    "DRAFT",
		ModelId:             "amazon.nova-lite-v1:0",
		JudgeMaxAttempts:    4,
		JudgeBackoffBase:    time.Millisecond,
	}
}
