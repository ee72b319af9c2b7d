package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type InstanceConfig struct {
	// Credentials are optional: when the access key is empty the AWS SDK's
	// default provider chain (env, shared config, IMDS, ...) is used instead.
	AwsAccessKeyId     string `envconfig:"aws_access_key_id" default:""`
	AwsSecretAccessKey string `envconfig:"aws_secret_access_key" default:""`
	AwsSessionToken    string `envconfig:"aws_session_token" default:""`

	Region string `envconfig:"region" default:"us-east-1"`

	GuardrailIdentifier string `envconfig:"guardrail_identifier" required:"true"`
	GuardrailVersion    string `envconfig:"guardrail_version" required:"true"`

	ModelId string `envconfig:"model_id" required:"true"`

	// The judge model occasionally replies with something other than its two
	// allowed tokens. Such replies are retried with exponential backoff, up
	// to JudgeMaxAttempts total attempts.
	JudgeMaxAttempts int           `envconfig:"judge_max_attempts" default:"8"`
	JudgeBackoffBase time.Duration `envconfig:"judge_backoff_base" default:"250ms"`
}

// NewInstanceConfig reads the process environment once. Missing required
// values fail here, at startup, rather than on the first check.
func NewInstanceConfig() (*InstanceConfig, error) {
	cnf := &InstanceConfig{}
	err := envconfig.Process("", cnf)
	return cnf, err
}
