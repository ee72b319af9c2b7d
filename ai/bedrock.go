package ai

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/config"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/version"
)

// NewBedrockRuntime creates the Bedrock runtime client shared by the
// guardrail and judge clients. When the config carries a credential set it
// is used directly, otherwise the SDK's default provider chain (shared
// config files, instance roles, etc) takes over.
func NewBedrockRuntime(ctx context.Context, cnf *config.InstanceConfig) (*bedrockruntime.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cnf.Region),
		awsconfig.WithAppID(version.AppName),
	}
	if len(cnf.AwsAccessKeyId) > 0 {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cnf.AwsAccessKeyId, cnf.AwsSecretAccessKey, cnf.AwsSessionToken)))
	}

	awsCnf, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return bedrockruntime.NewFromConfig(awsCnf), nil
}
