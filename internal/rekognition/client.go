package rekognition

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/richxcame/kyc-nova/pkg/config"
)

// LoadAWSConfig resolves an aws.Config for one credential set.
// The static pair is required; the default chain is never consulted so that
// an unconfigured deployment stays in fallback mode.
func LoadAWSConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	if !cfg.HasCredentials() {
		return aws.Config{}, ErrNotConfigured
	}

	static := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(aws.NewCredentialsCache(static)),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}
	return awsCfg, nil
}

// NewClient builds a Rekognition client from a resolved aws.Config
func NewClient(awsCfg aws.Config) *rekognition.Client {
	return rekognition.NewFromConfig(awsCfg)
}
