package secrets

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// AWSConfig configures the Secrets Manager store
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

// secretsAPI is the subset of the Secrets Manager client the store uses
type secretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type awsStore struct {
	client secretsAPI
}

func newAWSStore(ctx context.Context, cfg AWSConfig) (*awsStore, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("secrets: aws store requires a region")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		static := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
		opts = append(opts, config.WithCredentialsProvider(aws.NewCredentialsCache(static)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("secrets: failed to load aws config: %w", err)
	}

	return &awsStore{client: secretsmanager.NewFromConfig(awsCfg, func(o *secretsmanager.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})}, nil
}

// Fetch flattens a JSON object payload into keys; any other string is stored under "value"
func (s *awsStore) Fetch(ctx context.Context, ref Reference) (Secret, error) {
	input := &secretsmanager.GetSecretValueInput{SecretId: aws.String(ref.Path)}
	if ref.Version != "" {
		input.VersionId = aws.String(ref.Version)
	}

	out, err := s.client.GetSecretValue(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("secrets: aws fetch failed for %s: %w", ref.Path, err)
	}

	secret := make(Secret)
	if out.SecretString != nil {
		var fields map[string]string
		if err := json.Unmarshal([]byte(*out.SecretString), &fields); err == nil {
			for k, v := range fields {
				secret[k] = v
			}
		} else {
			secret[singleValueKey] = *out.SecretString
		}
	}
	if out.SecretBinary != nil {
		secret[singleValueKey] = base64.StdEncoding.EncodeToString(out.SecretBinary)
	}
	return secret, nil
}
