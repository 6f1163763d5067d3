package routecfg

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Source loads configuration from an S3 object. Deployments that
// ship one configuration to many instances keep it in a bucket and
// point every instance at the same key.
//
// Example:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	src := routecfg.NewS3Source(s3.NewFromConfig(cfg), "my-bucket", "router/routes.yaml")
//	routes, err := routecfg.FromSource(ctx, src)
type S3Source struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Source creates an S3-backed configuration source.
func NewS3Source(client *s3.Client, bucket, key string) *S3Source {
	return &S3Source{
		client: client,
		bucket: bucket,
		key:    key,
	}
}

// Fetch downloads the configuration object.
func (s *S3Source) Fetch(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch route config from s3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read route config from s3: %w", err)
	}
	return data, nil
}

// Describe identifies the bucket and key.
func (s *S3Source) Describe() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}
