package source

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// S3Repository fetches the configuration document from an Amazon S3 object.
type S3Repository struct {
	Bucket string
	Path   string
	Region string // optional, default credential chain region when empty

	// AccessKeyID and SecretAccessKey, when both set, override the default
	// credential chain with static credentials.
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Repository creates an S3Repository for the given bucket, object key
// and region.
func NewS3Repository(bucket, key, region string) (Repository, error) {
	return &S3Repository{Bucket: bucket, Path: key, Region: region}, nil
}

func (s *S3Repository) Fetch(ctx context.Context) ([]byte, error) {
	var optFns []func(*awsconfig.LoadOptions) error
	if s.Region != "" {
		optFns = append(optFns, awsconfig.WithRegion(s.Region))
	}
	if s.AccessKeyID != "" && s.SecretAccessKey != "" {
		optFns = append(optFns, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKeyID, s.SecretAccessKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		logrus.WithError(err).Debug("error loading aws config")
		return nil, err
	}

	client := s3.NewFromConfig(cfg)
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Path),
	})
	if err != nil {
		logrus.WithError(err).Debug("error getting object")
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func (s *S3Repository) GetType() string {
	return "s3"
}
