package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"stayengine/config"
	"stayengine/infras/otel"
	"stayengine/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const defaultRegion = "auto"

// S3 stores documents in the configured bucket of an S3 compatible service.
type S3 interface {
	// PutObject writes data under directory/name and returns its public URL.
	PutObject(ctx context.Context, directory, name, contentType string, data []byte) (url string, err error)
	// ObjectURL returns the public URL of key.
	ObjectURL(key string) string
}

type s3Impl struct {
	client *s3.Client
	bucket string
	domain string
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	opts := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")),
		awsConfig.WithRegion(defaultRegion),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load aws configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{
		client: client,
		bucket: opts.BucketName,
		domain: strings.TrimSuffix(opts.PublicDomain, "/"),
		otel:   otel,
	}
}

func (svc *s3Impl) PutObject(ctx context.Context, directory, name, contentType string, data []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".PutObject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := path.Join(directory, name)

	scope.SetAttributes(map[string]any{
		"bucket": svc.bucket,
		"key":    key,
		"bytes":  len(data),
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to put object")

		return constant.Empty, fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return svc.ObjectURL(key), nil
}

func (svc *s3Impl) ObjectURL(key string) string {
	return svc.domain + "/" + strings.TrimPrefix(key, "/")
}
