package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type R2Config struct {
	Bucket       string
	AccessKeyID  string
	SecretKey    string
	Endpoint     string // https://<account-id>.r2.cloudflarestorage.com
	PublicDomain string // custom domain or r2.dev URL
}

// R2 stores images in a Cloudflare R2 bucket through the S3 API.
type R2 struct {
	s3     *s3.Client
	bucket string
	domain string
}

func NewR2(ctx context.Context, cfg R2Config) (*R2, error) {
	if cfg.Bucket == "" || cfg.AccessKeyID == "" || cfg.SecretKey == "" || cfg.Endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &R2{s3: client, bucket: cfg.Bucket, domain: strings.TrimRight(cfg.PublicDomain, "/")}, nil
}

func (r *R2) Upload(ctx context.Context, slug string, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		objectName := productObjectName(slug, fh.Filename)

		f, err := fh.Open()
		if err != nil {
			return urls, fmt.Errorf("open file: %w", err)
		}
		_, err = r.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(r.bucket),
			Key:         aws.String(objectName),
			Body:        f,
			ContentType: aws.String(contentType(fh)),
		})
		_ = f.Close()
		if err != nil {
			return urls, fmt.Errorf("upload %s: %w", fh.Filename, err)
		}
		urls = append(urls, r.publicURL(objectName))
	}
	return urls, nil
}

func (r *R2) Delete(ctx context.Context, objectNames []string) error {
	var firstErr error
	for _, obj := range objectNames {
		if obj == "" {
			continue
		}
		_, err := r.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(r.bucket),
			Key:    aws.String(obj),
		})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", obj, err)
		}
	}
	return firstErr
}

func (r *R2) publicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", r.domain, r.bucket, objectName)
}

func (r *R2) ObjectName(raw string) (string, error) {
	return r2ObjectName(r.domain, r.bucket, raw)
}

func r2ObjectName(domain, bucket, raw string) (string, error) {
	prefix := domain + "/" + bucket + "/"
	if domain != "" && strings.HasPrefix(raw, prefix) {
		return strings.TrimPrefix(raw, prefix), nil
	}
	return "", fmt.Errorf("not a public url of bucket %s", bucket)
}
