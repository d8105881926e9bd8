package file

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appcfg "github.com/docwell/editor-server/internal/config"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes to an S3 compatible bucket.
type S3Store struct {
	api          s3API
	bucket       string
	prefix       string
	endpoint     *url.URL
	region       string
	customDomain string
	pathStyle    bool
}

func NewS3Store(_ context.Context, opts appcfg.S3Config) (*S3Store, error) {
	bucket := strings.TrimSpace(opts.Bucket)
	region := strings.TrimSpace(opts.Region)
	accessKey := strings.TrimSpace(opts.AccessKeyID)
	secretKey := strings.TrimSpace(opts.SecretAccessKey)
	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket/region/access_key_id/secret_access_key are required")
	}

	var endpoint *url.URL
	pathStyle := opts.PathStyle
	if raw := strings.TrimSpace(opts.Endpoint); raw != "" {
		if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
			raw = "https://" + raw
		}
		parsed, err := url.Parse(strings.TrimSuffix(raw, "/"))
		if err != nil || parsed.Host == "" {
			return nil, fmt.Errorf("invalid s3 endpoint: %s", raw)
		}
		endpoint = parsed
		// Custom endpoints (MinIO, R2) are always addressed path style.
		pathStyle = true
	}

	client := s3.NewFromConfig(aws.Config{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	}, func(o *s3.Options) {
		if endpoint != nil {
			o.BaseEndpoint = aws.String(endpoint.String())
		}
		o.UsePathStyle = pathStyle
	})

	return newS3Store(client, opts, endpoint, pathStyle), nil
}

func newS3Store(api s3API, opts appcfg.S3Config, endpoint *url.URL, pathStyle bool) *S3Store {
	return &S3Store{
		api:          api,
		bucket:       strings.TrimSpace(opts.Bucket),
		prefix:       strings.Trim(opts.Prefix, "/"),
		endpoint:     endpoint,
		region:       strings.TrimSpace(opts.Region),
		customDomain: strings.TrimRight(strings.TrimSpace(opts.CustomDomain), "/"),
		pathStyle:    pathStyle,
	}
}

func (s *S3Store) Driver() string { return "s3" }

func (s *S3Store) Put(ctx context.Context, key string, payload []byte, contentType string) (*Object, error) {
	key = normalizeObjectKey(key)
	if key == "" {
		return nil, ErrInvalidKey
	}
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	contentType = DetectContentType(key, payload, contentType)

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(payload),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(payload))),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 put %s: %w", key, err)
	}
	return &Object{Name: path.Base(key), URL: s.publicURL(key), ContentType: contentType, Size: len(payload)}, nil
}

func (s *S3Store) publicURL(key string) string {
	if s.customDomain != "" {
		return s.customDomain + "/" + key
	}
	if s.endpoint != nil {
		u := *s.endpoint
		if s.pathStyle {
			u.Path = path.Join("/", u.Path, s.bucket, key)
		} else {
			u.Host = s.bucket + "." + u.Host
			u.Path = path.Join("/", u.Path, key)
		}
		return u.String()
	}
	if s.pathStyle {
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", s.region, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
