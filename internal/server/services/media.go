package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/auth"
	sc "github.com/dmitrijs2005/folio/internal/server/config"
)

// UploadURLValidity is how long a presigned upload URL stays usable.
const UploadURLValidity = 15 * time.Minute

// Upload purposes accepted by MediaService.
var MediaPurposes = []string{"cover", "avatar", "thumbnail", "project"}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// UploadURL is a presigned PUT the client uses to upload a file directly
// to object storage, plus the URL the file will be served from.
type UploadURL struct {
	Key       string
	UploadURL string
	PublicURL string
	ExpiresAt time.Time
}

// MediaService hands out presigned upload URLs; file bytes never pass
// through the server.
type MediaService struct {
	config *sc.Config
	now    func() time.Time
}

func NewMediaService(config *sc.Config) *MediaService {
	return &MediaService{config: config, now: time.Now}
}

// StorageKey builds users/<id>/<purpose>/<yyyy>/<mm>/<uuid>.
func StorageKey(userID int64, purpose string, at time.Time) string {
	return fmt.Sprintf("users/%d/%s/%04d/%02d/%v", userID, purpose, at.Year(), int(at.Month()), uuid.New())
}

func (s *MediaService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignUpload signs a PUT for a new object owned by p.
func (s *MediaService) PresignUpload(ctx context.Context, p *auth.Principal, purpose, contentType string) (*UploadURL, error) {
	if !slices.Contains(MediaPurposes, purpose) {
		return nil, fmt.Errorf("%w: unknown purpose %q", common.ErrorValidation, purpose)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	now := s.now()
	bucket := s.config.S3Bucket
	key := StorageKey(p.UserID, purpose, now)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(UploadURLValidity))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &UploadURL{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: s.publicURL(key),
		ExpiresAt: now.Add(UploadURLValidity),
	}, nil
}

func (s *MediaService) publicURL(key string) string {
	base := s.config.S3PublicBaseURL
	if base == "" {
		base = strings.TrimRight(s.config.S3BaseEndpoint, "/") + "/" + s.config.S3Bucket
	}
	return strings.TrimRight(base, "/") + "/" + key
}
