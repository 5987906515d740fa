package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/booktracker-app/server/internal/server/config"
)

func newAvatarSvc() *AvatarService {
	cfg := &sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "avatars",
	}
	return NewAvatarService(cfg)
}

func stubPresignSeams(t *testing.T) {
	t.Helper()
	origLoad, origNewS3, origNewPre := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	origPut, origGet := presignPutObject, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			_ = fn(&lo)
		}
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client { return &s3.Client{} }
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
}

func Test_getPresignClient_SuccessAndError(t *testing.T) {
	svc := newAvatarSvc()

	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		if len(optFns) == 0 {
			t.Fatalf("expected config options")
		}
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		return aws.Config{}, nil
	}

	var capturedBaseEndpoint string
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint == nil {
			t.Fatalf("BaseEndpoint not set")
		}
		capturedBaseEndpoint = *opts.BaseEndpoint
		return &s3.Client{}
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		if c == nil {
			t.Fatalf("nil client passed to presign")
		}
		return &s3.PresignClient{}
	}

	pc, err := svc.getPresignClient()
	if err != nil {
		t.Fatalf("getPresignClient err: %v", err)
	}
	if pc == nil {
		t.Fatalf("nil presign client")
	}
	if capturedBaseEndpoint != "http://127.0.0.1:9000" {
		t.Fatalf("BaseEndpoint mismatch: %q", capturedBaseEndpoint)
	}

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	pc, err = svc.getPresignClient()
	if err == nil || err.Error() != "load-fail" {
		t.Fatalf("expected load-fail, got %v (pc=%v)", err, pc)
	}
}

func TestGetPresignedPutURL_KeyAndBucket(t *testing.T) {
	svc := newAvatarSvc()
	stubPresignSeams(t)

	var capturedBucket, capturedKey string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		capturedBucket = *in.Bucket
		capturedKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "http://signed.example/put"}, nil
	}

	key, url, err := svc.GetPresignedPutURL(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetPresignedPutURL err: %v", err)
	}
	if url != "http://signed.example/put" {
		t.Fatalf("unexpected url: %q", url)
	}
	if capturedBucket != "avatars" {
		t.Fatalf("bucket mismatch: %q", capturedBucket)
	}
	if key != capturedKey {
		t.Fatalf("returned key %q differs from presigned key %q", key, capturedKey)
	}
	if !strings.HasPrefix(key, "profile_pictures/u-1/") {
		t.Fatalf("key not namespaced by user: %q", key)
	}

	key2, _, err := svc.GetPresignedPutURL(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("second GetPresignedPutURL err: %v", err)
	}
	if key2 == key {
		t.Fatalf("keys must be unique per upload, got %q twice", key)
	}
}

func TestGetPresignedPutURL_ErrorFromPresign(t *testing.T) {
	svc := newAvatarSvc()
	stubPresignSeams(t)

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-put-fail")
	}

	_, _, err := svc.GetPresignedPutURL(context.Background(), "u-1")
	if err == nil || err.Error() != "presign-put-fail" {
		t.Fatalf("want presign-put-fail, got %v", err)
	}
}

func TestGetPresignedGetURL(t *testing.T) {
	svc := newAvatarSvc()
	stubPresignSeams(t)

	var capturedKey string
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		capturedKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "http://signed.example/get"}, nil
	}

	url, err := svc.GetPresignedGetURL(context.Background(), "profile_pictures/u-1/abc")
	if err != nil {
		t.Fatalf("GetPresignedGetURL err: %v", err)
	}
	if url != "http://signed.example/get" {
		t.Fatalf("unexpected url: %q", url)
	}
	if capturedKey != "profile_pictures/u-1/abc" {
		t.Fatalf("key mismatch: %q", capturedKey)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-get-fail")
	}
	if _, err := svc.GetPresignedGetURL(context.Background(), "k"); err == nil || err.Error() != "presign-get-fail" {
		t.Fatalf("want presign-get-fail, got %v", err)
	}
}
