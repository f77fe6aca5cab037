package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/defaults"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Storage implements the Storage interface for interacting with AWS S3.
type S3Storage struct {
	Config  Config
	Session *session.Session
}

// NewS3Storage creates a new S3Storage with a new aws.Session.
func NewS3Storage(config Config) S3Storage {
	return S3Storage{
		Config:  config,
		Session: newAWSSession(config),
	}
}

// NewS3StorageWithSession returns a new S3Storage with a given AWS Session.
func NewS3StorageWithSession(config Config, session *session.Session) S3Storage {
	return S3Storage{
		Config:  config,
		Session: session,
	}
}

// Write writes the data to the key in the S3 Bucket.
func (s S3Storage) Write(ctx context.Context, key string, body []byte, options *Options) error {
	svc := s3.New(s.Session)

	poi := s3.PutObjectInput{
		Bucket: aws.String(s.Config.Bucket),
		Key:    aws.String(s.buildKey(key)),
		Body:   bytes.NewReader(body),
	}

	if _, err := svc.PutObjectWithContext(ctx, &poi); err != nil {
		return fmt.Errorf("Failed to write to %v : %v", key, err)
	}

	return nil
}

// Read will read the data from the S3 Bucket.
func (s S3Storage) Read(ctx context.Context, key string) ([]byte, error) {
	svc := s3.New(s.Session)

	document, err := svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Config.Bucket),
		Key:    aws.String(s.buildKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("Failed to read from %v : %v", key, err)
	}
	defer document.Body.Close()

	b, err := io.ReadAll(document.Body)
	if err != nil {
		return nil, fmt.Errorf("Error reading body : %v", err)
	}

	return b, nil
}

// Remove removes the object stored at key, in the S3 Bucket.
func (s S3Storage) Remove(ctx context.Context, key string) error {
	svc := s3.New(s.Session)

	do := &s3.DeleteObjectInput{
		Bucket: aws.String(s.Config.Bucket),
		Key:    aws.String(s.buildKey(key)),
	}

	if _, err := svc.DeleteObjectWithContext(ctx, do); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}

		return fmt.Errorf("Failed to delete object at %v : %v", key, err)
	}

	return nil
}

// Close has nothing to release. Sessions are safe to drop.
func (s S3Storage) Close() error {
	return nil
}

func (s S3Storage) buildKey(key string) string {
	if len(s.Config.Root) == 0 {
		return key
	}
	return s.Config.Root + "/" + key
}

func isNotFound(err error) bool {
	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return true
		}
	}
	return false
}

// newAwsSession creates a new AWS Session from the credentials in the
// Config.
func newAWSSession(config Config) *session.Session {
	// Get the default cred chain
	awsDefaults := defaults.Get()
	defaultCredProviders := defaults.CredProviders(awsDefaults.Config, awsDefaults.Handlers)

	// Static creds first, then the default chain.
	staticCreds := &credentials.StaticProvider{Value: credentials.Value{
		AccessKeyID:     config.AccessKey,
		SecretAccessKey: config.Secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
	}}

	customCredProviders := append([]credentials.Provider{staticCreds}, defaultCredProviders...)
	creds := credentials.NewChainCredentials(customCredProviders)

	awsConfig := aws.NewConfig().
		WithCredentials(creds).
		WithMaxRetries(config.MaxRetries)

	if len(config.Region) > 0 {
		awsConfig = awsConfig.WithRegion(config.Region)
	}

	return session.Must(session.NewSession(awsConfig))
}
