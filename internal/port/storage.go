package port

import (
	"context"
	"io"
)

// PutInput describes an object to store. The bucket is fixed per client.
type PutInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// PutOutput contains the result of a successful upload.
type PutOutput struct {
	Key      string
	Location string
}

// ObjectStorage keeps uploaded source documents and fill screenshots.
type ObjectStorage interface {
	Put(ctx context.Context, input PutInput) (*PutOutput, error)
	PresignGet(ctx context.Context, key string, expirySeconds int64) (string, error)
	Delete(ctx context.Context, key string) error
}
