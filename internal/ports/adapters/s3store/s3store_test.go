package s3store

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type recordingClient struct {
	in   *s3.PutObjectInput
	body string
}

func (r *recordingClient) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	r.in = in
	b, _ := io.ReadAll(in.Body)
	r.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestPut(t *testing.T) {
	t.Parallel()

	rc := &recordingClient{}
	s := NewWithClient("media", rc)
	if err := s.Put(context.Background(), "shorts/abc/short1.mp4", strings.NewReader("mp4"), "video/mp4"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if aws.ToString(rc.in.Bucket) != "media" || aws.ToString(rc.in.Key) != "shorts/abc/short1.mp4" {
		t.Fatalf("unexpected input %+v", rc.in)
	}
	if aws.ToString(rc.in.ContentType) != "video/mp4" || rc.body != "mp4" {
		t.Fatalf("unexpected content %q %q", aws.ToString(rc.in.ContentType), rc.body)
	}

	if err := s.Put(context.Background(), "k", strings.NewReader(""), ""); err != nil {
		t.Fatal(err)
	}
	if rc.in.ContentType != nil {
		t.Fatalf("content type should be unset")
	}
}
