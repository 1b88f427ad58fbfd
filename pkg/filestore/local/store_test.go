package local

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexphase/nexcareer/pkg/filestore"
)

type fakeSigner struct{}

func (fakeSigner) SignObject(key string, ttl time.Duration) (string, error) {
	return "tok:" + key, nil
}

func (fakeSigner) VerifyObject(token, key string) error {
	if token != "tok:"+key {
		return errors.New("bad token")
	}
	return nil
}

func newStore(t *testing.T) *Store {
	return New(t.TempDir(), "http://files.test/api/v1/files/", fakeSigner{})
}

func TestUploadAndOpen(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	res := s.Upload(ctx, filestore.UploadInput{Bucket: "resumes", Path: "u1/1_cv.pdf", Data: []byte("pdf"), Upsert: true})
	require.False(t, res.Failed(), res.Err)
	assert.Equal(t, "http://files.test/api/v1/files/resumes/u1/1_cv.pdf", res.Data)

	signed := s.SignedURL(ctx, "resumes", "u1/1_cv.pdf", time.Minute)
	require.False(t, signed.Failed())
	u, err := url.Parse(signed.Data)
	require.NoError(t, err)
	assert.Equal(t, "tok:resumes/u1/1_cv.pdf", u.Query().Get("token"))

	data, err := s.Open("resumes", "u1/1_cv.pdf", "tok:resumes/u1/1_cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(data))

	_, err = s.Open("resumes", "u1/1_cv.pdf", "forged")
	assert.Error(t, err)
}

func TestUpload_NoUpsertRefusesOverwrite(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	in := filestore.UploadInput{Bucket: "b", Path: "a.txt", Data: []byte("1")}

	require.False(t, s.Upload(ctx, in).Failed())
	assert.ErrorIs(t, s.Upload(ctx, in).Err, ErrExists)

	in.Upsert = true
	assert.False(t, s.Upload(ctx, in).Failed())
}

func TestResolve_RejectsTraversal(t *testing.T) {
	s := newStore(t)
	for _, p := range []string{"../etc/passwd", "a/../../b", "", "/"} {
		res := s.Upload(context.Background(), filestore.UploadInput{Bucket: "b", Path: p, Upsert: true})
		assert.ErrorIs(t, res.Err, ErrInvalidPath, p)
	}
	res := s.Upload(context.Background(), filestore.UploadInput{Bucket: "../x", Path: "f", Upsert: true})
	assert.ErrorIs(t, res.Err, ErrInvalidPath)
}

func TestDelete_Idempotent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.False(t, s.Upload(ctx, filestore.UploadInput{Bucket: "b", Path: "x", Upsert: true}).Failed())

	assert.False(t, s.Delete(ctx, "b", "x").Failed())
	assert.False(t, s.Delete(ctx, "b", "x").Failed())
	assert.ErrorIs(t, s.SignedURL(ctx, "b", "x", time.Minute).Err, ErrNotFound)
}
