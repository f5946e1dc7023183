package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

func TestUploadService_UploadImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	img, err := env.upload.UploadImage(ctx, 1, imageHeader(t, "Cover.PNG", pngBytes))
	require.NoError(t, err)
	assert.Regexp(t, `^/uploads/[0-9a-f-]{36}\.png$`, img.URL)
	assert.Equal(t, "Cover.PNG", img.OriginalName)
	assert.Equal(t, int64(len(pngBytes)), img.Size)

	stored, err := os.ReadFile(filepath.Join(env.uploadDir, img.Filename))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)

	_, err = env.upload.UploadImage(ctx, 1, imageHeader(t, "notes.png", []byte("just text")))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.upload.UploadImage(ctx, 1, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUploadService_SetAvatar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.register(t, "ada").User.ID

	user, err := env.upload.SetAvatar(ctx, userID, " /uploads/a.png ")
	require.NoError(t, err)
	require.NotNil(t, user.Avatar)
	assert.Equal(t, "/uploads/a.png", *user.Avatar)

	user, err = env.upload.SetAvatar(ctx, userID, "")
	require.NoError(t, err)
	assert.Nil(t, user.Avatar)

	_, err = env.upload.SetAvatar(ctx, 404, "/uploads/a.png")
	assert.ErrorIs(t, err, ErrNotFound)
}
