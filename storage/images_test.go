package storage

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImages(t *testing.T) *Images {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	im, err := NewImages(t.TempDir(), log)
	require.NoError(t, err)
	return im
}

// uploadHeader builds a *multipart.FileHeader the way gin hands one over.
func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["image"][0]
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestSaveKeepsOriginalNameWithTimestampPrefix(t *testing.T) {
	im := testImages(t)

	content := pngBytes(t, 10, 10)
	name, err := im.Save(uploadHeader(t, "photo.png", content))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "-photo.png"), name)

	stored, err := os.ReadFile(filepath.Join(im.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestSaveResizedScalesImage(t *testing.T) {
	im := testImages(t)

	name, err := im.SaveResized(uploadHeader(t, "avatar.png", pngBytes(t, 600, 400)), 300, 300)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "resized-"), name)

	img, err := imaging.Open(filepath.Join(im.Dir(), name))
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 300, bounds.Dx())
	assert.Equal(t, 300, bounds.Dy())
}

func TestSaveResizedRejectsNonImage(t *testing.T) {
	im := testImages(t)
	_, err := im.SaveResized(uploadHeader(t, "notes.txt", []byte("not an image")), 300, 300)
	assert.Error(t, err)
}

func TestRemoveIsBestEffort(t *testing.T) {
	im := testImages(t)

	name, err := im.Save(uploadHeader(t, "temp.png", pngBytes(t, 5, 5)))
	require.NoError(t, err)
	im.Remove(name)
	_, err = os.Stat(filepath.Join(im.Dir(), name))
	assert.True(t, os.IsNotExist(err))

	// Neither a missing file nor an empty name may panic or error.
	im.Remove(name)
	im.Remove("")
}
