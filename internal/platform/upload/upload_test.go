package upload

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	files   map[string][]byte
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: map[string][]byte{}}
}

func (m *memoryStore) Save(key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.files[key] = data
	return nil
}

// fileHeader builds a real multipart.FileHeader the same way the HTTP stack
// would, so Open and Size behave like production.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("profile_photo", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)

	return form.File["profile_photo"][0]
}

var (
	pngBytes  = append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 64)...)
	jpegBytes = append([]byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 64)...)
	elfBytes  = append([]byte{0x7f, 'E', 'L', 'F', 0x02, 0x01, 0x01, 0x00}, make([]byte, 64)...)
)

func TestProcessNoFile(t *testing.T) {
	guard := NewGuard(newMemoryStore(), "uploads/profiles", 2<<20)

	ref, err := guard.Process(nil)
	require.NoError(t, err)
	assert.Empty(t, ref)
}

func TestProcessStoresValidPNG(t *testing.T) {
	store := newMemoryStore()
	guard := NewGuard(store, "uploads/profiles", 2<<20)

	ref, err := guard.Process(fileHeader(t, "me.png", pngBytes))
	require.NoError(t, err)

	assert.Regexp(t, `^uploads/profiles/[0-9a-f]{32}\.png$`, ref)
	assert.Equal(t, pngBytes, store.files[ref])
}

func TestProcessMapsJPEGExtension(t *testing.T) {
	store := newMemoryStore()
	guard := NewGuard(store, "uploads/profiles", 2<<20)

	ref, err := guard.Process(fileHeader(t, "whatever.bin", jpegBytes))
	require.NoError(t, err)

	assert.Regexp(t, `\.jpg$`, ref)
}

func TestProcessRejectsDisguisedExecutable(t *testing.T) {
	// An executable renamed to .png and declared image/png by the client
	// must still be rejected: the sniffed type decides.
	store := newMemoryStore()
	guard := NewGuard(store, "uploads/profiles", 2<<20)

	_, err := guard.Process(fileHeader(t, "cute-cat.png", elfBytes))

	var uploadErr *Error
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "Invalid image type.", uploadErr.Message)
	assert.Empty(t, store.files)
}

func TestProcessRejectsOversizedFile(t *testing.T) {
	guard := NewGuard(newMemoryStore(), "uploads/profiles", 16)

	_, err := guard.Process(fileHeader(t, "big.png", pngBytes))

	var uploadErr *Error
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "Image too large (max 2MB).", uploadErr.Message)
}

func TestProcessSurfacesStorageFailure(t *testing.T) {
	store := newMemoryStore()
	store.saveErr = assert.AnError
	guard := NewGuard(store, "uploads/profiles", 2<<20)

	_, err := guard.Process(fileHeader(t, "me.png", pngBytes))

	var uploadErr *Error
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "Failed to save image.", uploadErr.Message)
	assert.ErrorIs(t, err, assert.AnError)
}
