package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kustommania/config"
)

func TestLocalDisk_PutAndDelete(t *testing.T) {
	root := t.TempDir()
	disk, err := NewLocalDisk(root, "/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	obj, err := disk.Put(ctx, "motorcycles/abc/photo.jpg", strings.NewReader("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "motorcycles/abc/photo.jpg", obj.Key)
	assert.Equal(t, "/uploads/motorcycles/abc/photo.jpg", obj.URL)

	data, err := os.ReadFile(filepath.Join(root, "motorcycles", "abc", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	require.NoError(t, disk.Delete(ctx, obj.Key))
	_, err = os.Stat(filepath.Join(root, "motorcycles", "abc", "photo.jpg"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is not an error
	assert.NoError(t, disk.Delete(ctx, obj.Key))
}

func TestLocalDisk_KeysStayInsideRoot(t *testing.T) {
	root := t.TempDir()
	disk, err := NewLocalDisk(filepath.Join(root, "uploads"), "/uploads")
	require.NoError(t, err)

	_, err = disk.Put(context.Background(), "../../escape.jpg", strings.NewReader("x"), "image/jpeg")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "uploads", "escape.jpg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "escape.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), &config.Config{StorageDriver: "ftp"})
	assert.Error(t, err)
}
