package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kustommania/models"
	"kustommania/repositories"
	"kustommania/testutil"
)

type upload struct {
	name        string
	contentType string
	body        string
}

// fileHeaders builds multipart file headers the way gin hands them over
func fileHeaders(t *testing.T, files ...upload) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["images"]
}

func newImageService(t *testing.T, maxBytes int64) (*ImageService, *repositories.ImageRepository, *memDisk, models.Motorcycle) {
	t.Helper()
	db := testutil.NewDB(t)
	disk := newMemDisk()
	imageRepo := repositories.NewImageRepository(db)
	svc := NewImageService(imageRepo, repositories.NewMotorcycleRepository(db), disk, maxBytes)
	moto := testutil.CreateMotorcycle(t, db, models.Motorcycle{Name: "Fat Boy"})
	return svc, imageRepo, disk, moto
}

func TestImageService_Upload(t *testing.T) {
	svc, _, disk, moto := newImageService(t, 1<<20)
	ctx := context.Background()

	created, err := svc.Upload(ctx, moto.ID, fileHeaders(t,
		upload{"Frente.JPG", "image/jpeg", "front"},
		upload{"lado.png", "image/png", "side"},
	))
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.True(t, created[0].IsPrimary)
	assert.False(t, created[1].IsPrimary)
	assert.Equal(t, 0, created[0].DisplayOrder)
	assert.Equal(t, 1, created[1].DisplayOrder)
	assert.Regexp(t, `^motorcycles/`+moto.ID+`/[0-9a-f-]{36}\.jpg$`, created[0].StorageKey)
	assert.Equal(t, "/uploads/"+created[0].StorageKey, created[0].ImageURL)
	assert.True(t, disk.has(created[1].StorageKey))

	more, err := svc.Upload(ctx, moto.ID, fileHeaders(t, upload{"atras.webp", "image/webp", "back"}))
	require.NoError(t, err)
	assert.Equal(t, 2, more[0].DisplayOrder)
	assert.False(t, more[0].IsPrimary)
}

func TestImageService_UploadRejectsBadFiles(t *testing.T) {
	svc, imageRepo, _, moto := newImageService(t, 4)
	ctx := context.Background()

	_, err := svc.Upload(ctx, moto.ID, fileHeaders(t,
		upload{"ok.jpg", "image/jpeg", "ok"},
		upload{"notes.pdf", "application/pdf", "pdf"},
	))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upload(ctx, moto.ID, fileHeaders(t, upload{"big.jpg", "image/jpeg", "too large"}))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upload(ctx, moto.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upload(ctx, "missing", fileHeaders(t, upload{"a.jpg", "image/jpeg", "a"}))
	assert.ErrorIs(t, err, ErrNotFound)

	images, err := imageRepo.ListByMotorcycle(ctx, moto.ID)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestImageService_DeletePrimaryPromotesAndRemovesFile(t *testing.T) {
	svc, imageRepo, disk, moto := newImageService(t, 1<<20)
	ctx := context.Background()

	created, err := svc.Upload(ctx, moto.ID, fileHeaders(t,
		upload{"a.jpg", "image/jpeg", "a"},
		upload{"b.jpg", "image/jpeg", "b"},
	))
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created[0].ID)
	require.NoError(t, err)
	assert.False(t, disk.has(deleted.StorageKey))

	images, err := imageRepo.ListByMotorcycle(ctx, moto.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.True(t, images[0].IsPrimary)

	_, err = svc.Delete(ctx, created[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImageService_DeleteKeepsGoingWhenStorageFails(t *testing.T) {
	svc, imageRepo, disk, moto := newImageService(t, 1<<20)
	ctx := context.Background()

	created, err := svc.Upload(ctx, moto.ID, fileHeaders(t, upload{"a.jpg", "image/jpeg", "a"}))
	require.NoError(t, err)

	disk.failDel = true
	_, err = svc.Delete(ctx, created[0].ID)
	require.NoError(t, err)

	images, err := imageRepo.ListByMotorcycle(ctx, moto.ID)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestImageService_SetPrimaryAndReorder(t *testing.T) {
	svc, imageRepo, _, moto := newImageService(t, 1<<20)
	ctx := context.Background()

	created, err := svc.Upload(ctx, moto.ID, fileHeaders(t,
		upload{"a.jpg", "image/jpeg", "a"},
		upload{"b.jpg", "image/jpeg", "b"},
		upload{"c.jpg", "image/jpeg", "c"},
	))
	require.NoError(t, err)

	_, err = svc.SetPrimary(ctx, created[2].ID)
	require.NoError(t, err)

	require.NoError(t, svc.Reorder(ctx, moto.ID, map[string]int{
		created[0].ID: 2,
		created[2].ID: 0,
		created[1].ID: 1,
	}))
	assert.ErrorIs(t, svc.Reorder(ctx, moto.ID, map[string]int{created[0].ID: -1}), ErrInvalidInput)

	images, err := imageRepo.ListByMotorcycle(ctx, moto.ID)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, []string{created[2].ID, created[1].ID, created[0].ID},
		[]string{images[0].ID, images[1].ID, images[2].ID})

	primaries := 0
	for _, img := range images {
		if img.IsPrimary {
			primaries++
			assert.Equal(t, created[2].ID, img.ID)
		}
	}
	assert.Equal(t, 1, primaries)

	_, err = svc.SetPrimary(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImageService_Groups(t *testing.T) {
	svc, _, _, moto := newImageService(t, 1<<20)
	ctx := context.Background()

	_, err := svc.Upload(ctx, moto.ID, fileHeaders(t, upload{"a.jpg", "image/jpeg", "a"}))
	require.NoError(t, err)

	groups, err := svc.Groups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Fat Boy", groups[0].MotorcycleName)
	assert.Len(t, groups[0].Images, 1)
}

func TestIsImageContentType(t *testing.T) {
	assert.True(t, IsImageContentType("image/jpeg"))
	assert.True(t, IsImageContentType("image/png; charset=binary"))
	assert.False(t, IsImageContentType("application/pdf"))
	assert.False(t, IsImageContentType(""))
}
