package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pixelarium/backend/internal/config"
	"github.com/pixelarium/backend/internal/i18n"
	"github.com/pixelarium/backend/internal/repository"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

type S3Mock struct {
	s3iface.S3API
	mock.Mock
}

func (m *S3Mock) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	args := m.Called(input)
	return &s3.PutObjectOutput{}, args.Error(0)
}

func (m *S3Mock) DeleteObject(input *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
	args := m.Called(input)
	return &s3.DeleteObjectOutput{}, args.Error(0)
}

func storageConfig(dir string) *config.Config {
	return &config.Config{
		AWS: config.AWSConfig{
			Region:   "eu-west-1",
			S3Bucket: "pixelarium-test",
		},
		Storage: config.StorageConfig{
			LocalPath:     dir,
			PublicBaseURL: "http://localhost:8080/uploads/",
			MaxImageSize:  1024,
		},
	}
}

func formFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	header := form.File["image"][0]
	file, err := header.Open()
	require.NoError(t, err)

	t.Cleanup(func() {
		file.Close()
		form.RemoveAll()
	})
	return file, header
}

func TestNewStorageServiceFallsBackToLocal(t *testing.T) {
	storage, err := NewStorageService(storageConfig(t.TempDir()))
	require.NoError(t, err)
	assert.False(t, storage.UsesS3())

	cfg := storageConfig(t.TempDir())
	cfg.AWS.AccessKeyID = "AKIAEXAMPLE"
	cfg.AWS.SecretAccessKey = "secret"
	storage, err = NewStorageService(cfg)
	require.NoError(t, err)
	assert.True(t, storage.UsesS3())
}

func TestUploadProductImageLocal(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewStorageService(storageConfig(dir))
	require.NoError(t, err)

	// the declared name does not matter, the content does
	file, header := formFile(t, "cover.jpg", pngBytes)
	result, err := storage.UploadProductImage(file, header)
	require.NoError(t, err)

	assert.Equal(t, "image/png", result.MimeType)
	assert.True(t, strings.HasPrefix(result.Key, "products/"))
	assert.True(t, strings.HasSuffix(result.Key, ".png"))
	assert.Equal(t, "http://localhost:8080/uploads/"+result.Key, result.URL)

	written, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(result.Key)))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, written)

	require.NoError(t, storage.DeleteFile(result.Key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(result.Key)))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, storage.DeleteFile(result.Key))
}

func TestUploadProductImageRejections(t *testing.T) {
	storage, err := NewStorageService(storageConfig(t.TempDir()))
	require.NoError(t, err)

	file, header := formFile(t, "notes.png", []byte("just some text pretending to be an image"))
	_, err = storage.UploadProductImage(file, header)
	domainErr := requireKind(t, err, ErrInvalidInput)
	assert.Equal(t, i18n.KeyFileInvalidType, domainErr.Key)

	file, header = formFile(t, "huge.png", append(pngBytes, make([]byte, 2048)...))
	_, err = storage.UploadProductImage(file, header)
	domainErr = requireKind(t, err, ErrInvalidInput)
	assert.Equal(t, i18n.KeyFileTooLarge, domainErr.Key)
}

func TestUploadProductImageS3(t *testing.T) {
	client := new(S3Mock)
	client.On("PutObject", mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.StringValue(in.Bucket) == "pixelarium-test" &&
			aws.StringValue(in.ContentType) == "image/png" &&
			aws.StringValue(in.ACL) == "public-read"
	})).Return(nil).Once()

	storage := &StorageService{s3Client: client, config: storageConfig(t.TempDir())}

	file, header := formFile(t, "pad.png", pngBytes)
	result, err := storage.UploadProductImage(file, header)
	require.NoError(t, err)
	assert.Equal(t, "https://pixelarium-test.s3.eu-west-1.amazonaws.com/"+result.Key, result.URL)

	storage.config.AWS.CloudFrontURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/"+result.Key, storage.getS3URL(result.Key))

	client.AssertExpectations(t)
}

func TestSetProductImage(t *testing.T) {
	dir := t.TempDir()
	store := repository.NewGormStore(newTestDB(t))
	storage, err := NewStorageService(storageConfig(dir))
	require.NoError(t, err)

	cache := new(CatalogCacheMock)
	cache.On("Invalidate", mock.Anything).Return()
	service := NewProductService(store, cache, storage)

	product, err := service.CreateProduct(bg, productRequest("Pad", "29.99", 3))
	require.NoError(t, err)

	file, header := formFile(t, "pad.png", pngBytes)
	updated, err := service.SetProductImage(bg, product.ID, file, header)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.ImagePath, "http://localhost:8080/uploads/products/"))

	stored, err := service.GetProduct(bg, product.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.ImagePath, stored.ImagePath)
	cache.AssertNumberOfCalls(t, "Invalidate", 2)

	file, header = formFile(t, "pad.png", pngBytes)
	_, err = service.SetProductImage(bg, uuid.New(), file, header)
	requireKind(t, err, ErrNotFound)
}
