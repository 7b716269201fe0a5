package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"sync"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/jhoicas/Ventas-api/pkg/config"
)

// objectStore abstrae la escritura de objetos para poder probar el uploader
// sin un bucket real.
type objectStore interface {
	write(ctx context.Context, objectName, contentType string, data []byte) error
}

// gcsStore implementación real sobre Google Cloud Storage.
type gcsStore struct {
	client *gcs.Client
	bucket string
}

func (s *gcsStore) write(ctx context.Context, objectName, contentType string, data []byte) error {
	wc := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return fmt.Errorf("escribir objeto %s: %w", objectName, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("cerrar writer %s: %w", objectName, err)
	}
	return nil
}

// Subidas: tamaño de lote y reintentos por objeto con backoff lineal.
const (
	uploadBatchSize   = 5
	uploadMaxAttempts = 3
	uploadRetryDelay  = 500 * time.Millisecond
)

// thumbnailWidth ancho de la miniatura; la altura mantiene la proporción.
const thumbnailWidth = 200

// ImageUploader sube imágenes de productos a GCS: valida el tipo, genera la
// miniatura con imaging y devuelve las URLs públicas.
type ImageUploader struct {
	store   objectStore
	baseURL string
	sleep   func(time.Duration)
}

// NewImageUploader crea el uploader con un cliente GCS real.
// CredentialsFile vacío usa Application Default Credentials.
func NewImageUploader(ctx context.Context, cfg config.GCSConfig) (*ImageUploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("gcs: bucket no configurado")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: crear cliente: %w", err)
	}
	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com/" + cfg.Bucket
	}
	return &ImageUploader{
		store:   &gcsStore{client: client, bucket: cfg.Bucket},
		baseURL: baseURL,
		sleep:   time.Sleep,
	}, nil
}

// UploadResult URLs públicas de una imagen subida.
type UploadResult struct {
	ImageURL     string
	ThumbnailURL string
}

// UploadProductImage sube la imagen original y su miniatura. Solo acepta
// JPEG y PNG; la miniatura siempre se codifica como JPEG.
func (u *ImageUploader) UploadProductImage(ctx context.Context, productID string, data []byte) (*UploadResult, error) {
	contentType := http.DetectContentType(data)
	if contentType != "image/jpeg" && contentType != "image/png" {
		return nil, fmt.Errorf("tipo de imagen no soportado: %s", contentType)
	}
	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decodificar imagen: %w", err)
	}
	thumbnail := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	var thumbBuf bytes.Buffer
	if err := imaging.Encode(&thumbBuf, thumbnail, imaging.JPEG); err != nil {
		return nil, fmt.Errorf("codificar miniatura: %w", err)
	}

	name := uuid.New().String()
	objectName := path.Join("products", productID, name+ext)
	thumbName := path.Join("products", productID, name+"_thumb.jpg")

	if err := u.writeWithRetry(ctx, objectName, contentType, data); err != nil {
		return nil, err
	}
	if err := u.writeWithRetry(ctx, thumbName, "image/jpeg", thumbBuf.Bytes()); err != nil {
		return nil, err
	}
	return &UploadResult{
		ImageURL:     u.baseURL + "/" + objectName,
		ThumbnailURL: u.baseURL + "/" + thumbName,
	}, nil
}

// BatchItem imagen de producto pendiente de subir.
type BatchItem struct {
	ProductID string
	Data      []byte
}

// BatchResult resultado por ítem; Err no nulo si el ítem falló tras los reintentos.
type BatchResult struct {
	ProductID string
	Result    *UploadResult
	Err       error
}

// UploadBatch sube imágenes en lotes de uploadBatchSize, con los ítems de
// cada lote en paralelo. Un ítem fallido no detiene el resto; los resultados
// conservan el orden de entrada.
func (u *ImageUploader) UploadBatch(ctx context.Context, items []BatchItem) []BatchResult {
	out := make([]BatchResult, len(items))
	for start := 0; start < len(items); start += uploadBatchSize {
		end := start + uploadBatchSize
		if end > len(items) {
			end = len(items)
		}
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				item := items[i]
				res, err := u.UploadProductImage(ctx, item.ProductID, item.Data)
				out[i] = BatchResult{ProductID: item.ProductID, Result: res, Err: err}
			}(i)
		}
		wg.Wait()
	}
	return out
}

// writeWithRetry reintenta la escritura con backoff lineal (delay, 2*delay, ...).
func (u *ImageUploader) writeWithRetry(ctx context.Context, objectName, contentType string, data []byte) error {
	var lastErr error
	for attempt := 1; attempt <= uploadMaxAttempts; attempt++ {
		lastErr = u.store.write(ctx, objectName, contentType, data)
		if lastErr == nil {
			return nil
		}
		if attempt < uploadMaxAttempts {
			u.sleep(time.Duration(attempt) * uploadRetryDelay)
		}
	}
	return fmt.Errorf("subir %s tras %d intentos: %w", objectName, uploadMaxAttempts, lastErr)
}
