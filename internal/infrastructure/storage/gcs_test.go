package storage

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore guarda los objetos en memoria y permite inyectar fallos por intento.
// Es seguro para uso concurrente porque UploadBatch escribe en paralelo.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	// failures indica cuántas escrituras consecutivas deben fallar.
	failures int
	writes   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (s *fakeStore) write(_ context.Context, objectName, contentType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.failures > 0 {
		s.failures--
		return errors.New("fallo transitorio")
	}
	s.objects[objectName] = append([]byte(nil), data...)
	s.types[objectName] = contentType
	return nil
}

// gateStore bloquea cada escritura hasta que el test la libere, para poder
// observar cuántas están en vuelo a la vez.
type gateStore struct {
	inner   *fakeStore
	started chan struct{}
	release chan struct{}
}

func (s *gateStore) write(ctx context.Context, objectName, contentType string, data []byte) error {
	s.started <- struct{}{}
	<-s.release
	return s.inner.write(ctx, objectName, contentType, data)
}

func newTestUploader(store objectStore) (*ImageUploader, *[]time.Duration) {
	slept := []time.Duration{}
	u := &ImageUploader{
		store:   store,
		baseURL: "https://cdn.test/bucket",
		sleep:   func(d time.Duration) { slept = append(slept, d) },
	}
	return u, &slept
}

// pngBytes genera una imagen PNG pequeña pero válida.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := imaging.New(8, 8, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

// ──────────────────────────────────────────────────────────────────────────────
// UploadProductImage
// ──────────────────────────────────────────────────────────────────────────────

func TestUploadProductImage_SubeOriginalYMiniatura(t *testing.T) {
	store := newFakeStore()
	uploader, _ := newTestUploader(store)

	res, err := uploader.UploadProductImage(context.Background(), "prod-1", pngBytes(t))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ImageURL, "https://cdn.test/bucket/products/prod-1/"))
	assert.True(t, strings.HasSuffix(res.ImageURL, ".png"))
	assert.True(t, strings.HasSuffix(res.ThumbnailURL, "_thumb.jpg"))
	assert.Len(t, store.objects, 2)

	for name, ct := range store.types {
		if strings.HasSuffix(name, ".png") {
			assert.Equal(t, "image/png", ct)
		} else {
			assert.Equal(t, "image/jpeg", ct)
		}
	}
}

func TestUploadProductImage_TipoNoSoportado(t *testing.T) {
	store := newFakeStore()
	uploader, _ := newTestUploader(store)

	_, err := uploader.UploadProductImage(context.Background(), "prod-1", []byte("no soy una imagen"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tipo de imagen no soportado")
	assert.Zero(t, store.writes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintentos
// ──────────────────────────────────────────────────────────────────────────────

func TestWriteWithRetry_RecuperaTrasFalloTransitorio(t *testing.T) {
	store := newFakeStore()
	store.failures = 1
	uploader, slept := newTestUploader(store)

	err := uploader.writeWithRetry(context.Background(), "products/p/x.png", "image/png", []byte{1})

	require.NoError(t, err)
	assert.Equal(t, 2, store.writes)
	assert.Equal(t, []time.Duration{uploadRetryDelay}, *slept)
}

func TestWriteWithRetry_BackoffLinealYErrorFinal(t *testing.T) {
	store := newFakeStore()
	store.failures = uploadMaxAttempts
	uploader, slept := newTestUploader(store)

	err := uploader.writeWithRetry(context.Background(), "products/p/x.png", "image/png", []byte{1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tras 3 intentos")
	assert.Equal(t, uploadMaxAttempts, store.writes)
	// Entre intentos duerme delay, 2*delay; no duerme tras el último.
	assert.Equal(t, []time.Duration{uploadRetryDelay, 2 * uploadRetryDelay}, *slept)
}

// ──────────────────────────────────────────────────────────────────────────────
// UploadBatch
// ──────────────────────────────────────────────────────────────────────────────

func TestUploadBatch_UnItemFallidoNoDetieneElResto(t *testing.T) {
	store := newFakeStore()
	uploader, _ := newTestUploader(store)
	png := pngBytes(t)

	items := []BatchItem{
		{ProductID: "prod-1", Data: png},
		{ProductID: "prod-2", Data: []byte("basura")},
		{ProductID: "prod-3", Data: png},
	}
	results := uploader.UploadBatch(context.Background(), items)

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Result)
	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Result)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "prod-2", results[1].ProductID)
}

func TestUploadBatch_LosItemsDeUnLoteSubenEnParalelo(t *testing.T) {
	gate := &gateStore{
		inner:   newFakeStore(),
		started: make(chan struct{}, 4*uploadBatchSize),
		release: make(chan struct{}),
	}
	uploader, _ := newTestUploader(gate)
	png := pngBytes(t)

	items := make([]BatchItem, uploadBatchSize)
	for i := range items {
		items[i] = BatchItem{ProductID: "prod", Data: png}
	}

	done := make(chan []BatchResult, 1)
	go func() { done <- uploader.UploadBatch(context.Background(), items) }()

	// Con la puerta cerrada, las 5 primeras escrituras solo pueden iniciarse
	// si los ítems del lote corren en paralelo.
	for i := 0; i < uploadBatchSize; i++ {
		select {
		case <-gate.started:
		case <-time.After(2 * time.Second):
			t.Fatalf("solo iniciaron %d escrituras; el lote no corre en paralelo", i)
		}
	}
	close(gate.release)

	results := <-done
	require.Len(t, results, uploadBatchSize)
	for _, r := range results {
		assert.NoError(t, r.Err)
	}
}

func TestUploadBatch_ProcesaMasDeUnLote(t *testing.T) {
	store := newFakeStore()
	uploader, _ := newTestUploader(store)
	png := pngBytes(t)

	items := make([]BatchItem, 0, uploadBatchSize+2)
	for i := 0; i < uploadBatchSize+2; i++ {
		items = append(items, BatchItem{ProductID: "prod", Data: png})
	}
	results := uploader.UploadBatch(context.Background(), items)

	require.Len(t, results, uploadBatchSize+2)
	for _, r := range results {
		assert.NoError(t, r.Err)
	}
	// 2 objetos (original + miniatura) por ítem.
	assert.Len(t, store.objects, 2*(uploadBatchSize+2))
}
