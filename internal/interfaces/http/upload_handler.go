package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/storage"
)

// maxImageSize límite de 5 MB por imagen subida.
const maxImageSize = 5 << 20

// UploadHandler sube imágenes de producto al bucket y guarda las URLs.
type UploadHandler struct {
	uploader  *storage.ImageUploader
	productUC *usecase.ProductUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uploader *storage.ImageUploader, productUC *usecase.ProductUseCase) *UploadHandler {
	return &UploadHandler{uploader: uploader, productUC: productUC}
}

// UploadProductImage godoc
// @Summary      Subir imagen de producto
// @Description  Acepta JPEG o PNG (campo multipart "image"), genera miniatura y guarda ambas URLs en el producto.
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "ID del producto"
// @Param        image  formData  file    true  "Imagen JPEG o PNG"
// @Success      200  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/image [post]
func (h *UploadHandler) UploadProductImage(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "falta el archivo en el campo image"})
	}
	if fileHeader.Size > maxImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la imagen no puede superar 5 MB"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return respondError(c, err)
	}
	// El producto debe existir antes de subir nada al bucket.
	if _, err := h.productUC.GetByID(id); err != nil {
		return respondError(c, err)
	}
	result, err := h.uploader.UploadProductImage(c.Context(), id, data)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.productUC.SetImages(id, result.ImageURL, result.ThumbnailURL); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.UploadResponse{ImageURL: result.ImageURL, ThumbnailURL: result.ThumbnailURL})
}
