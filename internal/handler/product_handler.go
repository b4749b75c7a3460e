package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// maxUploadBytes bounds the in-memory portion of a multipart product upload.
const maxUploadBytes = 32 << 20

// ProductHandler handles catalogue HTTP requests.
type ProductHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.CatalogService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	products, err := h.service.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve products", h.logger)
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

// Search handles GET /api/products/search?keyword= requests.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	keyword := r.URL.Query().Get("keyword")

	products, err := h.service.Search(r.Context(), keyword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to search products", h.logger)
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

// ByID dispatches /api/product/{id} and /api/product/{id}/image requests.
func (h *ProductHandler) ByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/product/"), "/")
	parts := strings.Split(rest, "/")

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	if len(parts) == 2 && parts[1] == "image" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
			return
		}
		h.image(w, r, id)
		return
	}
	if len(parts) != 1 {
		writeError(w, http.StatusNotFound, "not found", h.logger)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request, id int) {
	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// image serves the stored raw image bytes with the stored content type.
func (h *ProductHandler) image(w http.ResponseWriter, r *http.Request, id int) {
	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if product.ImageType != "" {
		w.Header().Set("Content-Type", product.ImageType)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(product.ImageData)
}

// Add handles POST /api/product requests: product JSON part plus image file
// part in one multipart body.
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	product, image, err := decodeProductForm(r)
	if err != nil {
		// Image read failures on create have always been a 500 here.
		writeError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	if err := h.service.Save(r.Context(), product, image); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request, id int) {
	product, image, err := decodeProductForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	product.ID = id
	if err := h.service.Save(r.Context(), product, image); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeText(w, http.StatusOK, "Update")
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request, id int) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeText(w, http.StatusOK, "Delete")
}

// decodeProductForm performs the explicit two-field multipart decode: a
// "product" JSON part and an "imageFile" file part.
func decodeProductForm(r *http.Request) (*model.Product, *service.ImageUpload, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, fmt.Errorf("invalid multipart request: %w", err)
	}

	var product model.Product
	if err := json.Unmarshal([]byte(r.FormValue("product")), &product); err != nil {
		return nil, nil, fmt.Errorf("invalid product payload: %w", err)
	}

	file, header, err := r.FormFile("imageFile")
	if err != nil {
		return nil, nil, fmt.Errorf("image file is required: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read image file: %w", err)
	}

	image := &service.ImageUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	return &product, image, nil
}
