package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/service/catalog"
)

// maxImageFormMemory bounds in-memory buffering of multipart uploads.
const maxImageFormMemory = 32 << 20

// ProductHandler handles catalog API requests.
type ProductHandler struct {
	catalogService *catalog.Service
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalogService *catalog.Service) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// List handles GET /api/products with page/limit query parameters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.catalogService.ListProducts(r.Context(), page, limit)
	if err != nil {
		slog.Error("failed to list products", "error", err)
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, ProductListResponse{
		Data:        result.Items,
		Total:       result.Total,
		CurrentPage: result.Page,
		TotalPages:  result.TotalPages,
	})
}

// Search handles GET /api/products/search?q=.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		slog.Error("failed to search products", "error", err)
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"data": products})
}

// Get handles GET /api/products/{id}, joining the assigned category.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Invalid product ID")
		return
	}

	product, category, err := h.catalogService.GetProductDetail(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, toProductResponse(product, category))
}

// Create handles POST /api/products. The body is a multipart form with
// product fields and an optional "image" file part.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := parseProductForm(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if form.name == "" || form.price == nil {
		RespondWithError(w, r, http.StatusBadRequest, "Missing required fields: name, price")
		return
	}

	in := catalog.CreateProductInput{
		Name:       form.name,
		CategoryID: form.categoryID,
		Image:      form.image,
	}
	in.Price = *form.price
	if form.description != nil {
		in.Description = *form.description
	}
	if form.importPrice != nil {
		in.ImportPrice = *form.importPrice
	}
	if form.unit != nil {
		in.Unit = *form.unit
	}

	product, err := h.catalogService.CreateProduct(r.Context(), in)
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to create product", "error", err, "name", form.name)
		}
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{"data": product})
}

// Update handles PUT /api/products/{id}. Only submitted fields change;
// a new "image" part replaces and destroys the previous image asset.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Invalid product ID")
		return
	}

	form, err := parseProductForm(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	in := catalog.UpdateProductInput{
		Description: form.description,
		Price:       form.price,
		ImportPrice: form.importPrice,
		Unit:        form.unit,
		CategoryID:  form.categoryID,
		Image:       form.image,
	}
	if form.name != "" {
		in.Name = &form.name
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), id, in)
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to update product", "error", err, "product_id", id)
		}
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"data": product})
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to delete product", "error", err, "product_id", id)
		}
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "Product removed"})
}

// BulkImport handles POST /api/products/bulk. Items are processed in
// order and in isolation; the response is 201 when every item succeeded
// and 207 when the batch was only partially successful.
func (h *ProductHandler) BulkImport(w http.ResponseWriter, r *http.Request) {
	var req BulkImportRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Request body must be a products array")
		return
	}
	if req.Products == nil {
		RespondWithError(w, r, http.StatusBadRequest, "Request body must be a products array")
		return
	}

	report, err := h.catalogService.Import(r.Context(), req.Products)
	if err != nil {
		slog.Error("bulk import failed", "error", err)
		HandleServiceError(w, r, err)
		return
	}

	status := http.StatusCreated
	if report.FailedCount > 0 {
		status = http.StatusMultiStatus
	}

	RespondWithJSON(w, r, status, report)
}

// productForm carries the parsed fields of a product create/update form.
// Pointers distinguish "absent" from "zero" for partial updates.
type productForm struct {
	name        string
	description *string
	price       *float64
	importPrice *float64
	unit        *string
	categoryID  *uuid.UUID
	image       *catalog.ImageUpload
}

// parseProductForm reads product fields from a multipart (or URL-encoded)
// form body, including the optional "image" file part.
func parseProductForm(r *http.Request) (*productForm, error) {
	if err := r.ParseMultipartForm(maxImageFormMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, errInvalidBody
		}
		if err := r.ParseForm(); err != nil {
			return nil, errInvalidBody
		}
	}

	form := &productForm{name: r.FormValue("name")}

	if v, ok := formField(r, "description"); ok {
		form.description = &v
	}
	if v, ok := formField(r, "unit"); ok {
		form.unit = &v
	}
	if v, ok := formField(r, "price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errInvalidBody
		}
		form.price = &price
	}
	if v, ok := formField(r, "import_price"); ok {
		importPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errInvalidBody
		}
		form.importPrice = &importPrice
	}
	if v, ok := formField(r, "category_id"); ok {
		if v == "" {
			// Explicit empty value clears the category.
			cleared := uuid.Nil
			form.categoryID = &cleared
		} else {
			id, err := uuid.Parse(v)
			if err != nil {
				return nil, errInvalidBody
			}
			form.categoryID = &id
		}
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, errInvalidBody
		}
		form.image = &catalog.ImageUpload{
			Data:        data,
			ContentType: header.Header.Get("Content-Type"),
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		return nil, errInvalidBody
	}

	return form, nil
}

// formField reports whether the field was submitted at all, so updates
// can distinguish "leave unchanged" from "set to empty".
func formField(r *http.Request, name string) (string, bool) {
	if r.MultipartForm != nil {
		if vs, ok := r.MultipartForm.Value[name]; ok && len(vs) > 0 {
			return vs[0], true
		}
		return "", false
	}
	if vs, ok := r.Form[name]; ok && len(vs) > 0 {
		return vs[0], true
	}
	return "", false
}
