package product

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"feriwala/config"
	"feriwala/database"
	"feriwala/locale"
	"feriwala/mappers"
	"feriwala/model"
	"feriwala/pagination"
	"feriwala/respond"
	"feriwala/search"
	"feriwala/upload"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxMultipartMemory = 32 << 20

// writeList answers with the plain array, or with a page envelope when ?page= was given.
func writeList(w http.ResponseWriter, r *http.Request, views []model.ProductView, pageSize int) {
	page, paged := pagination.ParsePage(r)
	if !paged {
		respond.JSON(w, http.StatusOK, views)
		return
	}
	respond.JSON(w, http.StatusOK, pagination.Paginate(views, pageSize, page))
}

func parseID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, model.NewValidationError(model.MsgInvalidRequest, param)
	}
	return id, nil
}

// ListProductsHandler serves the storefront grid, newest first, optionally narrowed by ?category= and ?q=.
// Both filters compare folded text, so Bengali and non-ASCII Latin match regardless of case or composition.
func ListProductsHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		products, err := database.ListProducts(r.Context(), conn)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		products = search.ByCategory(products, q.Get("category"))
		products = search.FilterProducts(products, q.Get("q"))

		views := mappers.ToProductViews(products, locale.Negotiate(r))
		writeList(w, r, views, config.GetConfig().Pagination.HomePageSize)
	}
}

func GetProductHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		p, err := database.GetProduct(r.Context(), conn, id)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, mappers.ToProductView(p, locale.Negotiate(r)))
	}
}

// RelatedProductsHandler lists the other products of ?category=, leaving out ?excludeId=.
func RelatedProductsHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		category := strings.TrimSpace(q.Get("category"))
		if category == "" {
			respond.Failure(w, r, model.NewValidationError(model.MsgCategoryRequired, "category"))
			return
		}
		exclude := uuid.Nil
		if raw := q.Get("excludeId"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				respond.Failure(w, r, model.NewValidationError(model.MsgInvalidRequest, "excludeId"))
				return
			}
			exclude = id
		}

		products, err := database.ListRelatedProducts(r.Context(), conn, category, exclude)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		views := mappers.ToProductViews(products, locale.Negotiate(r))
		writeList(w, r, views, config.GetConfig().Pagination.RelatedPageSize)
	}
}

type searchResponse struct {
	Query   string              `json:"query"`
	Count   int                 `json:"count"`
	Results []model.ProductView `json:"results"`
}

// SearchHandler matches ?q= against product names. An empty query returns the whole catalog.
func SearchHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		products, err := database.ListProducts(r.Context(), conn)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		results := mappers.ToProductViews(search.FilterProducts(products, query), locale.Negotiate(r))
		respond.JSON(w, http.StatusOK, searchResponse{Query: query, Count: len(results), Results: results})
	}
}

func ProductsByCategoryHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := url.PathUnescape(chi.URLParam(r, "category"))
		if err != nil || strings.TrimSpace(category) == "" {
			respond.Failure(w, r, model.NewValidationError(model.MsgCategoryRequired, "category"))
			return
		}
		products, err := database.ListProducts(r.Context(), conn)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		views := mappers.ToProductViews(search.ByCategory(products, category), locale.Negotiate(r))
		writeList(w, r, views, config.GetConfig().Pagination.HomePageSize)
	}
}

func parsePrice(raw, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, model.NewValidationError(model.MsgInvalidPrice, field)
	}
	return d, nil
}

// resolveCategory returns the stored spelling of name, or a validation error when it does not exist.
func resolveCategory(r *http.Request, conn *sqlx.DB, name string) (string, error) {
	c, err := database.GetCategoryByName(r.Context(), conn, name)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", model.NewValidationError(model.MsgUnknownCategory, "category")
		}
		return "", err
	}
	return c.Name, nil
}

// CreateProductHandler takes the admin product form: text fields plus one or more "images" files.
func CreateProductHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			respond.Failure(w, r, model.NewValidationError(model.MsgInvalidRequest, "form"))
			return
		}

		in := model.ProductInput{
			Name:        r.FormValue("name"),
			Category:    r.FormValue("category"),
			Description: r.FormValue("description"),
			Code:        r.FormValue("code"),
		}
		in.Normalize()

		var err error
		if in.RegularPrice, err = parsePrice(r.FormValue("regularPrice"), "regularPrice"); err != nil {
			respond.Failure(w, r, err)
			return
		}
		if in.DiscountPrice, err = parsePrice(r.FormValue("discountPrice"), "discountPrice"); err != nil {
			respond.Failure(w, r, err)
			return
		}
		if err := in.Validate(); err != nil {
			respond.Failure(w, r, err)
			return
		}
		if in.Category, err = resolveCategory(r, conn, in.Category); err != nil {
			respond.Failure(w, r, err)
			return
		}

		files := r.MultipartForm.File["images"]
		if len(files) == 0 {
			respond.Failure(w, r, model.NewValidationError(model.MsgImageRequired, "images"))
			return
		}
		images, err := upload.SaveAll(cfg.Uploads.Dir, files, cfg.Uploads.MaxBytes)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}

		now := time.Now().UTC()
		p := model.Product{
			ID:            uuid.Must(uuid.NewV7()),
			Name:          in.Name,
			Category:      in.Category,
			Description:   in.Description,
			RegularPrice:  in.RegularPrice,
			DiscountPrice: in.DiscountPrice,
			Images:        images,
			Code:          in.Code,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := database.InsertProduct(r.Context(), conn, &p); err != nil {
			upload.RemoveAll(cfg.Uploads.Dir, images)
			respond.Failure(w, r, err)
			return
		}

		zap.S().Infow("product created", "id", p.ID, "name", p.Name, "images", len(images))
		respond.JSON(w, http.StatusCreated, mappers.ToProductView(&p, locale.Negotiate(r)))
	}
}

// UpdateProductHandler applies a partial JSON update. Images are not edited here.
func UpdateProductHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		var patch model.ProductPatch
		if !respond.Decode(w, r, &patch) {
			return
		}

		p, err := database.GetProduct(r.Context(), conn, id)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		in := patch.Apply(*p)
		if err := in.Validate(); err != nil {
			respond.Failure(w, r, err)
			return
		}
		if !strings.EqualFold(in.Category, p.Category) {
			if in.Category, err = resolveCategory(r, conn, in.Category); err != nil {
				respond.Failure(w, r, err)
				return
			}
		}

		p.Name = in.Name
		p.Category = in.Category
		p.Description = in.Description
		p.RegularPrice = in.RegularPrice
		p.DiscountPrice = in.DiscountPrice
		p.Code = in.Code
		p.UpdatedAt = time.Now().UTC()
		if err := database.UpdateProduct(r.Context(), conn, p); err != nil {
			respond.Failure(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, mappers.ToProductView(p, locale.Negotiate(r)))
	}
}

// DeleteProductHandler removes the product and then, best effort, its image files.
func DeleteProductHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			respond.Failure(w, r, err)
			return
		}

		tx, err := conn.BeginTxx(r.Context(), nil)
		if err != nil {
			respond.Failure(w, r, fmt.Errorf("starting transaction: %w", err))
			return
		}
		defer tx.Rollback()

		deleted, err := database.DeleteProductInTx(r.Context(), tx, id)
		if err != nil {
			respond.Failure(w, r, err)
			return
		}
		if err := tx.Commit(); err != nil {
			respond.Failure(w, r, fmt.Errorf("committing product delete: %w", err))
			return
		}
		upload.RemoveAll(config.GetConfig().Uploads.Dir, deleted.Images)

		respond.JSON(w, http.StatusOK, map[string]any{
			"message":      locale.T(locale.Negotiate(r), locale.MsgDeleted),
			"deletedCount": 1,
		})
	}
}
