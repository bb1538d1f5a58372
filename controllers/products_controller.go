package controllers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/boutique/catalog"
	"github.com/princinho/boutique/checkout"
	"github.com/princinho/boutique/dto"
	"github.com/princinho/boutique/errx"
	"github.com/princinho/boutique/labels"
	"github.com/princinho/boutique/logx"
	"github.com/princinho/boutique/models"
	"github.com/princinho/boutique/storage"
	"github.com/princinho/boutique/utils"
)

func criteriaFromQuery(c *gin.Context) catalog.Criteria {
	criteria := catalog.DefaultCriteria()
	criteria.Category = c.Query("category")
	if v := c.Query("maxPrice"); v != "" {
		criteria.MaxPrice = utils.ParseFloatOrZero(v)
	}
	criteria.Size = c.Query("size")
	criteria.Color = c.Query("color")
	criteria.Search = c.Query("q")
	return criteria.Normalize()
}

// GET /products
func (a *App) GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c)
		if !ok {
			return
		}
		criteria := criteriaFromQuery(c)

		products := a.Catalog.Products(c.Request.Context())
		filtered := catalog.Filter(products, criteria)

		stored := sess.Grid
		if v := c.Query("visible"); v != "" {
			stored.Visible = utils.ParseIntOrZero(v)
		}
		pager := catalog.Resume(stored)
		pager.Sync(criteria)
		if more, _ := utils.ParseBoolQuery(c.Query("more")); more != nil && *more {
			pager.More()
		}
		page, hasMore := pager.Page(filtered)
		visible := pager.Visible()

		// a first-page cursor is only written once the session has one stored
		if cur := pager.Cursor(); cur != sess.Grid && (sess.Grid.Synced || cur.Visible > catalog.PageSize) {
			if err := sess.SaveGrid(c.Request.Context(), cur); err != nil {
				logx.Warn().Err(err).Str("session", sess.ID).Msg("save catalog grid")
			}
		}

		facets := catalog.BuildFacets(products)
		c.JSON(http.StatusOK, gin.H{
			"items":    page,
			"total":    len(filtered),
			"visible":  visible,
			"hasMore":  hasMore,
			"loading":  a.Catalog.Loading(),
			"criteria": criteria,
			"facets":   facets,
			"swatches": labels.Swatches(facets.Colors),
		})
	}
}

// GET /products/:id
func (a *App) GetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := a.product(c, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"product":  p,
			"sizes":    catalog.ParseTokens(p.Sizes),
			"colors":   catalog.ParseTokens(p.Colors),
			"swatches": labels.Swatches(catalog.ParseTokens(p.Colors)),
		})
	}
}

// GET /products/:id/share
func (a *App) ShareProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c)
		if !ok {
			return
		}
		p, err := a.product(c, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		productURL := c.Query("url")
		if productURL == "" {
			productURL = fmt.Sprintf("%s://%s/products/%s", scheme(c), c.Request.Host, p.Id.Hex())
		}
		c.JSON(http.StatusOK, checkout.ShareProduct(p, productURL, sess.Lang, currencyOf(sess)))
	}
}

func scheme(c *gin.Context) string {
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		return "https"
	}
	return "http"
}

// POST /admin/products
func (a *App) AddProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		jsonData := c.PostForm("data")
		if jsonData == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing data"})
			return
		}

		var body dto.CreateProductDTO
		if err := json.Unmarshal([]byte(jsonData), &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json"})
			return
		}
		if strings.TrimSpace(body.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		if !models.Category(strings.TrimSpace(body.Category)).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category", "field": "category"})
			return
		}
		if body.Price.Float() < 0 || body.Quantity.Int() < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price and quantity must not be negative"})
			return
		}

		files := formFiles(c)
		if len(files) > a.MaxProductImages {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Max %v images", a.MaxProductImages)})
			return
		}
		if err := a.Validator.ValidateAll(files); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		slug := utils.GenerateSlug(body.Name)
		imageUrls, err := a.Blobs.Upload(ctx, slug, files)
		if err != nil {
			a.cleanupImages(c, imageUrls)
			respondError(c, errx.WrapStorage(err))
			return
		}

		product, err := a.Gateway.InsertProduct(ctx, body.Product(slug, imageUrls))
		if err != nil {
			a.cleanupImages(c, imageUrls)
			if errx.Status(err) == http.StatusConflict {
				c.JSON(http.StatusConflict, gin.H{"error": errx.Message(err), "field": "slug"})
				return
			}
			respondError(c, err)
			return
		}

		a.productChanged(c, models.ProductEvent{Kind: models.ProductInserted, ProductID: product.Id.Hex()})
		c.JSON(http.StatusCreated, product)
	}
}

// PATCH /admin/products/:id
func (a *App) UpdateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")

		dataStr := c.PostForm("data")
		if dataStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing data"})
			return
		}
		var body dto.UpdateProductDTO
		if err := json.Unmarshal([]byte(dataStr), &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json", "details": err.Error()})
			return
		}
		patch := body.Patch()
		if patch.Category != nil && !patch.Category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category", "field": "category"})
			return
		}

		// current imageUrls are needed to merge
		product, err := a.Gateway.GetProduct(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}

		imagesToDelete := utils.IntersectStrings(body.RemovedImagesUrls, product.ImageUrls)
		newFiles := formFiles(c)
		totalImageCount := len(product.ImageUrls) - len(imagesToDelete) + len(newFiles)
		if totalImageCount > a.MaxProductImages {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Max %v images", a.MaxProductImages)})
			return
		}
		if err := a.Validator.ValidateAll(newFiles); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var imageUrls []string
		if len(newFiles) > 0 {
			imageUrls, err = a.Blobs.Upload(ctx, product.Slug, newFiles)
			if err != nil {
				a.cleanupImages(c, imageUrls)
				respondError(c, errx.WrapStorage(err))
				return
			}
		}
		if len(imagesToDelete) > 0 || len(imageUrls) > 0 {
			merged := utils.MergeImageUrlsArrays(product.ImageUrls, imagesToDelete, imageUrls)
			patch.ImageUrls = &merged
		}
		if patch.Empty() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}

		updated, err := a.Gateway.UpdateProduct(ctx, id, patch)
		if err != nil {
			a.cleanupImages(c, imageUrls)
			respondError(c, err)
			return
		}

		// row is updated, old images can go
		a.cleanupImages(c, imagesToDelete)
		a.productChanged(c, models.ProductEvent{Kind: models.ProductUpdated, ProductID: id})

		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /admin/products/:id
func (a *App) DeleteProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := a.Gateway.DeleteProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		a.productChanged(c, models.ProductEvent{Kind: models.ProductDeleted, ProductID: deleted.Id.Hex()})

		resp := gin.H{"ok": true, "id": deleted.Id.Hex()}
		if err := a.Blobs.Delete(c.Request.Context(), storage.ObjectNames(a.Blobs, deleted.ImageUrls)); err != nil {
			logx.Warn().Err(err).Str("productId", deleted.Id.Hex()).Msg("product deleted but images remain")
			resp["imageErrors"] = []string{err.Error()}
		}
		c.JSON(http.StatusOK, resp)
	}
}

func formFiles(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["images"]
}

// cleanupImages removes uploaded objects best-effort.
func (a *App) cleanupImages(c *gin.Context, urls []string) {
	if len(urls) == 0 {
		return
	}
	if err := a.Blobs.Delete(c.Request.Context(), storage.ObjectNames(a.Blobs, urls)); err != nil {
		logx.Warn().Err(err).Strs("urls", urls).Msg("image cleanup failed")
	}
}
