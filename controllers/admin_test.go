package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/princinho/boutique/models"
	"github.com/princinho/boutique/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func multipartRequest(t *testing.T, method, path string, data any, images map[string][]byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("data", string(raw)))
	for name, content := range images {
		part, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func bearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAdminRoutesRequireToken(t *testing.T) {
	h := newHarness(t)

	w := h.json(http.MethodPatch, "/admin/settings", gin.H{"isOpen": false})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.json(http.MethodPatch, "/admin/settings", gin.H{"isOpen": false}, "Authorization", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddProduct(t *testing.T) {
	h := newHarness(t)
	token := h.adminToken()
	events, cancel := h.app.Hub.Subscribe()
	defer cancel()

	req := multipartRequest(t, http.MethodPost, "/admin/products",
		gin.H{"name": "Robe d'été", "price": "249.90", "quantity": 3, "category": "Women", "sizes": "s,m", "colors": "red"},
		map[string][]byte{"front.png": pngBytes})
	w := h.do(bearer(req, token))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var p models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "robe-d-ete", p.Slug)
	assert.Equal(t, 249.90, p.Price)
	assert.Equal(t, []string{blobDomain + "products/robe-d-ete/front.png"}, p.ImageUrls)

	ev := <-events
	assert.Equal(t, realtime.TopicProducts, ev.Topic)
	assert.Equal(t, models.ProductInserted, ev.Product.Kind)

	// new product is visible through the catalogue
	w = h.json(http.MethodGet, "/products?category=Women", nil)
	assert.EqualValues(t, 1, decode(t, w)["total"])

	// duplicate slug: conflict and the fresh upload is removed again
	req = multipartRequest(t, http.MethodPost, "/admin/products",
		gin.H{"name": "Robe d'ete", "price": 10, "quantity": 1, "category": "Women"},
		map[string][]byte{"other.png": pngBytes})
	w = h.do(bearer(req, token))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, h.blobs.deleted, "products/robe-d-ete/other.png")
}

func TestAddProductValidation(t *testing.T) {
	h := newHarness(t)
	token := h.adminToken()

	req := multipartRequest(t, http.MethodPost, "/admin/products", gin.H{"name": "Hat", "category": "Hats"}, nil)
	w := h.do(bearer(req, token))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = multipartRequest(t, http.MethodPost, "/admin/products", gin.H{"name": "Hat", "category": "Accessories"},
		map[string][]byte{"a.png": pngBytes, "b.png": pngBytes, "c.png": pngBytes})
	w = h.do(bearer(req, token))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Max 2 images")

	req = multipartRequest(t, http.MethodPost, "/admin/products", gin.H{"name": "Hat", "category": "Accessories"},
		map[string][]byte{"a.png": []byte("plain text")})
	w = h.do(bearer(req, token))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, h.blobs.uploaded)
}

func TestAddProductCoercesNonFiniteNumbers(t *testing.T) {
	h := newHarness(t)
	token := h.adminToken()

	req := multipartRequest(t, http.MethodPost, "/admin/products",
		gin.H{"name": "Scarf", "price": "NaN", "quantity": "1e999", "category": "Accessories"}, nil)
	w := h.do(bearer(req, token))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var p models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Zero(t, p.Price)
	assert.Zero(t, p.Quantity)

	// the catalogue still renders, and a NaN ceiling does not disable the price filter
	w = h.json(http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])

	w = h.json(http.MethodGet, "/products?maxPrice=NaN", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.EqualValues(t, 0, resp["criteria"].(map[string]any)["maxPrice"])
}

func TestUpdateProductMergesImages(t *testing.T) {
	p := shirt(5)
	h := newHarness(t, p)
	token := h.adminToken()
	id := h.firstProductID()

	req := multipartRequest(t, http.MethodPatch, "/admin/products/"+id,
		gin.H{"price": 90, "removedImagesUrls": []string{blobDomain + "products/linen-shirt/1.png", "https://elsewhere/x.png"}},
		map[string][]byte{"2.png": pngBytes})
	w := h.do(bearer(req, token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 90.0, updated.Price)
	assert.Equal(t, []string{blobDomain + "products/linen-shirt/2.png"}, updated.ImageUrls)
	assert.Equal(t, []string{"products/linen-shirt/1.png"}, h.blobs.deleted)

	req = multipartRequest(t, http.MethodPatch, "/admin/products/"+id, gin.H{}, nil)
	w = h.do(bearer(req, token))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = multipartRequest(t, http.MethodPatch, "/admin/products/64b000000000000000000000", gin.H{"price": 1}, nil)
	w = h.do(bearer(req, token))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProductReportsImageErrors(t *testing.T) {
	h := newHarness(t, shirt(5))
	token := h.adminToken()
	id := h.firstProductID()
	h.blobs.deleteErr = errors.New("bucket unavailable")

	req := bearer(httptest.NewRequest(http.MethodDelete, "/admin/products/"+id, nil), token)
	w := h.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["ok"])
	assert.NotEmpty(t, resp["imageErrors"])

	// the row is gone regardless
	w = h.json(http.MethodGet, "/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatchSettingsMergesFields(t *testing.T) {
	h := newHarness(t)
	token := h.adminToken()

	w := h.json(http.MethodPatch, "/admin/settings", gin.H{"noticeText": "Soldes", "noticeVisible": true, "mapLat": 12.0},
		"Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	s := h.app.Settings.Get()
	assert.Equal(t, "Soldes", s.NoticeText)
	assert.True(t, s.NoticeVisible)
	assert.Zero(t, s.MapLat)

	w = h.json(http.MethodGet, "/settings", nil)
	resp := decode(t, w)
	assert.Equal(t, "Soldes", resp["noticeText"])
}

func TestRemoteSettingsOverrideLocalStoreConfig(t *testing.T) {
	h := newHarness(t)
	token := h.adminToken()

	w := h.json(http.MethodPut, "/session/store-config", gin.H{"phone": "111", "mapLat": 33.5, "mapLng": -7.6})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "+212 600-000000", decode(t, w)["settings"].(map[string]any)["phone"])

	w = h.json(http.MethodPatch, "/admin/settings", gin.H{"phone": "222"}, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.json(http.MethodGet, "/settings", nil)
	resp := decode(t, w)
	assert.Equal(t, "222", resp["phone"])
	assert.EqualValues(t, 33.5, resp["mapLat"])
	assert.EqualValues(t, -7.6, resp["mapLng"])
}

func TestRefreshRotatesToken(t *testing.T) {
	h := newHarness(t)

	w := h.json(http.MethodPost, "/auth/login", gin.H{"email": "owner@shop.ma", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.json(http.MethodPost, "/auth/login", gin.H{"email": "Owner@Shop.ma", "password": "owner-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	refresh := cookieNamed(w, refreshCookie)
	require.NotNil(t, refresh)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(refresh)
	w = h.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decode(t, w)["accessToken"])

	// the old token was revoked by the rotation
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(refresh)
	w = h.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangeMyPassword(t *testing.T) {
	h := newHarness(t)
	token := h.adminToken()

	w := h.json(http.MethodPost, "/admin/users/me/password", gin.H{"currentPassword": "bad", "newPassword": "new-password"},
		"Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.json(http.MethodPost, "/admin/users/me/password", gin.H{"currentPassword": "owner-pass", "newPassword": "new-password"},
		"Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.json(http.MethodPost, "/auth/login", gin.H{"email": "owner@shop.ma", "password": "new-password"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
