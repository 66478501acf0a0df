package router

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	glog "gorm.io/gorm/logger"

	coreauth "toyshop/internal/core/auth"
	"toyshop/internal/domain"
	"toyshop/internal/repo"
	"toyshop/internal/service"
	"toyshop/internal/transport/http/handler"
)

const (
	testAdminEmail    = "owner@example.com"
	testAdminPassword = "ChangeMe123!"
)

type env struct {
	r  *gin.Engine
	db *gorm.DB
}

func newTestEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glog.Default.LogMode(glog.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Product{}))

	jwter := &coreauth.JWTer{Secret: []byte("test_secret"), Issuer: "toyshop", TTL: 168 * time.Hour}
	catalogSvc := service.NewCatalogService(repo.NewProductRepo(db), nil)
	authSvc := service.NewAuthService(repo.NewUserRepo(db), jwter)
	images := service.NewImageStore(t.TempDir(), "/uploads", 5)

	log := zap.NewNop()
	r := NewAPIEngine(Deps{
		Log:        log,
		JWT:        jwter,
		CookieName: "auth",
		Auth: handler.NewAuthHandler(authSvc, handler.CookieOpts{
			Name: "auth", TTL: 168 * time.Hour,
		}, testAdminEmail, testAdminPassword),
		Products:         handler.NewProductHandler(catalogSvc),
		Admin:            handler.NewAdminProductHandler(catalogSvc, images, log),
		UploadDir:        images.Dir,
		UploadPublicPath: "/uploads",
	})
	return &env{r: r, db: db}
}

func (e *env) do(t *testing.T, method, path, contentType string, body io.Reader, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.r.ServeHTTP(rec, req)
	return rec
}

func (e *env) doJSON(t *testing.T, method, path string, payload any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return e.do(t, method, path, "application/json", bytes.NewReader(b), cookies...)
}

func (e *env) doForm(t *testing.T, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, method, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), cookies...)
}

func (e *env) bootstrap(t *testing.T) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/admin/bootstrap", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func (e *env) login(t *testing.T) *http.Cookie {
	t.Helper()
	e.bootstrap(t)
	rec := e.doJSON(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": testAdminEmail, "password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "auth" && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("login did not set auth cookie")
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestBootstrap(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/admin/bootstrap", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]any
	decode(t, rec, &out)
	assert.Equal(t, true, out["created"])

	// 再跑一次不重复建号
	rec = e.do(t, http.MethodPost, "/api/admin/bootstrap", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &out)
	assert.Equal(t, true, out["already"])
}

func TestLoginAndMe(t *testing.T) {
	e := newTestEnv(t)
	ck := e.login(t)

	rec := e.do(t, http.MethodGet, "/api/auth/me", "", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decode(t, rec, &out)
	assert.Equal(t, testAdminEmail, out.User.Email)
	assert.Equal(t, "admin", out.User.Role)
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	e := newTestEnv(t)
	e.bootstrap(t)

	rec := e.doJSON(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": "Owner@Example.COM", "password": testAdminPassword,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	e := newTestEnv(t)
	e.bootstrap(t)

	rec := e.doJSON(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": testAdminEmail, "password": "nope",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	for _, ck := range rec.Result().Cookies() {
		assert.NotEqual(t, "auth", ck.Name, "failed login must not set a session cookie")
	}
}

func TestLoginMissingFields(t *testing.T) {
	e := newTestEnv(t)
	rec := e.doJSON(t, http.MethodPost, "/api/auth/login", gin.H{"email": testAdminEmail})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeWithoutSession(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeWithTamperedToken(t *testing.T) {
	e := newTestEnv(t)
	ck := e.login(t)
	ck.Value = ck.Value + "x"

	rec := e.do(t, http.MethodGet, "/api/auth/me", "", nil, ck)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var out map[string]any
	decode(t, rec, &out)
	assert.Equal(t, "Invalid session", out["error"])
}

func TestLogoutClearsCookie(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodPost, "/api/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	found := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "auth" {
			found = true
			assert.Empty(t, ck.Value)
			assert.Negative(t, ck.MaxAge)
		}
	}
	assert.True(t, found)
}

func TestAdminRequiresSession(t *testing.T) {
	e := newTestEnv(t)

	form := url.Values{"name": {"Teddy Bear"}}
	rec := e.doForm(t, http.MethodPost, "/api/admin/products", form)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/admin/products/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type productResp struct {
	Product domain.Product `json:"product"`
}

func TestCreateUpdateDeleteFlow(t *testing.T) {
	e := newTestEnv(t)
	ck := e.login(t)

	form := url.Values{
		"name":       {"Teddy Bear!!"},
		"price":      {"12.99"},
		"sale_price": {"9.99"},
		"is_on_sale": {"true"},
		"stock":      {"5"},
		"image_url":  {"https://example.com/bear.jpg"},
	}
	rec := e.doForm(t, http.MethodPost, "/api/admin/products", form, ck)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created productResp
	decode(t, rec, &created)
	assert.Equal(t, "teddy-bear", created.Product.Slug)
	require.NotNil(t, created.Product.SalePricePence)
	assert.Equal(t, int64(999), *created.Product.SalePricePence)

	// 归一化后同名 → 409
	rec = e.doForm(t, http.MethodPost, "/api/admin/products", url.Values{"name": {"Teddy Bear"}}, ck)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// 空名 → 400
	rec = e.doForm(t, http.MethodPost, "/api/admin/products", url.Values{"name": {"  "}}, ck)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	id := strconv.FormatUint(uint64(created.Product.ID), 10)

	// sale_price="" 清空促销价；没提交的字段不动
	rec = e.doForm(t, http.MethodPut, "/api/admin/products/"+id, url.Values{"sale_price": {""}}, ck)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated productResp
	decode(t, rec, &updated)
	assert.Nil(t, updated.Product.SalePricePence)
	assert.Equal(t, int64(1299), updated.Product.PricePence)
	assert.Equal(t, 5, updated.Product.Stock)

	// 完全不提 sale_price → 保持（空）现状
	rec = e.doForm(t, http.MethodPut, "/api/admin/products/"+id, url.Values{"stock": {"9"}}, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &updated)
	assert.Nil(t, updated.Product.SalePricePence)
	assert.Equal(t, 9, updated.Product.Stock)

	// 不存在的 id → 404
	rec = e.doForm(t, http.MethodPut, "/api/admin/products/424242", url.Values{"name": {"Ghost"}}, ck)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// 删除幂等
	rec = e.do(t, http.MethodDelete, "/api/admin/products/"+id, "", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodDelete, "/api/admin/products/"+id, "", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodDelete, "/api/admin/products/424242", "", nil, ck)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateWithImageUpload(t *testing.T) {
	e := newTestEnv(t)
	ck := e.login(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Teddy Bear"))
	require.NoError(t, w.WriteField("image_url", "https://example.com/ignored.jpg"))
	fw, err := w.CreateFormFile("image", "te ddy bär.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rec := e.do(t, http.MethodPost, "/api/admin/products", w.FormDataContentType(), &buf, ck)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out productResp
	decode(t, rec, &out)
	// 上传文件优先于 image_url，文件名被收敛到受限字符集
	assert.True(t, strings.HasPrefix(out.Product.ImageURL, "/uploads/"), out.Product.ImageURL)
	assert.NotContains(t, out.Product.ImageURL, " ")
	assert.NotContains(t, out.Product.ImageURL, "ä")
}

func TestPublicProducts(t *testing.T) {
	e := newTestEnv(t)
	ck := e.login(t)

	for _, form := range []url.Values{
		{"name": {"Lego Castle"}, "category": {"Lego"}, "price": {"49.99"}, "stock": {"3"}},
		{"name": {"Jigsaw Puzzle"}, "category": {"Puzzles"}, "price": {"19.99"}, "sale_price": {"14.99"}, "is_on_sale": {"true"}, "stock": {"6"}},
	} {
		rec := e.doForm(t, http.MethodPost, "/api/admin/products", form, ck)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := e.do(t, http.MethodGet, "/api/products?filter=sale&sort=price-asc", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Products []domain.Product `json:"products"`
	}
	decode(t, rec, &list)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "jigsaw-puzzle", list.Products[0].Slug)

	rec = e.do(t, http.MethodGet, "/api/products/lego-castle", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/products/no-such-slug", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// 空结果不是错误
	rec = e.do(t, http.MethodGet, "/api/products?q=nonexistent", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	assert.Empty(t, list.Products)
}
