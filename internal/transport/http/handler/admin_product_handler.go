package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"toyshop/internal/domain"
	"toyshop/internal/service"
	resp "toyshop/internal/transport/http/response"
)

type AdminProductHandler struct {
	Svc    *service.CatalogService
	Images *service.ImageStore
	Log    *zap.Logger
}

func NewAdminProductHandler(svc *service.CatalogService, images *service.ImageStore, l *zap.Logger) *AdminProductHandler {
	return &AdminProductHandler{Svc: svc, Images: images, Log: l}
}

// productInput 按"字段有没有出现在表单里"组装部分更新结构。
// 开关字段只认字面量 "true"。
func productInput(c *gin.Context) service.ProductInput {
	get := func(key string) *string {
		if v, ok := c.GetPostForm(key); ok {
			return &v
		}
		return nil
	}
	getBool := func(key string) *bool {
		if s := get(key); s != nil {
			b := *s == "true"
			return &b
		}
		return nil
	}
	return service.ProductInput{
		Name:         get("name"),
		Description:  get("description"),
		Category:     get("category"),
		Price:        get("price"),
		SalePrice:    get("sale_price"),
		Stock:        get("stock"),
		IsNew:        getBool("is_new"),
		IsBestSeller: getBool("is_best_seller"),
		IsOnSale:     getBool("is_on_sale"),
		ImageURL:     get("image_url"),
	}
}

// saveImage 有上传文件就落盘并返回公开路径，没有就返回空串
func (h *AdminProductHandler) saveImage(c *gin.Context) (string, bool) {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		return "", true
	}
	path, err := h.Images.Save(fh)
	if err != nil {
		if errors.Is(err, service.ErrImageTooLarge) {
			resp.Err(c, http.StatusBadRequest, "Image too large")
		} else {
			h.Log.Warn("image save failed", zap.Error(err))
			resp.Err(c, http.StatusInternalServerError, "Image upload failed")
		}
		return "", false
	}
	return path, true
}

// Create POST /api/admin/products
func (h *AdminProductHandler) Create(c *gin.Context) {
	imagePath, ok := h.saveImage(c)
	if !ok {
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), productInput(c), imagePath)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			resp.Err(c, http.StatusBadRequest, "Name required")
			return
		}
		if !errors.Is(err, domain.ErrSlugTaken) {
			h.Log.Error("product create failed", zap.Error(err))
		}
		resp.FromDomainErr(c, err, "create failed")
		return
	}
	resp.OK(c, gin.H{"product": p})
}

// Update PUT /api/admin/products/:id —— 全字段可选的部分更新
func (h *AdminProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.Err(c, http.StatusNotFound, "Not found")
		return
	}
	imagePath, ok := h.saveImage(c)
	if !ok {
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), uint(id), productInput(c), imagePath)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrSlugTaken) {
			h.Log.Error("product update failed", zap.Uint64("id", id), zap.Error(err))
		}
		resp.FromDomainErr(c, err, "update failed")
		return
	}
	resp.OK(c, gin.H{"product": p})
}

// Delete DELETE /api/admin/products/:id —— 幂等，删不存在的 id 也返回 ok
func (h *AdminProductHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if id != 0 {
		if err := h.Svc.Delete(c.Request.Context(), uint(id)); err != nil {
			h.Log.Error("product delete failed", zap.Uint64("id", id), zap.Error(err))
			resp.FromDomainErr(c, err, "delete failed")
			return
		}
	}
	resp.OK(c, gin.H{"ok": true})
}
