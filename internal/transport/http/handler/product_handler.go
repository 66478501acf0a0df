package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"toyshop/internal/domain"
	"toyshop/internal/service"
	resp "toyshop/internal/transport/http/response"
)

type ProductHandler struct {
	Svc *service.CatalogService
}

func NewProductHandler(svc *service.CatalogService) *ProductHandler {
	return &ProductHandler{Svc: svc}
}

// List GET /api/products?q=&category=&filter=&sort=
func (h *ProductHandler) List(c *gin.Context) {
	q := domain.ListQuery{
		Q:        c.Query("q"),
		Category: c.Query("category"),
		Filter:   domain.Filter(c.DefaultQuery("filter", string(domain.FilterAll))),
		Sort:     domain.Sort(c.DefaultQuery("sort", string(domain.SortFeatured))),
	}
	items, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		resp.FromDomainErr(c, err, "list failed")
		return
	}
	if items == nil {
		items = []domain.Product{}
	}
	resp.OK(c, gin.H{"products": items})
}

// GetBySlug GET /api/products/:slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	p, err := h.Svc.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			resp.Err(c, http.StatusNotFound, "Not found")
			return
		}
		resp.FromDomainErr(c, err, "get failed")
		return
	}
	resp.OK(c, gin.H{"product": p})
}
