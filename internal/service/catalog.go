package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"toyshop/internal/core/cache"
	"toyshop/internal/domain"
	"toyshop/pkg/utils"
)

const (
	catalogCacheNS  = "catalog"
	catalogCacheTTL = 5 * time.Minute
)

// ProductInput 后台表单的部分更新结构：nil 表示没提交这个字段，
// 提交了空串和没提交是两码事（sale_price="" 是清空促销价）。
type ProductInput struct {
	Name         *string
	Description  *string
	Category     *string
	Price        *string // 英镑金额原始值，按 utils.ToPence 规则归零
	SalePrice    *string // "" 清空
	Stock        *string
	IsNew        *bool
	IsBestSeller *bool
	IsOnSale     *bool
	ImageURL     *string
}

type CatalogService struct {
	Products domain.ProductRepository
	Cache    *cache.Cache // 可为 nil，nil 时直连数据库
}

func NewCatalogService(products domain.ProductRepository, c *cache.Cache) *CatalogService {
	return &CatalogService{Products: products, Cache: c}
}

func (s *CatalogService) List(ctx context.Context, q domain.ListQuery) ([]domain.Product, error) {
	if s.Cache == nil {
		return s.Products.List(q)
	}
	ver := s.Cache.Version(ctx, catalogCacheNS)
	key := cache.VersionedKey(catalogCacheNS, ver,
		fmt.Sprintf("q=%s&cat=%s&f=%s&s=%s", strings.ToLower(q.Q), q.Category, q.Filter, q.Sort))
	out, err := cache.GetOrLoadJSON[[]domain.Product](s.Cache, ctx, key, catalogCacheTTL,
		func(ctx context.Context) (*[]domain.Product, error) {
			items, e := s.Products.List(q)
			if e != nil {
				return nil, e
			}
			return &items, nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return []domain.Product{}, nil
	}
	return *out, nil
}

func (s *CatalogService) GetBySlug(slug string) (*domain.Product, error) {
	return s.Products.FindBySlug(slug)
}

// Create 新建商品。name 必填，slug 从 name 推导，slug 撞车返回 ErrSlugTaken。
// imagePath 是已落盘的上传文件公开路径，优先于表单里的 image_url。
func (s *CatalogService) Create(ctx context.Context, in ProductInput, imagePath string) (*domain.Product, error) {
	name := ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if name == "" {
		return nil, domain.ErrValidation
	}

	p := domain.Product{
		Slug:     utils.Slugify(name),
		Name:     name,
		Category: "Toys",
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil && *in.Category != "" {
		p.Category = *in.Category
	}
	if in.Price != nil {
		p.PricePence = utils.ToPence(*in.Price)
	}
	if in.SalePrice != nil && *in.SalePrice != "" {
		sp := utils.ToPence(*in.SalePrice)
		p.SalePricePence = &sp
	}
	if in.IsNew != nil {
		p.IsNew = *in.IsNew
	}
	if in.IsBestSeller != nil {
		p.IsBestSeller = *in.IsBestSeller
	}
	if in.IsOnSale != nil {
		p.IsOnSale = *in.IsOnSale
	}
	if in.Stock != nil {
		p.Stock = utils.ParseStock(*in.Stock)
	}
	switch {
	case imagePath != "":
		p.ImageURL = imagePath
	case in.ImageURL != nil:
		p.ImageURL = *in.ImageURL
	}

	if err := s.Products.Create(&p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &p, nil
}

// Update 按 id 部分更新：没提交的字段保持原值，sale_price="" 显式清空，
// slug 永远按（可能没变的）name 重新推导。id 不存在返回 ErrNotFound。
func (s *CatalogService) Update(ctx context.Context, id uint, in ProductInput, imagePath string) (*domain.Product, error) {
	p, err := s.Products.FindByID(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		p.Name = strings.TrimSpace(*in.Name)
	}
	p.Slug = utils.Slugify(p.Name)

	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Price != nil {
		p.PricePence = utils.ToPence(*in.Price)
	}
	if in.SalePrice != nil {
		if *in.SalePrice == "" {
			p.SalePricePence = nil
		} else {
			sp := utils.ToPence(*in.SalePrice)
			p.SalePricePence = &sp
		}
	}
	if in.IsNew != nil {
		p.IsNew = *in.IsNew
	}
	if in.IsBestSeller != nil {
		p.IsBestSeller = *in.IsBestSeller
	}
	if in.IsOnSale != nil {
		p.IsOnSale = *in.IsOnSale
	}
	if in.Stock != nil {
		p.Stock = utils.ParseStock(*in.Stock)
	}
	switch {
	case imagePath != "":
		p.ImageURL = imagePath
	case in.ImageURL != nil && *in.ImageURL != "":
		// 注意：这里不校验 URL 内容，沿用现状
		p.ImageURL = *in.ImageURL
	}

	if err := s.Products.Update(p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

// Delete 幂等删除，不存在的 id 也算成功
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	if err := s.Products.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Bump(ctx, catalogCacheNS)
	}
}
