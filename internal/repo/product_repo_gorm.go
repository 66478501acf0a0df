package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"toyshop/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

// List 组装目录查询：子串搜索、分类、标志过滤、排序。条件全部取交集，不分页。
func (r *ProductRepo) List(q domain.ListQuery) ([]domain.Product, error) {
	tx := r.db.Model(&domain.Product{})

	if s := strings.ToLower(strings.TrimSpace(q.Q)); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("lower(name) LIKE ? OR lower(description) LIKE ? OR lower(category) LIKE ?", like, like, like)
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	switch q.Filter {
	case domain.FilterNew:
		tx = tx.Where("is_new = ?", true)
	case domain.FilterBestseller:
		tx = tx.Where("is_best_seller = ?", true)
	case domain.FilterSale:
		tx = tx.Where("is_on_sale = ?", true)
	}

	// featured = 库存多、更新新的排前面；价格排序用生效价
	orderBy := "stock DESC, updated_at DESC"
	switch q.Sort {
	case domain.SortPriceAsc:
		orderBy = "COALESCE(sale_price_pence, price_pence) ASC"
	case domain.SortPriceDesc:
		orderBy = "COALESCE(sale_price_pence, price_pence) DESC"
	case domain.SortNameAsc:
		orderBy = "name ASC"
	}

	var items []domain.Product
	if err := tx.Order(orderBy).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ProductRepo) FindBySlug(slug string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.First(&p, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) FindByID(id uint) (*domain.Product, error) {
	var p domain.Product
	err := r.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Create(p *domain.Product) error {
	if err := r.db.Create(p).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *ProductRepo) Update(p *domain.Product) error {
	// Save 全量写，可选列（sale_price_pence 置空）也能落库
	if err := r.db.Save(p).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrSlugTaken
		}
		return err
	}
	return nil
}

// Delete 幂等：删不存在的 id 不报错
func (r *ProductRepo) Delete(id uint) error {
	return r.db.Delete(&domain.Product{}, id).Error
}

func (r *ProductRepo) Count() (int64, error) {
	var total int64
	err := r.db.Model(&domain.Product{}).Count(&total).Error
	return total, err
}

// isDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
