package domain

import "time"

type Product struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug           string    `gorm:"uniqueIndex;size:191;not null" json:"slug"`
	Name           string    `gorm:"size:191;not null" json:"name"`
	Description    string    `gorm:"not null;default:''" json:"description"`
	Category       string    `gorm:"size:64;not null;default:Toys" json:"category"`
	PricePence     int64     `gorm:"not null" json:"price_pence"`
	SalePricePence *int64    `json:"sale_price_pence"`
	IsNew          bool      `gorm:"not null;default:false" json:"is_new"`
	IsBestSeller   bool      `gorm:"not null;default:false" json:"is_best_seller"`
	IsOnSale       bool      `gorm:"not null;default:false" json:"is_on_sale"`
	Stock          int       `gorm:"not null;default:0" json:"stock"`
	ImageURL       string    `gorm:"not null;default:''" json:"image_url"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// EffectivePrice 展示价：促销开着且促销价确实更低才生效，否则原价
func (p *Product) EffectivePrice() int64 {
	if p.IsOnSale && p.SalePricePence != nil && *p.SalePricePence < p.PricePence {
		return *p.SalePricePence
	}
	return p.PricePence
}

// Filter 取值：all / new / bestseller / sale；未知值等同 all
type Filter string

const (
	FilterAll        Filter = "all"
	FilterNew        Filter = "new"
	FilterBestseller Filter = "bestseller"
	FilterSale       Filter = "sale"
)

// Sort 取值：featured / price-asc / price-desc / name-asc；未知值等同 featured
type Sort string

const (
	SortFeatured  Sort = "featured"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortNameAsc   Sort = "name-asc"
)

// ListQuery 列表查询条件，全部条件取交集，不分页
type ListQuery struct {
	Q        string // 在 name/description/category 里做不区分大小写的子串匹配
	Category string // 非空时精确匹配
	Filter   Filter
	Sort     Sort
}

type ProductRepository interface {
	List(q ListQuery) ([]Product, error)
	FindBySlug(slug string) (*Product, error)
	FindByID(id uint) (*Product, error)
	Create(p *Product) error
	Update(p *Product) error
	Delete(id uint) error
	Count() (int64, error)
}
