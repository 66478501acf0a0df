// Package cart 是购物车的客户端状态：slug → 数量 的映射，
// 不经过服务端，改一次存一次。数量减到 0 及以下即从映射里移除。
package cart

import "sort"

type Cart map[string]int

// Set 设置数量；qty <= 0 直接移除，绝不把 0 存进去
func (c Cart) Set(slug string, qty int) {
	if qty <= 0 {
		delete(c, slug)
		return
	}
	c[slug] = qty
}

func (c Cart) Add(slug string, delta int) {
	c.Set(slug, c[slug]+delta)
}

func (c Cart) Remove(slug string) {
	delete(c, slug)
}

// Count 角标数字：所有条目数量之和
func (c Cart) Count() int {
	total := 0
	for _, q := range c {
		total += q
	}
	return total
}

// Subtotal 小计 = Σ 生效价 × 数量。priceOf 解析不了的 slug
// （比如商品已下架）跳过不计。
func (c Cart) Subtotal(priceOf func(slug string) (pence int64, ok bool)) int64 {
	var sum int64
	for slug, qty := range c {
		if price, ok := priceOf(slug); ok {
			sum += price * int64(qty)
		}
	}
	return sum
}

// Slugs 按字典序返回所有条目，渲染时顺序稳定
func (c Cart) Slugs() []string {
	out := make([]string, 0, len(c))
	for slug := range c {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}
