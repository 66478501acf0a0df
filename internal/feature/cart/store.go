package cart

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Store 持久化购物车，默认给个单文件 JSON 实现。
type Store interface {
	Load() (Cart, error)
	Save(Cart) error
}

type FileStore struct{ Path string }

func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

// Load 读不到或坏档一律当空车，购物车丢了不算错误
func (s *FileStore) Load() (Cart, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return Cart{}, nil
	}
	var c Cart
	if err := json.Unmarshal(b, &c); err != nil || c == nil {
		return Cart{}, nil
	}
	// 存档里不该出现非正数量，读入时清掉
	for slug, qty := range c {
		if qty <= 0 {
			delete(c, slug)
		}
	}
	return c, nil
}

func (s *FileStore) Save(c Cart) error {
	if dir := filepath.Dir(s.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, b, 0o644)
}
