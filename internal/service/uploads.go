package service

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var ErrImageTooLarge = errors.New("image too large")

// ImageStore 把上传的商品图落到磁盘，返回对外可访问的路径。
// 文件名加时间戳前缀防撞，原名只保留受限字符集，杜绝路径穿越。
type ImageStore struct {
	Dir        string // 磁盘目录
	PublicPath string // 对外前缀，如 /uploads
	MaxSize    int64  // 字节
}

func NewImageStore(dir, publicPath string, maxSizeMB int) *ImageStore {
	return &ImageStore{Dir: dir, PublicPath: publicPath, MaxSize: int64(maxSizeMB) << 20}
}

func (s *ImageStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.MaxSize {
		return "", ErrImageTooLarge
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}

	safe := sanitizeFilename(filepath.Base(fh.Filename))
	name := strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + safe

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// 复制时再卡一次大小，header 里的 Size 不可信
	if _, err := io.Copy(dst, io.LimitReader(src, s.MaxSize+1)); err != nil {
		return "", err
	}
	if st, err := dst.Stat(); err == nil && st.Size() > s.MaxSize {
		_ = os.Remove(dst.Name())
		return "", ErrImageTooLarge
	}
	return path.Join(s.PublicPath, name), nil
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '_' || r == '-':
			return r
		default:
			return '_'
		}
	}, name)
}
