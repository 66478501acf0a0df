package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPence(t *testing.T) {
	assert.Equal(t, int64(1499), ToPence("14.99"))
	assert.Equal(t, int64(100), ToPence("1"))
	assert.Equal(t, int64(1000), ToPence("9.999")) // 四舍五入
	assert.Equal(t, int64(0), ToPence(""))
	assert.Equal(t, int64(0), ToPence("abc"))
	assert.Equal(t, int64(0), ToPence("-5"))
	assert.Equal(t, int64(0), ToPence("NaN"))
	assert.Equal(t, int64(0), ToPence("+Inf"))
}

func TestParseStock(t *testing.T) {
	assert.Equal(t, 12, ParseStock("12"))
	assert.Equal(t, 0, ParseStock("-3"))
	assert.Equal(t, 0, ParseStock(""))
	assert.Equal(t, 0, ParseStock("many"))
}
