package convert

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	out string
	err error
}

func (f fakeEngine) Convert(string) (string, error) { return f.out, f.err }

func TestOpenCCConvert(t *testing.T) {
	cc := &OpenCC{cc: fakeEngine{out: "这是繁体"}}
	assert.Equal(t, "这是繁体", cc.Convert("這是繁體"))
}

func TestOpenCCConvertErrorKeepsOriginal(t *testing.T) {
	cc := &OpenCC{cc: fakeEngine{err: errors.New("boom")}}
	assert.Equal(t, "這是繁體", cc.Convert("這是繁體"))
}

func TestFuncAndIdentity(t *testing.T) {
	upper := Func(strings.ToUpper)
	assert.Equal(t, "ABC", upper.Convert("abc"))
	assert.Equal(t, "這是", Identity.Convert("這是"))
}

func TestActive(t *testing.T) {
	assert.True(t, Active(&OpenCC{cc: fakeEngine{}}))
	assert.False(t, Active(Identity))
	assert.False(t, Active(Func(strings.ToUpper)))
}

func TestLoadExplicitDirWithoutDictionary(t *testing.T) {
	c, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Nil(t, c)
}

// 需要 gocc 字典目录，例如: OPENCC_DIR=$(go env GOMODCACHE)/github.com/liuzl/gocc@<version>
func TestLoadRealDictionary(t *testing.T) {
	dir := os.Getenv("OPENCC_DIR")
	if dir == "" {
		t.Skip("OPENCC_DIR is not set, skip dictionary test")
	}

	c, err := Load(dir)
	require.NoError(t, err)
	require.True(t, Active(c))

	assert.Equal(t, "这是繁体", c.Convert("這是繁體"))
	assert.Equal(t, "简体不变", c.Convert("简体不变"))
}
