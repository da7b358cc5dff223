package dict

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	d := Default()

	assert.True(t, d.Skills.Contains("python"))
	assert.True(t, d.Skills.Contains("c++"))
	assert.True(t, d.Tools.Contains("jira"))
	assert.Contains(t, d.Education, "bachelor")
	assert.Contains(t, d.Experience, "years")
	assert.NotEmpty(t, d.Prerequisites)
}

func TestDefault_IndependentCopies(t *testing.T) {
	first := Default()
	first.Skills.Add("cobol")
	first.Prerequisites["aws"] = append(first.Prerequisites["aws"], "terraform")

	second := Default()
	assert.False(t, second.Skills.Contains("cobol"))
	assert.NotContains(t, second.Prerequisites["aws"], "terraform")
}

func TestLoad_EmptyPath(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	assert.True(t, d.Skills.Contains("python"))
}

func TestLoad_MergesCustomEntries(t *testing.T) {
	content := `skills:
  - Erlang
  - " elixir "
tools:
  - Asana
education:
  - licentiate
prerequisites:
  Erlang: [functional programming]
`
	path := filepath.Join(t.TempDir(), "dictionary.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	d, err := Load(path)
	require.NoError(t, err)

	// 自定义词条被归一化为小写并去除首尾空白
	assert.True(t, d.Skills.Contains("erlang"))
	assert.True(t, d.Skills.Contains("elixir"))
	assert.True(t, d.Tools.Contains("asana"))
	assert.Contains(t, d.Education, "licentiate")
	assert.Equal(t, []string{"functional programming"}, d.Prerequisites["erlang"])

	// 默认词表仍然保留
	assert.True(t, d.Skills.Contains("python"))
}

func TestLoad_SkipsBlankEntries(t *testing.T) {
	content := `skills:
  - "  "
  - ""
  - rust
tools:
  - "	"
education:
  - "   "
prerequisites:
  " ": [nothing]
`
	path := filepath.Join(t.TempDir(), "dictionary.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	d, err := Load(path)
	require.NoError(t, err)

	assert.False(t, d.Skills.Contains(""))
	assert.True(t, d.Skills.Contains("rust"))
	assert.False(t, d.Tools.Contains(""))
	assert.NotContains(t, d.Education, "")
	_, ok := d.Prerequisites[""]
	assert.False(t, ok)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skills: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestPrerequisitesFor(t *testing.T) {
	d := Default()

	assert.Equal(t, []string{"linux", "networking", "cloud computing"}, d.PrerequisitesFor("aws"))
	// 子串匹配: "aws lambda" 仍命中 aws 条目
	assert.Equal(t, []string{"linux", "networking", "cloud computing"}, d.PrerequisitesFor("AWS Lambda"))

	// 未命中返回空列表, JSON序列化为 [] 而非 null
	unmatched := d.PrerequisitesFor("fortran")
	assert.NotNil(t, unmatched)
	assert.Empty(t, unmatched)
	data, err := json.Marshal(unmatched)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestPrerequisitesFor_DeterministicOnMultipleHits(t *testing.T) {
	d := Default()
	d.Prerequisites["go"] = []string{"concurrency"}
	d.Prerequisites["golang"] = []string{"pointers"}

	// "golang" 同时包含键 "go" 与 "golang", 按键字典序取第一个命中
	for i := 0; i < 10; i++ {
		assert.Equal(t, []string{"concurrency"}, d.PrerequisitesFor("golang"))
	}
}
