package dict

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"resume-match-go/internal/types"
)

// Dictionary 技能/工具/学历/经验关键词的静态查找表。
// 进程启动时加载一次，之后只读，可被多个请求并发读取。
type Dictionary struct {
	Skills        types.StringSet
	Tools         types.StringSet
	Education     []string
	Experience    []string
	Prerequisites map[string][]string
}

// dictionaryFile 自定义词表文件的YAML结构
type dictionaryFile struct {
	Skills        []string            `yaml:"skills"`
	Tools         []string            `yaml:"tools"`
	Education     []string            `yaml:"education"`
	Experience    []string            `yaml:"experience"`
	Prerequisites map[string][]string `yaml:"prerequisites"`
}

// Default 返回内置的默认词表
func Default() *Dictionary {
	return &Dictionary{
		Skills:        types.NewStringSet(defaultSkills...),
		Tools:         types.NewStringSet(defaultTools...),
		Education:     append([]string(nil), defaultEducation...),
		Experience:    append([]string(nil), defaultExperience...),
		Prerequisites: clonePrerequisites(defaultPrerequisites),
	}
}

// Load 从YAML文件加载自定义词表并合并到默认词表上。
// path 为空时直接返回默认词表。
func Load(path string) (*Dictionary, error) {
	d := Default()
	if path == "" {
		return d, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取词表文件失败: %w", err)
	}

	var file dictionaryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("解析词表文件失败: %w", err)
	}

	// 空白词条直接丢弃，空字符串进词表会让抽取正则失去意义
	for _, s := range file.Skills {
		if term := strings.ToLower(strings.TrimSpace(s)); term != "" {
			d.Skills.Add(term)
		}
	}
	for _, t := range file.Tools {
		if term := strings.ToLower(strings.TrimSpace(t)); term != "" {
			d.Tools.Add(term)
		}
	}
	for _, e := range file.Education {
		if term := strings.ToLower(strings.TrimSpace(e)); term != "" {
			d.Education = append(d.Education, term)
		}
	}
	for _, e := range file.Experience {
		if term := strings.ToLower(strings.TrimSpace(e)); term != "" {
			d.Experience = append(d.Experience, term)
		}
	}
	for skill, prereqs := range file.Prerequisites {
		if key := strings.ToLower(strings.TrimSpace(skill)); key != "" {
			d.Prerequisites[key] = prereqs
		}
	}

	return d, nil
}

// PrerequisitesFor 按子串匹配查找技能的前置依赖，未命中返回空列表。
// 按键的字典序扫描，保证多键命中时结果确定。
func (d *Dictionary) PrerequisitesFor(skill string) []string {
	skillLower := strings.ToLower(skill)
	keys := make([]string, 0, len(d.Prerequisites))
	for key := range d.Prerequisites {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if strings.Contains(skillLower, key) {
			return d.Prerequisites[key]
		}
	}
	return []string{}
}

func clonePrerequisites(src map[string][]string) map[string][]string {
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}
