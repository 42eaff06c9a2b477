package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog holds translations keyed by locale. Values are nested maps addressed
// with dot-separated keys ("recipe.servings").
type Catalog map[Locale]map[string]any

// ParseYAML decodes a document whose top-level keys are locales:
//
//	kr:
//	  search:
//	    no_results: 검색 결과가 없습니다
//	en:
//	  search:
//	    no_results: No results
func ParseYAML(data []byte) (Catalog, error) {
	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	out := make(Catalog, len(raw))
	for l, tree := range raw {
		if tree == nil {
			return nil, fmt.Errorf("%w: locale %q has no entries", ErrInvalidCatalog, l)
		}
		out[Locale(l)] = tree
	}
	return out, nil
}

// LoadFS merges every .yaml/.yml file under dir into one catalog. Later
// files override earlier keys at the top level of each locale.
func LoadFS(fsys fs.FS, dir string) (Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Join(ErrNoCatalogs, err)
	}

	out := make(Catalog)
	for _, e := range entries {
		ext := strings.ToLower(path.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		c, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out.Merge(c)
	}
	if len(out) == 0 {
		return nil, ErrNoCatalogs
	}
	return out, nil
}

// Merge copies other into c.
func (c Catalog) Merge(other Catalog) {
	for l, tree := range other {
		if c[l] == nil {
			c[l] = make(map[string]any, len(tree))
		}
		maps.Copy(c[l], tree)
	}
}

func lookup(tree map[string]any, key string) (string, bool) {
	var cur any = tree
	for part := range strings.SplitSeq(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		if cur, ok = m[part]; !ok {
			return "", false
		}
	}
	switch v := cur.(type) {
	case string:
		return v, true
	case int, int64, float64, bool:
		return fmt.Sprint(v), true
	}
	return "", false
}
