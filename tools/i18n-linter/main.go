// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the embedded locale files against the Go sources. It
// reports keys used in code but missing from the primary locale, keys a
// secondary locale lacks, messages whose fmt verbs differ between locales,
// and primary keys that no code references.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "active.en.yaml"
	projectRoot   = "."
)

var (
	// i18n.T("key") and i18n.T("prefix." + x)
	reStaticKey  = regexp.MustCompile(`i18n\.T\("([a-z0-9_.]+)"\s*[,)]`)
	reDynamicKey = regexp.MustCompile(`i18n\.T\("([a-z0-9_.]+\.)"\s*\+`)
	// any key-shaped literal, e.g. a key passed to a helper that calls i18n.T
	reLiteral    = regexp.MustCompile(`"([a-z_]+\.[a-z0-9_.]+)"`)
	reVerb       = regexp.MustCompile(`%[-+# 0-9.]*[a-zA-Z%]`)
)

// usage collects the keys referenced from code.
type usage struct {
	keys     map[string]struct{}
	prefixes map[string]struct{}
	literals map[string]struct{}
}

// covers reports whether key is referenced statically or through a prefix.
func (u usage) covers(key string) bool {
	if _, ok := u.keys[key]; ok {
		return true
	}
	if _, ok := u.literals[key]; ok {
		return true
	}
	for p := range u.prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// report is the linter outcome.
type report struct {
	Undefined     []string            // used in code, absent from the primary locale
	Missing       map[string][]string // locale file -> primary keys it lacks
	VerbMismatch  map[string][]string // locale file -> keys with different fmt verbs
	Orphaned      []string            // in the primary locale, never referenced
	PrimaryKeys   int
	UsedKeysCount int
}

func (r report) failed() bool {
	return len(r.Undefined) > 0 || len(r.Missing) > 0 || len(r.VerbMismatch) > 0
}

func main() {
	fmt.Println("🔍 Running i18n linter...")
	r, err := lint(projectRoot, localesDir)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ %d keys used in code, %d keys in %s.\n\n", r.UsedKeysCount, r.PrimaryKeys, primaryLocale)

	section := func(title string, items []string, prefix string) {
		fmt.Printf("--- %s ---\n", title)
		if len(items) == 0 {
			fmt.Println("  ✨ None found.")
		}
		for _, k := range items {
			fmt.Printf("  - %s: %s\n", prefix, k)
		}
		fmt.Println()
	}
	section("Keys used in code but not defined", r.Undefined, "Undefined")
	for _, file := range sortedKeys(r.Missing) {
		section("Missing keys in "+file, r.Missing[file], "Missing")
	}
	for _, file := range sortedKeys(r.VerbMismatch) {
		section("Format verbs differ in "+file, r.VerbMismatch[file], "Verbs")
	}
	section("Orphaned keys (defined but never used)", r.Orphaned, "Orphaned")

	switch {
	case r.failed():
		fmt.Println("❌ Found issues that need to be addressed.")
		os.Exit(1)
	case len(r.Orphaned) > 0:
		fmt.Println("⚠️  Found orphaned keys. Please consider removing them.")
	default:
		fmt.Println("✅ All translation files are consistent!")
	}
}

// lint compares the sources under root with the locale files in dir.
func lint(root, dir string) (report, error) {
	r := report{Missing: map[string][]string{}, VerbMismatch: map[string][]string{}}

	used, err := findUsedKeys(root)
	if err != nil {
		return r, fmt.Errorf("error finding used keys: %w", err)
	}
	r.UsedKeysCount = len(used.keys)

	primary, err := loadLocale(filepath.Join(dir, primaryLocale))
	if err != nil {
		return r, fmt.Errorf("error loading primary locale %q: %w", primaryLocale, err)
	}
	r.PrimaryKeys = len(primary)

	for k := range used.keys {
		if _, ok := primary[k]; !ok {
			r.Undefined = append(r.Undefined, k)
		}
	}
	for k := range primary {
		if !used.covers(k) {
			r.Orphaned = append(r.Orphaned, k)
		}
	}
	sort.Strings(r.Undefined)
	sort.Strings(r.Orphaned)

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return r, fmt.Errorf("error finding locale files: %w", err)
	}
	for _, file := range files {
		name := filepath.Base(file)
		if name == primaryLocale {
			continue
		}
		secondary, err := loadLocale(file)
		if err != nil {
			return r, fmt.Errorf("error loading %s: %w", name, err)
		}
		for k, msg := range primary {
			other, ok := secondary[k]
			if !ok {
				r.Missing[name] = append(r.Missing[name], k)
				continue
			}
			if strings.Join(verbs(msg), " ") != strings.Join(verbs(other), " ") {
				r.VerbMismatch[name] = append(r.VerbMismatch[name], k)
			}
		}
		sort.Strings(r.Missing[name])
		sort.Strings(r.VerbMismatch[name])
	}
	return r, nil
}

// findUsedKeys scans non-test .go files for i18n.T calls.
func findUsedKeys(root string) (usage, error) {
	u := usage{keys: map[string]struct{}{}, prefixes: map[string]struct{}{}, literals: map[string]struct{}{}}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range reStaticKey.FindAllStringSubmatch(string(content), -1) {
			u.keys[m[1]] = struct{}{}
		}
		for _, m := range reDynamicKey.FindAllStringSubmatch(string(content), -1) {
			u.prefixes[m[1]] = struct{}{}
		}
		for _, m := range reLiteral.FindAllStringSubmatch(string(content), -1) {
			u.literals[m[1]] = struct{}{}
		}
		return nil
	})
	return u, err
}

// loadLocale reads a flat YAML message file.
func loadLocale(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]string
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// verbs lists the fmt verbs of msg in order, ignoring flags and widths.
func verbs(msg string) []string {
	var out []string
	for _, v := range reVerb.FindAllString(msg, -1) {
		if v == "%%" {
			continue
		}
		out = append(out, v[len(v)-1:])
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		if len(v) > 0 {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
