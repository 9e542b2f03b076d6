// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.
package i18n

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestInitAndAvailableLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}

	av := GetAvailableLocales()
	for _, k := range []string{"en", "ru"} {
		if _, ok := av[k]; !ok {
			t.Fatalf("expected available locale %q to be present, got %v", k, av)
		}
	}
	if av["ru"] != "русский" {
		t.Fatalf("unexpected display name for ru: %q", av["ru"])
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")
	defer Init("en")

	if got := T("menu.quit"); got != "Quit" {
		t.Fatalf("expected 'Quit', got %q", got)
	}
	if got := T("result.added", T("entity.client"), 7); got != "Client #7 added." {
		t.Fatalf("unexpected formatted translation: %q", got)
	}
	if got := T("no.such.message"); got != "no.such.message" {
		t.Fatalf("missing IDs should be returned unchanged, got %q", got)
	}

	SetLang("ru")
	if GetLang() != "ru" {
		t.Fatalf("expected lang 'ru', got %q", GetLang())
	}
	if got := T("menu.quit"); got != "Выход" {
		t.Fatalf("expected Russian 'Выход', got %q", got)
	}
}

func TestT_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	Init("fr")
	defer Init("en")
	if got := T("menu.quit"); got != "Quit" {
		t.Fatalf("expected English fallback, got %q", got)
	}
}

func TestLocales_SameKeys(t *testing.T) {
	load := func(name string) map[string]string {
		data, err := localeFS.ReadFile("locales/" + name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		var m map[string]string
		if err := yaml.Unmarshal(data, &m); err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		return m
	}
	en := load("active.en.yaml")
	ru := load("active.ru.yaml")
	for k := range en {
		if _, ok := ru[k]; !ok {
			t.Errorf("active.ru.yaml is missing %q", k)
		}
	}
	for k := range ru {
		if _, ok := en[k]; !ok {
			t.Errorf("active.ru.yaml has %q which active.en.yaml lacks", k)
		}
	}
}
