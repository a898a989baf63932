package main

import (
	"bytes"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("folio %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	if got := execute(t, "version"); got != "folio dev\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestSitemapCommand(t *testing.T) {
	out := execute(t, "sitemap", "--base-url", "https://example.com")
	if n := strings.Count(out, "<url>"); n != 8 {
		t.Errorf("sitemap has %d urls, want 8", n)
	}
	if !strings.Contains(out, "<loc>https://example.com/ko/about</loc>") {
		t.Errorf("sitemap missing ko about:\n%s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	out := execute(t, "check")
	if !strings.HasPrefix(out, "ok: 2 locales") {
		t.Errorf("check output = %q", out)
	}
}
