package npm

import (
	"context"
	"testing"

	"github.com/mcpinstall/mcpinstall/internal/execx"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"@acme/widget", "widget"},
		{"@modelcontextprotocol/server-github", "server-github"},
		{"@scope/nested/extra", "nested/extra"},
		{"plain-package", "plain-package"},
		{"under_scored", "under_scored"},
		{"@noslash", "@noslash"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.name); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestClient_Probes(t *testing.T) {
	ctx := context.Background()

	t.Run("node present", func(t *testing.T) {
		c := NewClient(execx.NewFake(), Tools{})
		if !c.HasNode(ctx) {
			t.Error("HasNode() = false, want true")
		}
	})

	t.Run("node absent", func(t *testing.T) {
		c := NewClient(execx.NewFake().Fail("node --version"), Tools{})
		if c.HasNode(ctx) {
			t.Error("HasNode() = true, want false")
		}
	})

	t.Run("uvx absent", func(t *testing.T) {
		c := NewClient(execx.NewFake().Fail("uvx --version"), Tools{})
		if c.HasUvx(ctx) {
			t.Error("HasUvx() = true, want false")
		}
	})
}

func TestClient_PackageExists(t *testing.T) {
	ctx := context.Background()

	t.Run("resolvable", func(t *testing.T) {
		fake := execx.NewFake().Respond("npm view @acme/widget version", "2.0.1")
		c := NewClient(fake, Tools{})
		if !c.PackageExists(ctx, "@acme/widget") {
			t.Error("PackageExists() = false, want true")
		}
	})

	t.Run("lookup failure treated as not found", func(t *testing.T) {
		fake := execx.NewFake().Fail("npm view")
		c := NewClient(fake, Tools{})
		if c.PackageExists(ctx, "no-such-pkg") {
			t.Error("PackageExists() = true, want false")
		}
	})
}

func TestClient_CustomTools(t *testing.T) {
	fake := execx.NewFake()
	c := NewClient(fake, Tools{Node: "node22", Npm: "pnpm"})

	ctx := context.Background()
	c.HasNode(ctx)
	c.PackageExists(ctx, "pkg")

	if got := fake.CommandLines()[0]; got != "node22 --version" {
		t.Errorf("probe command = %q, want %q", got, "node22 --version")
	}
	if got := fake.CommandLines()[1]; got != "pnpm view pkg version" {
		t.Errorf("lookup command = %q, want %q", got, "pnpm view pkg version")
	}

	// Unset tools keep their defaults.
	if c.Tools().Uvx != "uvx" {
		t.Errorf("Tools().Uvx = %q, want uvx", c.Tools().Uvx)
	}
}
