package installer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xerrors "github.com/mcpinstall/mcpinstall/internal/errors"
	"github.com/mcpinstall/mcpinstall/internal/execx"
	"github.com/mcpinstall/mcpinstall/internal/npm"
)

// recordedInstall captures one delegation to the back-end.
type recordedInstall struct {
	Name    string
	Command string
	Args    []string
	Env     []string
}

// fakeBackend records installs and can be told to fail on specific names.
type fakeBackend struct {
	installs []recordedInstall
	failOn   map[string]error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{failOn: make(map[string]error)}
}

func (f *fakeBackend) Install(_ context.Context, name, command string, args, env []string) error {
	if err, ok := f.failOn[name]; ok {
		return err
	}
	f.installs = append(f.installs, recordedInstall{
		Name: name, Command: command, Args: args, Env: env,
	})
	return nil
}

func (f *fakeBackend) Method() string         { return "test backend" }
func (f *fakeBackend) SuccessMessage() string { return "Done." }

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0o644))
}

func TestInstallPackageViaNpm(t *testing.T) {
	fake := execx.NewFake().Respond("npm view @acme/widget version", "1.2.3\n")
	backend := newFakeBackend()
	svc := NewService(backend, npm.NewClient(fake, npm.Tools{}))

	res, err := svc.InstallPackage(context.Background(), "@acme/widget",
		[]string{"--cache"}, []string{"API_KEY=abc"})
	require.NoError(t, err)

	require.Len(t, backend.installs, 1)
	got := backend.installs[0]
	assert.Equal(t, "widget", got.Name)
	assert.Equal(t, "npx", got.Command)
	assert.Equal(t, []string{"@acme/widget", "--cache"}, got.Args)
	assert.Equal(t, []string{"API_KEY=abc"}, got.Env)

	assert.Equal(t, []string{"widget"}, res.Servers)
	assert.Contains(t, res.Message, "widget")
	assert.Contains(t, res.Message, "test backend")
	assert.Contains(t, res.Message, "Done.")
}

func TestInstallPackageFallsBackToUvx(t *testing.T) {
	fake := execx.NewFake().Fail("npm view")
	backend := newFakeBackend()
	svc := NewService(backend, npm.NewClient(fake, npm.Tools{}))

	_, err := svc.InstallPackage(context.Background(), "mcp-server-fetch", nil, nil)
	require.NoError(t, err)

	require.Len(t, backend.installs, 1)
	got := backend.installs[0]
	assert.Equal(t, "uvx", got.Command)
	assert.Equal(t, []string{"mcp-server-fetch"}, got.Args)
}

func TestInstallPackageRequiresNode(t *testing.T) {
	fake := execx.NewFake().Fail("node --version")
	svc := NewService(newFakeBackend(), npm.NewClient(fake, npm.Tools{}))

	_, err := svc.InstallPackage(context.Background(), "mcp-server-fetch", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerrors.ErrNodeNotFound))
}

func TestInstallPackageRequiresUvxWhenNotOnNpm(t *testing.T) {
	fake := execx.NewFake().
		Fail("npm view").
		Fail("uvx --version")
	svc := NewService(newFakeBackend(), npm.NewClient(fake, npm.Tools{}))

	_, err := svc.InstallPackage(context.Background(), "mcp-server-fetch", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerrors.ErrUvxNotFound))
	assert.Contains(t, err.Error(), "https://docs.astral.sh/uv/")
}

func TestInstallPackageEmptyName(t *testing.T) {
	svc := NewService(newFakeBackend(), npm.NewClient(execx.NewFake(), npm.Tools{}))

	_, err := svc.InstallPackage(context.Background(), "", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerrors.ErrMissingName))
}

func TestInstallPackageBackendFailurePropagates(t *testing.T) {
	fake := execx.NewFake()
	backend := newFakeBackend()
	backend.failOn["widget"] = errors.New("registration refused")
	svc := NewService(backend, npm.NewClient(fake, npm.Tools{}))

	_, err := svc.InstallPackage(context.Background(), "widget", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registration refused")
}

func TestInstallLocalBinEntries(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{
		"name": "@acme/tools",
		"bin": {"alpha": "bin/alpha.js", "beta": "bin/beta.js"}
	}`)

	fake := execx.NewFake()
	backend := newFakeBackend()
	svc := NewService(backend, npm.NewClient(fake, npm.Tools{}))

	res, err := svc.InstallLocal(context.Background(), dir, []string{"--verbose"}, nil)
	require.NoError(t, err)

	require.Len(t, backend.installs, 2)
	assert.Equal(t, "alpha", backend.installs[0].Name)
	assert.Equal(t, "beta", backend.installs[1].Name)
	for _, got := range backend.installs {
		assert.Equal(t, "node", got.Command)
		require.Len(t, got.Args, 2)
		assert.True(t, filepath.IsAbs(got.Args[0]))
		assert.Equal(t, "--verbose", got.Args[1])
	}

	assert.Equal(t, []string{"alpha", "beta"}, res.Servers)

	// Dependencies were installed in the package directory first.
	require.NotEmpty(t, fake.Calls())
	first := fake.Calls()[0]
	assert.Equal(t, dir, first.Dir)
	assert.Equal(t, []string{"install"}, first.Args)
}

func TestInstallLocalMainFallback(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"name": "fetcher", "main": "index.js"}`)

	backend := newFakeBackend()
	svc := NewService(backend, npm.NewClient(execx.NewFake(), npm.Tools{}))

	res, err := svc.InstallLocal(context.Background(), dir, nil, nil)
	require.NoError(t, err)

	require.Len(t, backend.installs, 1)
	assert.Equal(t, "fetcher", backend.installs[0].Name)
	assert.Equal(t, filepath.Join(dir, "index.js"), backend.installs[0].Args[0])
	assert.Equal(t, []string{"fetcher"}, res.Servers)
}

func TestInstallLocalNothingToInstall(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"name": "empty-pkg"}`)

	backend := newFakeBackend()
	svc := NewService(backend, npm.NewClient(execx.NewFake(), npm.Tools{}))

	res, err := svc.InstallLocal(context.Background(), dir, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, backend.installs)
	assert.Contains(t, res.Message, "Nothing to install")
}

func TestInstallLocalMissingPath(t *testing.T) {
	svc := NewService(newFakeBackend(), npm.NewClient(execx.NewFake(), npm.Tools{}))

	missing := filepath.Join(t.TempDir(), "nope")
	_, err := svc.InstallLocal(context.Background(), missing, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerrors.ErrPathNotFound))
	assert.Contains(t, err.Error(), missing)
}

func TestInstallLocalMissingManifest(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(newFakeBackend(), npm.NewClient(execx.NewFake(), npm.Tools{}))

	_, err := svc.InstallLocal(context.Background(), dir, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerrors.ErrNoManifest))
	assert.Contains(t, err.Error(), dir)
}

func TestInstallLocalHaltsOnFirstFailure(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{
		"name": "@acme/tools",
		"bin": {"alpha": "a.js", "beta": "b.js", "gamma": "c.js"}
	}`)

	backend := newFakeBackend()
	backend.failOn["beta"] = errors.New("registration refused")
	svc := NewService(backend, npm.NewClient(execx.NewFake(), npm.Tools{}))

	_, err := svc.InstallLocal(context.Background(), dir, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"beta"`)
	assert.Contains(t, err.Error(), "already installed: alpha")

	// gamma never ran; alpha stays installed.
	require.Len(t, backend.installs, 1)
	assert.Equal(t, "alpha", backend.installs[0].Name)
}

func TestInstallLocalDependencyInstallFailure(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"name": "fetcher", "main": "index.js"}`)

	fake := execx.NewFake().Fail("npm install")
	backend := newFakeBackend()
	svc := NewService(backend, npm.NewClient(fake, npm.Tools{}))

	_, err := svc.InstallLocal(context.Background(), dir, nil, nil)
	require.Error(t, err)
	assert.Empty(t, backend.installs)
}
