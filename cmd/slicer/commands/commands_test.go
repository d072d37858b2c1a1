package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/slicer/cmd/slicer/commands"
	"go.trai.ch/slicer/internal/app"
	"go.trai.ch/slicer/internal/build"
	"go.trai.ch/slicer/internal/core/domain"
)

type mockApp struct {
	useCacheDirFunc func(dir string) error
	cacheRootFunc   func(ctx context.Context) (string, error)
	resolveFunc     func(ctx context.Context, args []string, opts app.ResolveOptions) ([]app.Resolution, error)
	rootOfFunc      func(ctx context.Context, sliceDir string) (string, error)
	rootsFunc       func(ctx context.Context, prefix string) ([]string, error)
	rootsUnderFunc  func(ctx context.Context, dir string) ([]string, error)
	listFunc        func(ctx context.Context) ([]domain.Segment, error)
}

func (m *mockApp) UseCacheDir(dir string) error {
	if m.useCacheDirFunc != nil {
		return m.useCacheDirFunc(dir)
	}
	return nil
}

func (m *mockApp) CacheRoot(ctx context.Context) (string, error) {
	if m.cacheRootFunc != nil {
		return m.cacheRootFunc(ctx)
	}
	return "", nil
}

func (m *mockApp) Resolve(ctx context.Context, args []string, opts app.ResolveOptions) ([]app.Resolution, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, args, opts)
	}
	return nil, nil
}

func (m *mockApp) RootOf(ctx context.Context, sliceDir string) (string, error) {
	if m.rootOfFunc != nil {
		return m.rootOfFunc(ctx, sliceDir)
	}
	return "", nil
}

func (m *mockApp) Roots(ctx context.Context, prefix string) ([]string, error) {
	if m.rootsFunc != nil {
		return m.rootsFunc(ctx, prefix)
	}
	return nil, nil
}

func (m *mockApp) RootsUnder(ctx context.Context, dir string) ([]string, error) {
	if m.rootsUnderFunc != nil {
		return m.rootsUnderFunc(ctx, dir)
	}
	return nil, nil
}

func (m *mockApp) List(ctx context.Context) ([]domain.Segment, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	out := new(bytes.Buffer)
	cli.SetArgs(args)
	cli.SetOutput(out, new(bytes.Buffer))
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Resolve(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.ResolveOptions
		var capturedArgs []string

		mock := &mockApp{
			resolveFunc: func(_ context.Context, args []string, opts app.ResolveOptions) ([]app.Resolution, error) {
				capturedArgs = args
				capturedOpts = opts
				return nil, nil
			},
		}

		_, err := execute(t, mock, "resolve", "--only-existing", "--path", "src", "lib")
		require.NoError(t, err)
		assert.True(t, capturedOpts.OnlyExisting)
		assert.True(t, capturedOpts.Paths)
		assert.Equal(t, []string{"src", "lib"}, capturedArgs)
	})

	t.Run("prints found slices only", func(t *testing.T) {
		mock := &mockApp{
			resolveFunc: func(_ context.Context, _ []string, _ app.ResolveOptions) ([]app.Resolution, error) {
				return []app.Resolution{
					{RootKey: "file:/a/", Slice: domain.Slice{ID: "s1", Dir: "/cache/s1"}, Found: true},
					{RootKey: "file:/b/"},
					{RootKey: "file:/c/", Slice: domain.Slice{ID: "s3", Dir: "/cache/s3"}, Found: true},
				}, nil
			},
		}

		out, err := execute(t, mock, "resolve", "file:/a/", "file:/b/", "file:/c/")
		require.NoError(t, err)
		assert.Equal(t, "s1\t/cache/s1\ns3\t/cache/s3\n", out)
	})

	t.Run("requires an argument", func(t *testing.T) {
		mock := &mockApp{
			resolveFunc: func(_ context.Context, _ []string, _ app.ResolveOptions) ([]app.Resolution, error) {
				panic("should not be called")
			},
		}

		_, err := execute(t, mock, "resolve")
		require.Error(t, err)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mock := &mockApp{
			resolveFunc: func(_ context.Context, _ []string, _ app.ResolveOptions) ([]app.Resolution, error) {
				return nil, errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "resolve", "file:/a/")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_CacheDirFlag(t *testing.T) {
	t.Run("applies the override before the command", func(t *testing.T) {
		var order []string
		mock := &mockApp{
			useCacheDirFunc: func(dir string) error {
				order = append(order, "use:"+dir)
				return nil
			},
			listFunc: func(_ context.Context) ([]domain.Segment, error) {
				order = append(order, "list")
				return nil, nil
			},
		}

		_, err := execute(t, mock, "--cache-dir", "/tmp/cache", "list")
		require.NoError(t, err)
		assert.Equal(t, []string{"use:/tmp/cache", "list"}, order)
	})

	t.Run("is skipped when unset", func(t *testing.T) {
		mock := &mockApp{
			useCacheDirFunc: func(_ string) error {
				panic("should not be called")
			},
		}

		_, err := execute(t, mock, "list")
		require.NoError(t, err)
	})

	t.Run("stops on an invalid directory", func(t *testing.T) {
		mock := &mockApp{
			useCacheDirFunc: func(_ string) error {
				return domain.ErrCacheRootInvalid
			},
			listFunc: func(_ context.Context) ([]domain.Segment, error) {
				panic("should not be called")
			},
		}

		_, err := execute(t, mock, "--cache-dir", "/nope", "list")
		require.ErrorIs(t, err, domain.ErrCacheRootInvalid)
	})
}

func TestCommands_RootOf(t *testing.T) {
	mock := &mockApp{
		rootOfFunc: func(_ context.Context, sliceDir string) (string, error) {
			assert.Equal(t, "/cache/s2", sliceDir)
			return "file:/a/b/", nil
		},
	}

	out, err := execute(t, mock, "root-of", "/cache/s2")
	require.NoError(t, err)
	assert.Equal(t, "file:/a/b/\n", out)
}

func TestCommands_Roots(t *testing.T) {
	mock := &mockApp{
		rootsFunc: func(_ context.Context, prefix string) ([]string, error) {
			assert.Equal(t, "file:/a/", prefix)
			return []string{"file:/a/b/", "file:/a/c/"}, nil
		},
	}

	out, err := execute(t, mock, "roots", "file:/a/")
	require.NoError(t, err)
	assert.Equal(t, "file:/a/b/\nfile:/a/c/\n", out)
}

func TestCommands_RootsUnder(t *testing.T) {
	mock := &mockApp{
		rootsUnderFunc: func(_ context.Context, dir string) ([]string, error) {
			assert.Equal(t, "/src", dir)
			return []string{"/src/app", "/src/lib"}, nil
		},
	}

	out, err := execute(t, mock, "roots-under", "/src")
	require.NoError(t, err)
	assert.Equal(t, "/src/app\n/src/lib\n", out)
}

func TestCommands_List(t *testing.T) {
	mock := &mockApp{
		listFunc: func(_ context.Context) ([]domain.Segment, error) {
			return []domain.Segment{
				{SliceID: "s1", RootKey: "file:/a/b/"},
				{SliceID: "s10", RootKey: "file:/c/"},
			}, nil
		},
	}

	out, err := execute(t, mock, "list")
	require.NoError(t, err)
	assert.Equal(t, "s1=file:/a/b/\ns10=file:/c/\n", out)
}

func TestCommands_CacheRoot(t *testing.T) {
	mock := &mockApp{
		cacheRootFunc: func(_ context.Context) (string, error) {
			return "/home/user/.cache/slicer/index", nil
		},
	}

	out, err := execute(t, mock, "cache-root")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.cache/slicer/index\n", out)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "slicer version "+build.Version)
	assert.Contains(t, out, "commit: "+build.Commit)
}

func TestCommands_VersionShort(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, build.Version+"\n", out)
}
