package app_test

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cxxgraph/internal/adapters/cachefile"
	"go.trai.ch/cxxgraph/internal/adapters/config"
	"go.trai.ch/cxxgraph/internal/adapters/fs"
	"go.trai.ch/cxxgraph/internal/adapters/pool"
	"go.trai.ch/cxxgraph/internal/adapters/telemetry"
	"go.trai.ch/cxxgraph/internal/app"
	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/cxxgraph/internal/core/ports"
	"go.trai.ch/cxxgraph/internal/core/ports/mocks"
	"go.trai.ch/cxxgraph/internal/engine/buildgraph"
	"go.trai.ch/cxxgraph/internal/engine/codescan"
	"go.trai.ch/cxxgraph/internal/engine/scanner"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app      *app.App
	logger   *mocks.MockLogger
	watcher  *mocks.MockWatcher
	settings ports.SettingsLoader
	store    ports.CacheStore
}

type option func(*fixture)

func withSettings(l ports.SettingsLoader) option { return func(f *fixture) { f.settings = l } }
func withStore(s ports.CacheStore) option        { return func(f *fixture) { f.store = s } }

func newFixture(t *testing.T, ctrl *gomock.Controller, opts ...option) *fixture {
	t.Helper()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	fsys := fs.NewOSFS()
	f := &fixture{
		logger:   log,
		watcher:  mocks.NewMockWatcher(ctrl),
		settings: config.NewLoader(fsys, log),
		store:    cachefile.NewStore(fsys, log),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.app = app.New(
		f.settings,
		f.store,
		fsys,
		scanner.New(fsys, fs.NewWalker(), fs.NewHasher(), pool.New(2)),
		codescan.New(),
		buildgraph.New(),
		f.watcher,
		telemetry.NewNoOpRecorder(),
		log,
	)
	return f
}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func moduleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "app/main.cpp", "import m;\n#include <vector>\nint main() {}\n")
	writeFile(t, root, "m/m.cppm", "export module m;\n")
	return root
}

func TestApp_Scan(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl)
	root := moduleTree(t)

	rep, err := f.app.Scan(context.Background(), root, app.Options{})
	require.NoError(t, err)

	assert.Equal(t, root, rep.Root)
	assert.Equal(t, 2, rep.Scan.Files)
	assert.Equal(t, 2, rep.Scan.Tokenized)
	assert.Equal(t, 0, rep.Unresolved)
	assert.Empty(t, rep.Warnings)
	assert.Equal(t, 4, rep.Graph.Len())
	assert.FileExists(t, domain.DefaultCachePath(root))

	again, err := f.app.Scan(context.Background(), root, app.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Scan.Tokenized)
	assert.Equal(t, 2, again.Scan.Skipped)
	assert.Equal(t, 4, again.Graph.Len())

	main, ok := again.Cache.SourceIndex().Lookup(filepath.Join(root, "app", "main.cpp"))
	require.True(t, ok)
	require.Len(t, main.Dependencies, 2)
	assert.Same(t, again.Cache.CppModule("m"), main.Dependencies[0].(*domain.ImportModuleDependency).Module)
}

func TestApp_Scan_ReportsWarnings(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl)
	root := t.TempDir()
	hdr := writeFile(t, root, "lib/lib.hpp", "export module lib;\n")

	f.logger.EXPECT().Warn("CodeScanner: Declaring modules in headers is unsupported (" + hdr + ")")

	rep, err := f.app.Scan(context.Background(), root, app.Options{})
	require.NoError(t, err)
	assert.Len(t, rep.Warnings, 1)
}

func TestApp_Scan_SettingsOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl)
	root := t.TempDir()
	writeFile(t, root, "tools/gen.cpp", "")
	writeFile(t, root, "lib/lib.cpp", "")
	writeFile(t, root, "custom.yaml", strings.Join([]string{
		"ignoreDirectories: [tools]",
		"toolchains:",
		"  - name: gcc13",
		"    frontend: gcc",
		"    cppCompiler: /usr/bin/g++-13",
		"configurations:",
		"  - name: release",
		"    toolchain: gcc13",
		"",
	}, "\n"))

	rep, err := f.app.Scan(context.Background(), root, app.Options{
		ConfigPath: filepath.Join(root, "custom.yaml"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Scan.Files)
	require.Len(t, rep.Cache.Configurations(), 1)
	assert.Equal(t, "gcc13", rep.Cache.Configurations()[0].Toolchain.Name)
}

func TestApp_Scan_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(ctrl *gomock.Controller) []option
		root    func(t *testing.T) string
		wantErr error
	}{
		{
			name: "settings cannot be parsed",
			setup: func(ctrl *gomock.Controller) []option {
				l := mocks.NewMockSettingsLoader(ctrl)
				l.EXPECT().Load(gomock.Any()).Return(nil, zerr.Wrap(domain.ErrSettingsParseFailed, "bad yaml"))
				return []option{withSettings(l)}
			},
			root:    func(t *testing.T) string { return t.TempDir() },
			wantErr: domain.ErrSettingsParseFailed,
		},
		{
			name: "configuration names an unknown toolchain",
			setup: func(ctrl *gomock.Controller) []option {
				l := mocks.NewMockSettingsLoader(ctrl)
				l.EXPECT().Load(gomock.Any()).Return(&domain.Config{
					Settings:       domain.DefaultSettings(),
					Configurations: []domain.ConfigurationRef{{Name: "debug", Toolchain: "missing"}},
				}, nil)
				return []option{withSettings(l)}
			},
			root:    func(t *testing.T) string { return t.TempDir() },
			wantErr: domain.ErrToolchainNotFound,
		},
		{
			name: "cache cannot be read",
			setup: func(ctrl *gomock.Controller) []option {
				s := mocks.NewMockCacheStore(ctrl)
				s.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, zerr.Wrap(domain.ErrCacheReadFailed, "denied"))
				return []option{withStore(s)}
			},
			root:    func(t *testing.T) string { return t.TempDir() },
			wantErr: domain.ErrCacheReadFailed,
		},
		{
			name:    "root does not exist",
			setup:   func(*gomock.Controller) []option { return nil },
			root:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing") },
			wantErr: domain.ErrScanRootNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newFixture(t, ctrl, tt.setup(ctrl)...)

			_, err := f.app.Scan(context.Background(), tt.root(t), app.Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApp_Scan_DiscardsUnreadableCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCacheStore(ctrl)
	f := newFixture(t, ctrl, withStore(store))
	root := moduleTree(t)

	store.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, zerr.Wrap(domain.ErrCacheParseFailed, "bad yaml"))
	store.EXPECT().Save(domain.DefaultCachePath(root), gomock.Any()).Return(nil)
	f.logger.EXPECT().Warn(gomock.Any())

	rep, err := f.app.Scan(context.Background(), root, app.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Scan.Tokenized)
}

func TestApp_Scan_SaveFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCacheStore(ctrl)
	f := newFixture(t, ctrl, withStore(store))
	root := moduleTree(t)

	store.EXPECT().Load(gomock.Any(), gomock.Any()).DoAndReturn(func(_ string, s domain.Settings) (*domain.Cache, error) {
		return domain.NewCache(s), nil
	})
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(zerr.Wrap(domain.ErrCacheWriteFailed, "disk full"))
	f.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.True(t, strings.HasPrefix(msg, "cache not saved: "), msg)
	})

	_, err := f.app.Scan(context.Background(), root, app.Options{})
	require.NoError(t, err)
}

func TestApp_Graph(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl)
	root := moduleTree(t)

	var buf bytes.Buffer
	require.NoError(t, f.app.WithOutput(&buf).Graph(context.Background(), root, app.Options{}))

	want := strings.Join([]string{
		"● compile-interface m/m.cppm",
		"● compile app/main.cpp",
		"  → compile-interface m/m.cppm",
		"● link-module m",
		"  → compile-interface m/m.cppm",
		"● link-executable app",
		"  → compile app/main.cpp",
		"  → link-module m",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestApp_Watch_RescansOnChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl)
	root := moduleTree(t)
	extra := filepath.Join(root, "lib", "extra.cpp")

	f.watcher.EXPECT().Start(gomock.Any(), root, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, opts ports.WatchOptions) error {
			assert.True(t, opts.Prune("build"))
			assert.True(t, opts.Prune(".git"))
			assert.False(t, opts.Prune("lib"))
			assert.True(t, opts.Relevant(extra))
			assert.True(t, opts.Relevant(filepath.Join(root, "lib", "extra.hpp")))
			assert.True(t, opts.Relevant(filepath.Join(root, domain.SettingsFileName)))
			assert.False(t, opts.Relevant(filepath.Join(root, "notes.txt")))
			return nil
		})
	f.watcher.EXPECT().Events().Return(iter.Seq[[]ports.Change](func(yield func([]ports.Change) bool) {
		writeFile(t, root, "lib/extra.cpp", "")
		yield([]ports.Change{{Path: extra, Op: ports.ChangeCreated}})
	}))
	f.watcher.EXPECT().Stop().Return(nil)

	require.NoError(t, f.app.Watch(context.Background(), root, app.Options{}))

	cache, err := cachefile.NewStore(fs.NewOSFS(), f.logger).Load(domain.DefaultCachePath(root), domain.DefaultSettings())
	require.NoError(t, err)
	_, ok := cache.SourceIndex().Lookup(extra)
	assert.True(t, ok)
}

func TestApp_Watch_FailedRescanIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl)
	root := moduleTree(t)

	f.watcher.EXPECT().Start(gomock.Any(), root, gomock.Any()).Return(nil)
	f.watcher.EXPECT().Events().Return(iter.Seq[[]ports.Change](func(yield func([]ports.Change) bool) {
		writeFile(t, root, domain.SettingsFileName, "workers: [not, a, number]\n")
		yield([]ports.Change{{Path: filepath.Join(root, domain.SettingsFileName), Op: ports.ChangeModified}})
	}))
	f.watcher.EXPECT().Stop().Return(nil)
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrSettingsParseFailed)
	})

	require.NoError(t, f.app.Watch(context.Background(), root, app.Options{}))
}

func TestApp_Watch_StartFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl)
	root := moduleTree(t)

	f.watcher.EXPECT().Start(gomock.Any(), root, gomock.Any()).Return(errors.New("too many open files"))

	err := f.app.Watch(context.Background(), root, app.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start watcher")
}

func TestApp_Clean(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t, ctrl)
	root := moduleTree(t)

	_, err := f.app.Scan(context.Background(), root, app.Options{})
	require.NoError(t, err)
	require.DirExists(t, domain.DefaultMetaPath(root))

	require.NoError(t, f.app.Clean(context.Background(), root))
	assert.NoDirExists(t, domain.DefaultMetaPath(root))
	assert.FileExists(t, filepath.Join(root, "app", "main.cpp"))
}
