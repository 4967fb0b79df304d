package commands_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cxxgraph/cmd/cxxgraph/commands"
	"go.trai.ch/cxxgraph/internal/app"
	"go.trai.ch/cxxgraph/internal/build"
	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/cxxgraph/internal/engine/scanner"
)

type call struct {
	method string
	root   string
	opts   app.Options
}

type mockApp struct {
	calls []call
	err   error
}

func (m *mockApp) Scan(_ context.Context, root string, opts app.Options) (*app.Report, error) {
	m.calls = append(m.calls, call{method: "scan", root: root, opts: opts})
	if m.err != nil {
		return nil, m.err
	}
	cache := domain.NewCache(domain.DefaultSettings())
	return &app.Report{
		Root:       root,
		Scan:       scanner.Result{Files: 3},
		Unresolved: 1,
		Cache:      cache,
		Graph:      domain.NewTaskGraph(),
	}, nil
}

func (m *mockApp) Graph(_ context.Context, root string, opts app.Options) error {
	m.calls = append(m.calls, call{method: "graph", root: root, opts: opts})
	return m.err
}

func (m *mockApp) Watch(_ context.Context, root string, opts app.Options) error {
	m.calls = append(m.calls, call{method: "watch", root: root, opts: opts})
	return m.err
}

func (m *mockApp) Clean(_ context.Context, root string) error {
	m.calls = append(m.calls, call{method: "clean", root: root})
	return m.err
}

func execute(t *testing.T, cli *commands.CLI, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	cli.SetArgs(args)
	cli.SetOutput(out, out)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Dispatch(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want call
	}{
		{
			name: "scan defaults to working directory",
			args: []string{"scan"},
			want: call{method: "scan", root: "."},
		},
		{
			name: "scan with flags",
			args: []string{"scan", "src", "--config", "alt.yaml", "--cache", "c.yaml"},
			want: call{method: "scan", root: "src", opts: app.Options{ConfigPath: "alt.yaml", CachePath: "c.yaml"}},
		},
		{
			name: "graph",
			args: []string{"-c", "alt.yaml", "graph", "src"},
			want: call{method: "graph", root: "src", opts: app.Options{ConfigPath: "alt.yaml"}},
		},
		{
			name: "watch",
			args: []string{"watch", "src"},
			want: call{method: "watch", root: "src"},
		},
		{
			name: "clean",
			args: []string{"clean", "src"},
			want: call{method: "clean", root: "src"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockApp{}
			_, err := execute(t, commands.New(mock), tt.args...)
			require.NoError(t, err)
			require.Len(t, mock.calls, 1)
			assert.Equal(t, tt.want, mock.calls[0])
		})
	}
}

func TestCommands_ScanSummary(t *testing.T) {
	out, err := execute(t, commands.New(&mockApp{}), "scan")
	require.NoError(t, err)
	assert.Equal(t, "3 files, 0 projects, 0 modules, 0 tasks, 1 unresolved dependencies, 0 warnings\n", out)
}

func TestCommands_Errors(t *testing.T) {
	mock := &mockApp{err: errors.New("simulated error")}
	for _, name := range []string{"scan", "graph", "watch", "clean"} {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, commands.New(mock), name)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "simulated error")
		})
	}
}

func TestCommands_RejectsExtraArgs(t *testing.T) {
	mock := &mockApp{}
	_, err := execute(t, commands.New(mock), "graph", "a", "b")
	require.Error(t, err)
	assert.Empty(t, mock.calls)
}

func TestCommands_LoggingFlags(t *testing.T) {
	var got []app.LoggingOptions
	cli := commands.New(&mockApp{}, commands.WithLoggingConfigurer(func(o app.LoggingOptions) {
		got = append(got, o)
	}))

	_, err := execute(t, cli, "clean", "--json", "-v")
	require.NoError(t, err)
	assert.Equal(t, []app.LoggingOptions{{JSON: true, Verbose: true}}, got)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, commands.New(&mockApp{}), "version")
	require.NoError(t, err)
	assert.Equal(t, "cxxgraph version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)

	out, err = execute(t, commands.New(&mockApp{}), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "version "+build.Version)
}

func TestCommands_VerboseShorthandDoesNotClashWithVersion(t *testing.T) {
	tests := [][]string{
		{"--help"},
		{"-v", "version"},
		{"scan", "-v"},
		{"--version"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			var out string
			var err error
			require.NotPanics(t, func() {
				out, err = execute(t, commands.New(&mockApp{}), args...)
			})
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}
}

func TestCommands_HelpListsFlags(t *testing.T) {
	out, err := execute(t, commands.New(&mockApp{}), "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "-v, --verbose")
	assert.Contains(t, out, "--version")
	assert.NotContains(t, out, "-v, --version")
}
