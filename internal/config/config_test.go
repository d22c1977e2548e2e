// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/matt-FFFFFF/filescript/internal/interpreter"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	stubs := gostub.Stub(&FsFactory, func() afero.Fs {
		return fs
	})
	t.Cleanup(stubs.Reset)

	return fs
}

func TestLoad(t *testing.T) {
	want := &Config{
		CommentPrefix: "//",
		Reopen:        "reuse",
		CopyOverwrite: true,
		FailFast:      true,
		Prompt:        "> ",
		HistoryFile:   "/tmp/history",
		WorkingDir:    "/data",
	}

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "cfg.yaml",
			content: `
comment_prefix: "//"
reopen: reuse
copy_overwrite: true
fail_fast: true
prompt: "> "
history_file: /tmp/history
working_dir: /data
`,
		},
		{
			name: "cfg.toml",
			content: `
comment_prefix = "//"
reopen = "reuse"
copy_overwrite = true
fail_fast = true
prompt = "> "
history_file = "/tmp/history"
working_dir = "/data"
`,
		},
		{
			name: "cfg.hcl",
			content: `
comment_prefix = "//"
reopen         = "reuse"
copy_overwrite = true
fail_fast      = true
prompt         = "> "
history_file   = "/tmp/history"
working_dir    = "/data"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubFs(t, map[string]string{"/conf/" + tt.name: tt.content})

			got, err := Load("/conf/" + tt.name)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	for _, name := range []string{"a.yml", "a.toml", "a.hcl"} {
		t.Run(name, func(t *testing.T) {
			content := map[string]string{
				"a.yml":  "fail_fast: true\n",
				"a.toml": "fail_fast = true\n",
				"a.hcl":  "fail_fast = true\n",
			}[name]
			stubFs(t, map[string]string{"/" + name: content})

			got, err := Load("/" + name)
			require.NoError(t, err)

			want := Default()
			want.FailFast = true
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"bad.yaml", "fail_fast: [", ErrDecodeConfig},
		{"unknown.yaml", "colour: true\n", ErrDecodeConfig},
		{"unknown.toml", "colour = true\n", ErrDecodeConfig},
		{"unknown.hcl", "colour = true\n", ErrDecodeConfig},
		{"bad.hcl", "fail_fast = \n", ErrDecodeConfig},
		{"cfg.json", "{}", ErrUnsupportedFormat},
		{"reopen.yaml", "reopen: share\n", ErrInvalidConfig},
		{"prefix.toml", "comment_prefix = \"; \"\n", ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubFs(t, map[string]string{"/" + tt.name: tt.content})

			_, err := Load("/" + tt.name)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("missing", func(t *testing.T) {
		stubFs(t, nil)

		_, err := Load("/nope.yaml")
		assert.ErrorIs(t, err, ErrReadConfig)
	})
}

func TestDiscoverAndResolve(t *testing.T) {
	stubFs(t, map[string]string{
		"/both/.filescript.toml": "fail_fast = true\n",
		"/both/.filescript.hcl":  "fail_fast = false\n",
		"/explicit/custom.yaml":  "prompt: \"$ \"\n",
	})

	p, ok := Discover("/both")
	require.True(t, ok)
	assert.Equal(t, "/both/.filescript.toml", p, "toml is looked up before hcl")

	_, ok = Discover("/empty")
	assert.False(t, ok)

	c, used, err := Resolve("", "/both")
	require.NoError(t, err)
	assert.Equal(t, "/both/.filescript.toml", used)
	assert.True(t, c.FailFast)

	c, used, err = Resolve("/explicit/custom.yaml", "/both")
	require.NoError(t, err)
	assert.Equal(t, "/explicit/custom.yaml", used)
	assert.Equal(t, "$ ", c.Prompt)
	assert.False(t, c.FailFast)

	c, used, err = Resolve("", "/empty")
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, Default(), c)
}

func TestInterpreterOptions(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/a.txt", []byte("a"), 0o644))

	c := Default()
	c.Reopen = "reuse"
	c.CommentPrefix = "--"

	i, err := interpreter.New(fs, "/work", c.InterpreterOptions()...)
	require.NoError(t, err)

	t.Cleanup(func() { _ = i.Close() })

	res := i.ExecLine(t.Context(), 1, "open a.txt as f -- comment; open a.txt as g")
	require.NoError(t, res.Errors())
	require.Len(t, res, 1, "the comment hides the second statement")

	res = i.ExecLine(t.Context(), 2, "open a.txt as g")
	require.NoError(t, res.Errors(), "reuse moves the handle instead of failing")
	assert.Equal(t, []string{"g"}, i.Session().Names())
}

func TestHistoryPath(t *testing.T) {
	c := Default()
	c.HistoryFile = "/h"
	assert.Equal(t, "/h", c.HistoryPath())

	t.Setenv("HOME", "/home/someone")

	c.HistoryFile = ""
	assert.Equal(t, "/home/someone/.filescript_history", c.HistoryPath())
}
