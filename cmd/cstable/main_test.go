package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

const testSchema = `fields:
  - id: 1
    name: id
    type: uint
  - id: 2
    name: tags
    type: string
    repeated: true
  - id: 3
    name: owner
    type: object
    optional: true
    fields:
      - id: 4
        name: name
        type: string
      - id: 5
        name: since
        type: datetime
        optional: true
`

const testRecords = `{"id": 1, "tags": ["a", "b"], "owner": {"name": "ann", "since": 1600000000000000}}
{"id": 2}

{"id": 3, "tags": ["c"], "owner": {"name": "bob"}}
{"id": 4, "tags": []}
`

func run(t *testing.T, args ...string) string {
	t.Helper()

	out := &bytes.Buffer{}

	root := newApp().rootCommand()
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	root.SetOut(out)
	root.SetErr(out)

	require.NoError(t, root.Execute(), out.String())

	return out.String()
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()

	schemaFile := filepath.Join(dir, "schema.yaml")
	recordsFile := filepath.Join(dir, "records.jsonl")
	table := filepath.Join(dir, "table.cst")

	require.NoError(t, os.WriteFile(schemaFile, []byte(testSchema), 0o600))
	require.NoError(t, os.WriteFile(recordsFile, []byte(testRecords), 0o600))

	run(t, "load", "--schema", schemaFile, "--codec", "zstd", recordsFile, table)

	t.Run("inspect", func(t *testing.T) {
		out := run(t, "inspect", "--pages", table)

		assert.Contains(t, out, "rows:    4")
		assert.Contains(t, out, "codec:   zstd")
		assert.Contains(t, out, "owner.since")
		assert.Contains(t, out, "KIND")
	})

	t.Run("dump", func(t *testing.T) {
		got := lines(run(t, "dump", table))
		require.Len(t, got, 4)

		assert.JSONEq(t, `{"id": 1, "tags": ["a", "b"], "owner": {"name": "ann", "since": 1600000000000000}}`, got[0])
		assert.JSONEq(t, `{"id": 2}`, got[1])
		assert.JSONEq(t, `{"id": 3, "tags": ["c"], "owner": {"name": "bob"}}`, got[2])
		assert.JSONEq(t, `{"id": 4}`, got[3])
	})

	t.Run("dump projection", func(t *testing.T) {
		got := lines(run(t, "dump", "--columns", "owner.name", "--limit", "1", table))
		require.Len(t, got, 1)

		assert.JSONEq(t, `{"owner": {"name": "ann"}}`, got[0])
	})

	t.Run("dump schema", func(t *testing.T) {
		assert.Contains(t, run(t, "dump", "--schema", table), "name: owner")
	})

	t.Run("compact", func(t *testing.T) {
		target := filepath.Join(dir, "compacted.cst")
		run(t, "compact", "--from", "1", "--every", "2", table, target)

		got := lines(run(t, "dump", target))
		require.Len(t, got, 2)

		assert.JSONEq(t, `{"id": 2}`, got[0])
		assert.JSONEq(t, `{"id": 4}`, got[1])
	})

	t.Run("publish", func(t *testing.T) {
		target := filepath.Join(dir, "published.cst")
		run(t, "publish", table, "file://"+target)

		expected, err := os.ReadFile(table)
		require.NoError(t, err)

		actual, err := os.ReadFile(target)
		require.NoError(t, err)

		assert.Equal(t, expected, actual)
	})

	t.Run("version", func(t *testing.T) {
		assert.Contains(t, run(t, "version"), "format version 1")
	})
}

func TestLoad_InvalidRecord(t *testing.T) {
	dir := t.TempDir()

	schemaFile := filepath.Join(dir, "schema.yaml")
	recordsFile := filepath.Join(dir, "records.jsonl")

	require.NoError(t, os.WriteFile(schemaFile, []byte(testSchema), 0o600))
	require.NoError(t, os.WriteFile(recordsFile, []byte(`{"id": 1, "color": "red"}`), 0o600))

	root := newApp().rootCommand()
	root.SetArgs([]string{"--log-level", "error", "load", "--schema", schemaFile, recordsFile, filepath.Join(dir, "t.cst")})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	assert.Error(t, root.Execute())
}

func TestParseLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		expected *location
		err      error
	}{
		{raw: "data/table.cst", expected: &location{scheme: "file", path: "data/table.cst", raw: "data/table.cst"}},
		{raw: "file:///tmp/t.cst", expected: &location{scheme: "file", path: "/tmp/t.cst", raw: "file:///tmp/t.cst"}},
		{raw: "s3://bucket/dir/t.cst", expected: &location{scheme: "s3", host: "bucket", path: "dir/t.cst", raw: "s3://bucket/dir/t.cst"}},
		{raw: "gs://bucket/t.cst", expected: &location{scheme: "gs", host: "bucket", path: "t.cst", raw: "gs://bucket/t.cst"}},
		{raw: "azblob://account/container/t.cst", expected: &location{scheme: "azblob", host: "account", path: "container/t.cst", raw: "azblob://account/container/t.cst"}},
		{raw: "hdfs://namenode:8020/tables/t.cst", expected: &location{scheme: "hdfs", host: "namenode:8020", path: "/tables/t.cst", raw: "hdfs://namenode:8020/tables/t.cst"}},
		{raw: "https://example.com/t.cst", expected: &location{scheme: "https", host: "example.com", path: "t.cst", raw: "https://example.com/t.cst"}},
		{raw: "", err: errInvalidLocation},
		{raw: "s3://bucket", err: errInvalidLocation},
		{raw: "ftp://host/t.cst", err: errUnsupportedScheme},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			loc, err := parseLocation(tt.raw)
			if tt.err != nil {
				assert.Equal(t, tt.err, errors.Cause(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, loc)
		})
	}
}

func TestLocation_BlobURL(t *testing.T) {
	t.Parallel()

	loc, err := parseLocation("azblob://account/container/t.cst")
	require.NoError(t, err)

	assert.Equal(t, "https://account.blob.core.windows.net/container/t.cst", loc.blobURL())
}

func TestStorage_ReadOnlyScheme(t *testing.T) {
	t.Parallel()

	s := newApp().storage

	_, err := s.openWriter(context.Background(), "https://example.com/t.cst")
	assert.Equal(t, errReadOnlyScheme, errors.Cause(err))
}

func TestRootCommand_BindsPersistentFlags(t *testing.T) {
	a := newApp()

	root := a.rootCommand()
	root.SetArgs([]string{"--log-level", "error", "--log-format", "console", "version"})
	root.SetOut(&bytes.Buffer{})

	require.NoError(t, root.Execute())

	assert.Equal(t, "error", a.conf.GetString("log-level"))
	assert.Equal(t, "console", a.conf.GetString("log-format"))
	assert.Equal(t, "", a.conf.GetString("metrics-addr"))
}
