package fs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/nerview"
	"github.com/fwojciec/nerview/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func slash(p string) string {
	return filepath.ToSlash(p)
}

func TestSource_FindDocuments(t *testing.T) {
	t.Parallel()

	t.Run("finds HTML files recursively in sorted order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		examples := filepath.Join(dir, "examples")
		samples := filepath.Join(dir, "sample_data")
		writeFile(t, filepath.Join(examples, "sub2", "c.html"), "<p>c</p>")
		writeFile(t, filepath.Join(examples, "sub1", "b.html"), "<p>b</p>")
		writeFile(t, filepath.Join(examples, "a.html"), "<p>a</p>")
		writeFile(t, filepath.Join(examples, "a_stats.json"), "{}")
		writeFile(t, filepath.Join(samples, "test1.html"), "<p>t</p>")

		paths, err := fs.NewSource(examples, samples).FindDocuments()

		require.NoError(t, err)
		assert.Equal(t, []string{
			slash(filepath.Join(examples, "a.html")),
			slash(filepath.Join(examples, "sub1", "b.html")),
			slash(filepath.Join(examples, "sub2", "c.html")),
			slash(filepath.Join(samples, "test1.html")),
		}, paths)
	})

	t.Run("skips missing roots", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "doc.html"), "<p/>")

		paths, err := fs.NewSource(filepath.Join(dir, "missing"), dir).FindDocuments()

		require.NoError(t, err)
		assert.Len(t, paths, 1)
	})

	t.Run("returns not found when there are no documents", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewSource(t.TempDir()).FindDocuments()

		assert.Equal(t, nerview.ENOTFOUND, nerview.ErrorCode(err))
	})

	t.Run("uses default roots", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"examples", "sample_data"}, fs.NewSource().Roots())
	})
}

func TestSource_LoadDocument(t *testing.T) {
	t.Parallel()

	t.Run("loads content and file info", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.html")
		writeFile(t, path, "<p>Beograd</p>")

		doc, err := fs.NewSource(dir).LoadDocument(slash(path))

		require.NoError(t, err)
		assert.Equal(t, "<p>Beograd</p>", doc.Content)
		assert.Equal(t, int64(14), doc.Size)
		assert.False(t, doc.ModTime.IsZero())
	})

	t.Run("rejects paths outside the roots", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "root", "doc.html"), "<p/>")
		outside := filepath.Join(dir, "secret.html")
		writeFile(t, outside, "<p/>")

		_, err := fs.NewSource(filepath.Join(dir, "root")).LoadDocument(slash(outside))

		assert.Equal(t, nerview.ENOTFOUND, nerview.ErrorCode(err))
	})

	t.Run("loads every listed document", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		examples := filepath.Join(dir, "examples")
		samples := filepath.Join(dir, "sample_data")
		writeFile(t, filepath.Join(examples, "sub", "deep", "a.html"), "<p>a</p>")
		writeFile(t, filepath.Join(examples, "b.html"), "<p>b</p>")
		writeFile(t, filepath.Join(samples, "c.html"), "<p>c</p>")
		src := fs.NewSource(examples, samples)

		paths, err := src.FindDocuments()
		require.NoError(t, err)
		require.Len(t, paths, 3)

		for _, path := range paths {
			doc, err := src.LoadDocument(path)
			require.NoError(t, err, path)
			assert.Equal(t, path, doc.Path)
		}
	})

	t.Run("rejects traversal out of the root", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "root", "doc.html"), "<p/>")
		writeFile(t, filepath.Join(dir, "secret.html"), "<p/>")

		_, err := fs.NewSource(filepath.Join(dir, "root")).LoadDocument(slash(filepath.Join(dir, "root")) + "/../secret.html")

		assert.Equal(t, nerview.ENOTFOUND, nerview.ErrorCode(err))
	})

	t.Run("rejects documents under symlinked directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		root := filepath.Join(dir, "root")
		writeFile(t, filepath.Join(root, "doc.html"), "<p/>")
		writeFile(t, filepath.Join(dir, "elsewhere", "secret.html"), "<p/>")
		require.NoError(t, os.Symlink(filepath.Join(dir, "elsewhere"), filepath.Join(root, "link")))
		src := fs.NewSource(root)

		paths, err := src.FindDocuments()
		require.NoError(t, err)
		assert.Equal(t, []string{slash(filepath.Join(root, "doc.html"))}, paths)

		_, err = src.LoadDocument(slash(filepath.Join(root, "link", "secret.html")))
		assert.Equal(t, nerview.ENOTFOUND, nerview.ErrorCode(err))
	})

	t.Run("rejects missing documents", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "doc.html"), "<p/>")

		_, err := fs.NewSource(dir).LoadDocument(slash(filepath.Join(dir, "gone.html")))

		assert.Equal(t, nerview.ENOTFOUND, nerview.ErrorCode(err))
	})

	t.Run("rejects non-HTML paths", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "doc.html"), "<p/>")

		_, err := fs.NewSource(dir).LoadDocument(slash(filepath.Join(dir, "doc_stats.json")))

		assert.Equal(t, nerview.EINVALID, nerview.ErrorCode(err))
	})
}

func TestSource_LoadStats(t *testing.T) {
	t.Parallel()

	t.Run("returns sidecar verbatim", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.html")
		writeFile(t, path, "<p/>")
		writeFile(t, filepath.Join(dir, "doc_stats.json"), `{"tokens": 120, "entities": 7}`)

		stats, err := fs.NewSource(dir).LoadStats(slash(path))

		require.NoError(t, err)
		assert.JSONEq(t, `{"tokens": 120, "entities": 7}`, string(stats))
	})

	t.Run("returns not found without sidecar", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.html")
		writeFile(t, path, "<p/>")

		_, err := fs.NewSource(dir).LoadStats(slash(path))

		assert.Equal(t, nerview.ENOTFOUND, nerview.ErrorCode(err))
		assert.Equal(t, "No statistics file found", nerview.ErrorMessage(err))
	})

	t.Run("returns invalid for malformed sidecar", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.html")
		writeFile(t, path, "<p/>")
		writeFile(t, filepath.Join(dir, "doc_stats.json"), `{"tokens":`)

		_, err := fs.NewSource(dir).LoadStats(slash(path))

		assert.Equal(t, nerview.EINVALID, nerview.ErrorCode(err))
	})
}

func TestStatsPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "examples/sub/doc_stats.json", fs.StatsPath("examples/sub/doc.html"))
	assert.Equal(t, "examples/doc.html.bak_stats.json", fs.StatsPath("examples/doc.html.bak"))
}

func BenchmarkSource_LoadDocument(b *testing.B) {
	dir := b.TempDir()
	for i := range 500 {
		path := filepath.Join(dir, fmt.Sprintf("sub%02d", i%20), fmt.Sprintf("doc%03d.html", i))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			b.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("<p/>"), 0o644); err != nil {
			b.Fatal(err)
		}
	}
	src := fs.NewSource(dir)
	paths, err := src.FindDocuments()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := src.LoadDocument(paths[i%len(paths)]); err != nil {
			b.Fatal(err)
		}
	}
}
