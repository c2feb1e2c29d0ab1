package scanner

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testHost = "https://author.example.com"

type testEntry struct {
	name    string
	body    string
	corrupt bool
}

func entries(names ...string) []testEntry {
	out := make([]testEntry, len(names))
	for i, n := range names {
		out[i] = testEntry{name: n, body: "<jcr:root/>"}
	}
	return out
}

// buildArchive writes entries in order. Corrupt entries are stored with a
// wrong CRC so reading them fails with zip.ErrChecksum.
func buildArchive(t *testing.T, items ...testEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, item := range items {
		if item.corrupt {
			fh := &zip.FileHeader{
				Name:               item.name,
				Method:             zip.Store,
				CRC32:              0xdeadbeef,
				CompressedSize64:   uint64(len(item.body)),
				UncompressedSize64: uint64(len(item.body)),
			}
			fw, err := w.CreateRaw(fh)
			require.NoError(t, err)
			_, err = fw.Write([]byte(item.body))
			require.NoError(t, err)
			continue
		}
		fw, err := w.Create(item.name)
		require.NoError(t, err)
		if strings.HasSuffix(item.name, "/") {
			continue
		}
		_, err = fw.Write([]byte(item.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func testSettings() Settings {
	s := DefaultSettings()
	s.Host = testHost
	return s
}

// koEntry returns a Korean export entry for the given page path segments.
func koEntry(page string) string {
	return "ko-KR/#content#site#language-master#en#" + page + ".xml"
}

func jaEntry(page string) string {
	return "ja-JP/#content#site#language-master#en#" + page + ".xml"
}
