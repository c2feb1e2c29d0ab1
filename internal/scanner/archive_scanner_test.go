package scanner

import (
	"strings"
	"testing"

	"github.com/aleister1102/aemlink/internal/linkresolver"
	"github.com/aleister1102/aemlink/internal/locale"
	"github.com/aleister1102/aemlink/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveScanner_ResolvesEntries(t *testing.T) {
	data := buildArchive(t, entries(
		"export/",
		koEntry("products#seq"),
		jaEntry("about"),
		"ko-KR/readme.txt",
		"de-DE/#content#site#language-master#en#page.xml",
		"ko-KR/#content#site#language-master#de#page.xml",
	)...)

	outcome := ScanSingle(data, "export.zip", testSettings(), zerolog.Nop())

	assert.Equal(t, 6, outcome.ProcessedCount)
	assert.Equal(t, 0, outcome.ErrorCount)
	assert.Empty(t, outcome.Warnings)
	assert.Equal(t, []string{"ko", "ja"}, outcome.Links.Languages())

	ko := outcome.Links.Get("ko")
	require.Len(t, ko, 1)
	assert.Equal(t, "content/site/language-master/ko/products/seq.html", ko[0].Path)
	assert.Equal(t, testHost+"/editor.html/content/site/language-master/ko/products/seq.html", ko[0].URL)
	assert.Equal(t, "ko", ko[0].Language)
	assert.Empty(t, ko[0].SourceArchive)

	ja := outcome.Links.Get("ja")
	require.Len(t, ja, 1)
	assert.Equal(t, "content/site/language-master/ja/about.html", ja[0].Path)
	assert.True(t, outcome.IsSuccessful())
}

func TestArchiveScanner_MarkerScenario(t *testing.T) {
	settings := Settings{
		Host:          testHost,
		SourceCode:    "en",
		MarkerPrefix:  "#content",
		ContentPrefix: "#content",
		Table:         locale.NewTable("en", locale.Mapping{Marker: "loc-A", Code: "ko"}),
	}
	data := buildArchive(t, entries("loc-A/#content#en.xml", "loc-B/#content#en.xml")...)

	outcome := ScanSingle(data, "scenario.zip", settings, zerolog.Nop())

	assert.Equal(t, 2, outcome.ProcessedCount)
	assert.Equal(t, 0, outcome.ErrorCount)
	ko := outcome.Links.Get("ko")
	require.Len(t, ko, 1)
	assert.Equal(t, "content/ko.html", ko[0].Path)
	assert.Equal(t, testHost+"/editor.html/content/ko.html", ko[0].URL)
}

func TestArchiveScanner_SkipsMetadata(t *testing.T) {
	data := buildArchive(t, entries(
		"__MACOSX/ko-KR/"+"#content#site#language-master#en#page.xml",
		"__MACOSX/ko-KR/._#content#site#language-master#en#page.xml",
		"ko-KR/.DS_Store",
		"ko-KR/Thumbs.db",
		koEntry("page"),
	)...)

	outcome := ScanSingle(data, "mac.zip", testSettings(), zerolog.Nop())

	assert.Equal(t, 5, outcome.ProcessedCount)
	assert.Equal(t, 0, outcome.ErrorCount)
	assert.Equal(t, 1, outcome.Links.Total())
}

func TestArchiveScanner_InvalidContainer(t *testing.T) {
	outcome := ScanSingle([]byte("definitely not a zip"), "broken.zip", testSettings(), zerolog.Nop())

	assert.Equal(t, 1, outcome.ErrorCount)
	assert.Equal(t, 0, outcome.ProcessedCount)
	require.Len(t, outcome.Warnings, 1)
	assert.Contains(t, outcome.Warnings[0], "broken.zip")
	assert.Contains(t, outcome.Warnings[0], "invalid ZIP file format")
	assert.False(t, outcome.Links.HasLinks())
	assert.Equal(t, []string{"ko", "ja"}, outcome.Links.Languages())
}

func TestArchiveScanner_EmptyInput(t *testing.T) {
	outcome := ScanSingle(nil, "empty.zip", testSettings(), zerolog.Nop())

	assert.Equal(t, 1, outcome.ErrorCount)
	assert.False(t, outcome.IsSuccessful())
}

func TestArchiveScanner_FailureIsolation(t *testing.T) {
	var items []testEntry
	for i := 0; i < 9; i++ {
		items = append(items, testEntry{name: koEntry("page" + string(rune('a'+i))), body: "<ok/>"})
	}
	corruptName := koEntry("broken")
	items = append(items[:4], append([]testEntry{{name: corruptName, body: "<bad/>", corrupt: true}}, items[4:]...)...)
	data := buildArchive(t, items...)

	outcome := ScanSingle(data, "batch.zip", testSettings(), zerolog.Nop())

	assert.Equal(t, 10, outcome.ProcessedCount)
	assert.Equal(t, 1, outcome.ErrorCount)
	assert.Equal(t, 9, outcome.Links.Count("ko"))
	require.Len(t, outcome.Warnings, 1)
	assert.True(t, strings.HasPrefix(outcome.Warnings[0], "Error processing "+corruptName+": "))
	assert.Contains(t, outcome.Warnings[0], "checksum")
	assert.False(t, outcome.IsSuccessful())
}

func TestArchiveScanner_VerifyPayloadsDisabled(t *testing.T) {
	data := buildArchive(t,
		testEntry{name: koEntry("good"), body: "<ok/>"},
		testEntry{name: koEntry("broken"), body: "<bad/>", corrupt: true},
	)
	settings := testSettings()
	settings.VerifyPayloads = false

	outcome := ScanSingle(data, "batch.zip", settings, zerolog.Nop())

	assert.Equal(t, 0, outcome.ErrorCount)
	assert.Equal(t, 2, outcome.Links.Count("ko"))
}

type panickingResolver struct {
	inner   linkresolver.Resolver
	trigger string
}

func (p *panickingResolver) Resolve(fileName, targetCode string) (linkresolver.Resolution, bool) {
	if strings.Contains(fileName, p.trigger) {
		panic("resolver exploded")
	}
	return p.inner.Resolve(fileName, targetCode)
}

func TestArchiveScanner_RecoversFromPanickingResolver(t *testing.T) {
	settings := testSettings()
	resolver := &panickingResolver{
		inner:   linkresolver.NewEditorResolver(settings.Host, settings.MarkerPrefix, settings.SourceCode),
		trigger: "explode",
	}
	s := NewArchiveScanner(
		locale.NewTableResolver(settings.Table),
		resolver,
		NewFileFilter(settings.ContentPrefix, settings.ExcludedNames),
		settings.Table.Codes(),
		ScanOptions{},
		zerolog.Nop(),
	)
	data := buildArchive(t, entries(koEntry("a"), koEntry("explode"), jaEntry("b"))...)

	outcome := s.Scan(data, "panic.zip")

	assert.Equal(t, 3, outcome.ProcessedCount)
	assert.Equal(t, 1, outcome.ErrorCount)
	assert.Equal(t, 2, outcome.Links.Total())
	require.Len(t, outcome.Warnings, 1)
	assert.Contains(t, outcome.Warnings[0], "Error processing "+koEntry("explode"))
	assert.Contains(t, outcome.Warnings[0], "resolver exploded")
}

func TestArchiveScanner_Idempotent(t *testing.T) {
	data := buildArchive(t, entries(koEntry("z"), koEntry("a"), jaEntry("m"), koEntry("c"))...)
	pipeline := NewPipeline(testSettings(), zerolog.Nop())
	input := models.ArchiveInput{Data: data, Label: "same.zip"}

	first := pipeline.ScanSingle(input)
	second := pipeline.ScanSingle(input)

	assert.Equal(t, first.Links.Get("ko"), second.Links.Get("ko"))
	assert.Equal(t, first.Links.Get("ja"), second.Links.Get("ja"))
	assert.Equal(t, first.ProcessedCount, second.ProcessedCount)
	// Single scans keep archive order.
	assert.Equal(t, []string{
		"content/site/language-master/ko/z.html",
		"content/site/language-master/ko/a.html",
		"content/site/language-master/ko/c.html",
	}, first.Links.Paths("ko"))
}

func TestFileFilter(t *testing.T) {
	filter := NewFileFilter("#content", []string{"__MACOSX", ".DS_Store", "Thumbs.db"})

	tests := []struct {
		path     string
		expected bool
	}{
		{"ko-KR/#content#a.xml", true},
		{"#content#a.xml", true},
		{"ko-KR/content#a.xml", false},
		{"ko-KR/#contentdir/", false},
		{"__MACOSX/ko-KR/#content#a.xml", false},
		{"ko-KR/.DS_Store", false},
		{"ko-KR/#content#Thumbs.db", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, filter.Accept(tt.path))
		})
	}
}
