package reporter

import (
	"bytes"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/aemlink/internal/config"
	"github.com/aleister1102/aemlink/internal/linkresolver"
	"github.com/aleister1102/aemlink/internal/locale"
	"github.com/aleister1102/aemlink/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testHost = "https://author.example.com"

func testPathManager() *locale.PathManager {
	return locale.NewPathManager("language-master", "en", map[string]string{
		"ko": "/spac/ko_KR/",
		"ja": "/spac/ja_JP/",
	})
}

func link(code, rel, source string) models.LocalizedLink {
	path := "content/site/language-master/" + code + "/" + rel
	return models.NewLocalizedLink(testHost+"/editor.html/"+path, path, code, source)
}

func testOutcome(links ...models.LocalizedLink) *models.ProcessingOutcome {
	outcome := models.NewProcessingOutcome("ko", "ja")
	outcome.ProcessedCount = 12
	for _, l := range links {
		outcome.Links.Add(l)
	}
	return outcome
}

func testReporterConfig(t *testing.T, mode string) *config.ReporterConfig {
	t.Helper()
	cfg := config.NewDefaultReporterConfig()
	cfg.OutputDir = t.TempDir()
	cfg.RenderMode = mode
	return &cfg
}

func newTestReporter(t *testing.T, cfg *config.ReporterConfig) *HtmlReporter {
	t.Helper()
	r, err := NewHtmlReporter(cfg, testPathManager(), linkresolver.NewValidator(testHost, "language-master"), zerolog.Nop())
	require.NoError(t, err)
	r.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }
	return r
}

func parseHTML(t *testing.T, content []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	require.NoError(t, err)
	return doc
}
