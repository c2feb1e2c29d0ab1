package reporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/aemlink/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHtmlReporter_GenerateReports_SingleArchive(t *testing.T) {
	cfg := testReporterConfig(t, "advanced")
	r := newTestReporter(t, cfg)

	outcome := testOutcome(
		link("ko", "products/a.html", ""),
		link("ko", "products/sub/b.html", ""),
	)
	outcome.RecordFault(assert.AnError)

	paths, err := r.GenerateReports(ReportInput{Outcome: outcome, SourceNames: []string{"Job 42.zip"}})
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(cfg.OutputDir, "aem_links_ko_Job_42.html"),
		filepath.Join(cfg.OutputDir, "aem_links_ja_Job_42.html"),
	}, paths)

	content, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	doc := parseHTML(t, content)

	assert.Equal(t, "AEM Korean Links - Job 42.zip", doc.Find("h1").First().Text())
	assert.Equal(t, "Job 42.zip", doc.Find("#source-file").Text())
	assert.Equal(t, 0, doc.Find("#job-id").Length())
	assert.Equal(t, "2026-03-04 05:06:07", doc.Find("#generated-at").Text())
	assert.Equal(t, "12", doc.Find("#processed-count").Text())
	assert.Equal(t, "1", doc.Find("#error-count").Text())
	assert.Equal(t, 1, doc.Find("#warnings li").Length())

	var headers []string
	doc.Find("#links-table thead th").Each(func(_ int, s *goquery.Selection) {
		headers = append(headers, s.Text())
	})
	assert.Equal(t, []string{"Check", "Quick Links", "Level 2", "Level 3", "Level 4", "Level 5", "Level 6", "Level 7"}, headers)

	rows := doc.Find("#links-table tbody tr")
	require.Equal(t, 2, rows.Length())

	first := rows.First()
	assert.Equal(t, 1, first.Find(`input[type="checkbox"]`).Length())
	quick := first.Find("td.quick-links a")
	require.Equal(t, 3, quick.Length())
	assert.Equal(t, "lm-en", quick.Eq(0).Text())
	assert.Equal(t, testHost+"/editor.html/content/site/language-master/en/products/a.html", quick.Eq(0).AttrOr("href", ""))
	assert.Equal(t, "lm-ko", quick.Eq(1).Text())
	assert.Equal(t, "spac-ko", quick.Eq(2).Text())
	assert.Equal(t, testHost+"/editor.html/content/site/spac/ko_KR/products/a.html", quick.Eq(2).AttrOr("href", ""))
	quick.Each(func(_ int, s *goquery.Selection) {
		assert.Equal(t, "_blank", s.AttrOr("target", ""))
	})

	// The shorter path is padded; its last level links to the page.
	cells := first.Find("td").Slice(2, goquery.ToEnd)
	require.Equal(t, 6, cells.Length())
	assert.Equal(t, "a", cells.Eq(4).Text())
	assert.Equal(t, outcome.Links.Get("ko")[0].URL, cells.Eq(4).Find("a").AttrOr("href", ""))
	assert.Equal(t, "", cells.Eq(5).Text())

	assert.Equal(t, "2", doc.Find("#summary-table tr.total td").Last().Text())
	assert.Equal(t, "Korean", doc.Find("#summary-table tbody tr").First().Find("td").First().Text())
	assert.Equal(t, "site", doc.Find("#section-table tbody td").Eq(1).Text())

	assert.NotEmpty(t, doc.Find("style").Text(), "CSS is inlined by default")
}

func TestHtmlReporter_EmptyBucket(t *testing.T) {
	r := newTestReporter(t, testReporterConfig(t, "advanced"))

	content, err := r.RenderLanguage(ReportInput{
		Outcome:     testOutcome(link("ko", "a.html", "")),
		SourceNames: []string{"one.zip"},
	}, "ja")
	require.NoError(t, err)

	doc := parseHTML(t, content)
	assert.Equal(t, "AEM Japanese Links (0)", doc.Find("h1").Text())
	assert.Equal(t, NoLinksMessage, doc.Find("p.no-links").Text())
	assert.Equal(t, 0, doc.Find("#links-table").Length())
}

func TestHtmlReporter_SkipsEmptyReportsWhenDisabled(t *testing.T) {
	cfg := testReporterConfig(t, "advanced")
	cfg.GenerateEmptyReport = false
	r := newTestReporter(t, cfg)

	paths, err := r.GenerateReports(ReportInput{
		Outcome:     testOutcome(link("ko", "a.html", "")),
		SourceNames: []string{"one.zip"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(cfg.OutputDir, "aem_links_ko_one.html")}, paths)
}

func TestHtmlReporter_JobInfo(t *testing.T) {
	r := newTestReporter(t, testReporterConfig(t, "basic"))

	content, err := r.RenderLanguage(ReportInput{
		Outcome:        testOutcome(link("ko", "a.html", "")),
		SourceNames:    []string{"one.zip"},
		JobID:          "J-100",
		SubmissionName: "Spring launch",
	}, "ko")
	require.NoError(t, err)

	doc := parseHTML(t, content)
	assert.Equal(t, "J-100", doc.Find("#job-id").Text())
	assert.Equal(t, "Spring launch", doc.Find("#submission-name").Text())
	assert.Equal(t, 0, doc.Find("#source-file").Length())
}

func TestHtmlReporter_JobInfoNeedsBothFields(t *testing.T) {
	r := newTestReporter(t, testReporterConfig(t, "basic"))

	content, err := r.RenderLanguage(ReportInput{
		Outcome:     testOutcome(link("ko", "a.html", "")),
		SourceNames: []string{"one.zip"},
		JobID:       "J-100",
	}, "ko")
	require.NoError(t, err)

	doc := parseHTML(t, content)
	assert.Equal(t, 0, doc.Find("#job-id").Length())
	assert.Equal(t, "one.zip", doc.Find("#source-file").Text())
}

func TestHtmlReporter_BasicModeOmitsRunDetails(t *testing.T) {
	r := newTestReporter(t, testReporterConfig(t, "basic"))
	assert.Equal(t, RenderModeBasic, r.Mode())

	outcome := testOutcome(link("ko", "a.html", ""))
	outcome.AddWarning("Removed 1 duplicate links (Korean: 1, Japanese: 0)")

	content, err := r.RenderLanguage(ReportInput{Outcome: outcome, SourceNames: []string{"one.zip"}}, "ko")
	require.NoError(t, err)

	doc := parseHTML(t, content)
	assert.Equal(t, 1, doc.Find("#links-table tbody tr").Length())
	assert.Equal(t, 0, doc.Find("#summary-table").Length())
	assert.Equal(t, 0, doc.Find("#warnings").Length())
	assert.Equal(t, 0, doc.Find("#processed-count").Length())
}

func TestHtmlReporter_BatchShowsSourceColumn(t *testing.T) {
	cfg := testReporterConfig(t, "advanced")
	r := newTestReporter(t, cfg)

	outcome := testOutcome(
		link("ko", "a.html", "first.zip"),
		link("ko", "b.html", "second.zip"),
	)
	paths, err := r.GenerateReports(ReportInput{Outcome: outcome, SourceNames: []string{"first.zip", "second.zip"}})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(cfg.OutputDir, "aem_links_ko_multi_files.html"), paths[0])

	content, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	doc := parseHTML(t, content)

	assert.Equal(t, "AEM Korean Links - first.zip, second.zip", doc.Find("h1").First().Text())
	assert.Equal(t, "Source", doc.Find("#links-table thead th").Eq(2).Text())
	var sources []string
	doc.Find("td.source-archive").Each(func(_ int, s *goquery.Selection) {
		sources = append(sources, s.Text())
	})
	assert.Equal(t, []string{"first.zip", "second.zip"}, sources)
}

func TestHtmlReporter_MarksNewAndInvalidLinks(t *testing.T) {
	r := newTestReporter(t, testReporterConfig(t, "advanced"))

	broken := models.NewLocalizedLink("https://elsewhere.example.com/x.html", "content/site/language-master/ko/x.html", "ko", "")
	outcome := testOutcome(link("ko", "a.html", ""), link("ko", "b.html", ""), broken)
	diffs := map[string]models.LinkDiffResult{
		"ko": {
			Language:    "ko",
			Added:       []string{"content/site/language-master/ko/b.html"},
			Removed:     []string{"content/site/language-master/ko/old.html"},
			Unchanged:   1,
			HasBaseline: true,
		},
	}

	content, err := r.RenderLanguage(ReportInput{Outcome: outcome, SourceNames: []string{"one.zip"}, Diffs: diffs}, "ko")
	require.NoError(t, err)
	doc := parseHTML(t, content)

	rows := doc.Find("#links-table tbody tr")
	require.Equal(t, 3, rows.Length())
	assert.Equal(t, 0, rows.Eq(0).Find(".badge-new").Length())
	assert.Equal(t, 1, rows.Eq(1).Find(".badge-new").Length())
	assert.True(t, rows.Eq(2).HasClass("invalid"))
	assert.Contains(t, doc.Find("#diff-summary").Text(), "Added: 1")
	assert.Equal(t, "content/site/language-master/ko/old.html", doc.Find("#removed-paths li").Text())
}

func TestHtmlReporter_LinkedAssets(t *testing.T) {
	cfg := testReporterConfig(t, "advanced")
	cfg.EmbedAssets = false
	r := newTestReporter(t, cfg)

	assert.FileExists(t, filepath.Join(cfg.OutputDir, "assets", "css", "report.css"))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "assets", "js", "report.js"))

	content, err := r.RenderLanguage(ReportInput{Outcome: testOutcome(), SourceNames: []string{"one.zip"}}, "ko")
	require.NoError(t, err)
	doc := parseHTML(t, content)
	assert.Equal(t, "assets/css/report.css", doc.Find(`link[rel="stylesheet"]`).AttrOr("href", ""))
	assert.Equal(t, "assets/js/report.js", doc.Find("script").AttrOr("src", ""))
}

func TestHtmlReporter_CustomTemplateFile(t *testing.T) {
	cfg := testReporterConfig(t, "basic")
	cfg.TemplatePath = filepath.Join(t.TempDir(), "custom.html.tmpl")
	require.NoError(t, os.WriteFile(cfg.TemplatePath, []byte(`<p id="t">{{.PageTitle}}|{{len .Rows}}|{{upper .Language}}|{{languageName .Language}}|{{join (splitPath "content/site/a/b.html") "/"}}</p>`), 0644))
	r := newTestReporter(t, cfg)

	content, err := r.RenderLanguage(ReportInput{Outcome: testOutcome(link("ko", "a.html", "")), SourceNames: []string{"one.zip"}}, "ko")
	require.NoError(t, err)
	assert.Equal(t, "AEM Korean Links - one.zip|1|KO|Korean|site/a/b", parseHTML(t, content).Find("#t").Text())
}

func TestHtmlReporter_BrokenTemplateFailsAtConstruction(t *testing.T) {
	cfg := testReporterConfig(t, "basic")
	cfg.TemplatePath = filepath.Join(t.TempDir(), "broken.html.tmpl")
	require.NoError(t, os.WriteFile(cfg.TemplatePath, []byte(`{{if}}`), 0644))

	_, err := NewHtmlReporter(cfg, testPathManager(), nil, zerolog.Nop())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "broken.html.tmpl"))
}

func TestHtmlReporter_RejectsNilOutcome(t *testing.T) {
	r := newTestReporter(t, testReporterConfig(t, "basic"))
	_, err := r.GenerateReports(ReportInput{})
	assert.Error(t, err)
}

func TestHtmlReporter_LoaderReload(t *testing.T) {
	r := newTestReporter(t, testReporterConfig(t, "advanced"))
	require.Equal(t, 1, r.Loader().Cached(), "template is loaded at construction")

	r.Loader().Reload()
	assert.Zero(t, r.Loader().Cached())

	_, err := r.RenderLanguage(ReportInput{Outcome: testOutcome(), SourceNames: []string{"one.zip"}}, "ko")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Loader().Cached())
}
