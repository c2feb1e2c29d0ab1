package reporter

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/aleister1102/aemlink/internal/common/errorwrapper"
	"github.com/aleister1102/aemlink/internal/common/filemanager"
	"github.com/rs/zerolog"
)

//go:embed assets/*
var assetsFS embed.FS

//go:embed templates/*
var templatesFS embed.FS

// assetsDirName is both the embedded root and the directory created next to
// reports when assets are linked instead of inlined.
const assetsDirName = "assets"

// AssetSetter receives inlined stylesheet and script content.
type AssetSetter interface {
	SetCustomCSS(template.CSS)
	SetReportJs(template.JS)
}

// reportAssets serves the report stylesheet and script, either inlined into
// each page or published once into the output directory.
type reportAssets struct {
	src    fs.FS
	files  *filemanager.FileManager
	logger zerolog.Logger

	css template.CSS
	js  template.JS
}

func newReportAssets(src fs.FS, files *filemanager.FileManager, logger zerolog.Logger) (*reportAssets, error) {
	css, err := fs.ReadFile(src, EmbeddedCSSPath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read report stylesheet")
	}
	js, err := fs.ReadFile(src, EmbeddedJSPath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read report script")
	}
	return &reportAssets{
		src:    src,
		files:  files,
		logger: logger,
		css:    template.CSS(css),
		js:     template.JS(js),
	}, nil
}

// Inline hands the stylesheet and script to page.
func (a *reportAssets) Inline(page AssetSetter) {
	page.SetCustomCSS(a.css)
	page.SetReportJs(a.js)
}

// Publish copies every asset under outputDir/assets, keeping relative paths.
func (a *reportAssets) Publish(ctx context.Context, outputDir string) error {
	count := 0
	err := fs.WalkDir(a.src, assetsDirName, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(a.src, p)
		if err != nil {
			return err
		}
		dest := filepath.Join(outputDir, filepath.FromSlash(p))
		opts := filemanager.DefaultWriteOptions()
		opts.Perm = FilePermissions
		if err := a.files.WriteFile(ctx, dest, data, opts); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return errorwrapper.WrapError(err, "failed to publish report assets")
	}
	a.logger.Debug().Str("dir", path.Join(outputDir, assetsDirName)).Int("files", count).Msg("Report assets published")
	return nil
}
