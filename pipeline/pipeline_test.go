package pipeline

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelhaslim/printshop-pipeline/config"
	"github.com/michaelhaslim/printshop-pipeline/img"
	"github.com/michaelhaslim/printshop-pipeline/models"
)

// testConfig returns the production tables with temp roots, small target
// sizes and watermarking off.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Load()
	cfg.InputRoot = filepath.Join(t.TempDir(), "in")
	cfg.OutputRoot = filepath.Join(t.TempDir(), "out")
	cfg.Variants = []config.Variant{
		{Label: config.VariantEtsyPrimary, Width: 30, Height: 24, Background: "#ffffff"},
		{Label: config.VariantEtsySquare, Width: 20, Height: 20, Background: "#ffffff"},
		{Label: config.VariantWebsiteLarge, Width: 16, Height: 16, Background: "#ffffff"},
		{Label: config.VariantWebsiteMedium, Width: 10, Height: 10, Background: "#ffffff"},
		{Label: config.VariantWebsiteThumb, Width: 4, Height: 4, Background: "#ffffff"},
	}
	cfg.ExtraSize = 20
	cfg.Watermark.Enabled = false
	require.NoError(t, os.MkdirAll(cfg.InputRoot, 0o755))
	return cfg
}

func writeTestJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, imaging.Save(imaging.New(w, h, color.NRGBA{R: 40, G: 90, B: 160, A: 255}), path))
}

func writeCorruptJPEG(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not a jpeg"), 0o644))
}

func TestScan(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg)

	writeTestJPEG(t, filepath.Join(cfg.InputRoot, "a_0001.jpg"), 8, 8)
	writeTestJPEG(t, filepath.Join(cfg.InputRoot, "nested", "deep", "b_0001.PNG"), 8, 8)
	writeTestJPEG(t, filepath.Join(cfg.InputRoot, "listing_print_files", "done_0001.jpg"), 8, 8)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.InputRoot, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.InputRoot, "image.gif"), []byte("x"), 0o644))

	files, err := p.Scan()
	require.NoError(t, err)

	assert.Len(t, files, 2)
	assert.Contains(t, files, filepath.Join(cfg.InputRoot, "a_0001.jpg"))
	assert.Contains(t, files, filepath.Join(cfg.InputRoot, "nested", "deep", "b_0001.PNG"))
}

func TestScanUnreadableRootIsNonFatal(t *testing.T) {
	cfg := testConfig(t)
	cfg.InputRoot = filepath.Join(cfg.InputRoot, "does-not-exist")
	p := New(cfg)

	// WalkDir reports the root stat failure through the callback; the
	// scan logs it and continues with nothing rather than failing
	files, err := p.Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestRunSurvivesUnreadableInputRoot(t *testing.T) {
	cfg := testConfig(t)
	cfg.InputRoot = filepath.Join(cfg.InputRoot, "does-not-exist")
	p := New(cfg)

	// the batch still completes and still produces the summary report
	report, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalProducts)
	assert.FileExists(t, report.OutputPaths["report"])
}

func TestGroup(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg)

	files := []string{
		filepath.Join(cfg.InputRoot, "z", "Mesa_Arch_main_01_2024_aa.jpg"),
		filepath.Join(cfg.InputRoot, "a", "Mesa_Arch_extra_02_2024_bb.jpg"),
		filepath.Join(cfg.InputRoot, "Carmel_Beach_0001.jpg"),
	}

	groups := p.Group(files)
	require.Len(t, groups, 2)

	// groups ordered by key, files ordered lexicographically
	assert.Equal(t, "carmel-beach", groups[0].Key)
	assert.Equal(t, "mesa-arch", groups[1].Key)
	assert.Equal(t, filepath.Join(cfg.InputRoot, "a", "Mesa_Arch_extra_02_2024_bb.jpg"), groups[1].Primary())
}

func TestProcessGroupElevenFiles(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg)

	var files []string
	for i := 1; i <= 11; i++ {
		f := filepath.Join(cfg.InputRoot, "california", "landscape", fmt.Sprintf("mesa_%04d.jpg", i))
		writeTestJPEG(t, f, 60, 40)
		files = append(files, f)
	}

	res := p.ProcessGroup(models.ProductGroup{Key: "mesa", Files: files})
	require.True(t, res.Ok(), res.Skipped)

	// exactly five primary variants at exact target sizes
	require.Len(t, res.Website.Variants, 5)
	for _, v := range cfg.Variants {
		path := res.Website.Variants[v.Label]
		require.NotEmpty(t, path, v.Label)
		im, err := img.Load(path)
		require.NoError(t, err)
		assert.Equal(t, v.Width, im.Bounds().Dx(), v.Label)
		assert.Equal(t, v.Height, im.Bounds().Dy(), v.Label)
	}

	// nine extras, the eleventh file is ignored
	require.Len(t, res.Extras, cfg.MaxExtras)
	for i, extra := range res.Extras {
		assert.Equal(t, i+1, extra.Index)
		assert.Equal(t, files[i+1], extra.Source)
		assert.FileExists(t, extra.Output)
		im, err := img.Load(extra.Output)
		require.NoError(t, err)
		assert.Equal(t, cfg.ExtraSize, im.Bounds().Dx())
		assert.Equal(t, cfg.ExtraSize, im.Bounds().Dy())
	}

	// facets come from the primary path, price and dimensions follow
	assert.Equal(t, "Landscapes", res.Website.Category)
	assert.Equal(t, "California", res.Website.Location)
	assert.Equal(t, 50.0, res.Website.BasePrice)
	assert.Equal(t, models.Dimensions{Width: 60, Height: 40}, res.Website.Dimensions)
	assert.Equal(t, 11, res.Etsy.SourceFiles)
}

func TestProcessGroupUnreadablePrimary(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg)

	bad := filepath.Join(cfg.InputRoot, "mesa_0001.jpg")
	good := filepath.Join(cfg.InputRoot, "mesa_0002.jpg")
	writeCorruptJPEG(t, bad)
	writeTestJPEG(t, good, 10, 10)

	res := p.ProcessGroup(models.ProductGroup{Key: "mesa", Files: []string{bad, good}})
	assert.False(t, res.Ok())
	assert.Contains(t, res.Skipped, "primary image unreadable")
	assert.Nil(t, res.Etsy)
	assert.Nil(t, res.Website)
}

func TestProcessGroupUnreadableExtra(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg)

	primary := filepath.Join(cfg.InputRoot, "mesa_0001.jpg")
	bad := filepath.Join(cfg.InputRoot, "mesa_0002.jpg")
	good := filepath.Join(cfg.InputRoot, "mesa_0003.jpg")
	writeTestJPEG(t, primary, 10, 10)
	writeCorruptJPEG(t, bad)
	writeTestJPEG(t, good, 10, 10)

	res := p.ProcessGroup(models.ProductGroup{Key: "mesa", Files: []string{primary, bad, good}})
	require.True(t, res.Ok(), res.Skipped)

	// the corrupt extra is dropped, the readable one keeps its index
	require.Len(t, res.Extras, 1)
	assert.Equal(t, 2, res.Extras[0].Index)
	assert.Equal(t, good, res.Extras[0].Source)
	assert.Equal(t, 3, res.Etsy.SourceFiles)
}

func TestProcessGroupExtraBackground(t *testing.T) {
	cfg := testConfig(t)
	cfg.ExtraBackground = "#000000"
	p := New(cfg)

	primary := filepath.Join(cfg.InputRoot, "mesa_0001.jpg")
	extra := filepath.Join(cfg.InputRoot, "mesa_0002.jpg")
	writeTestJPEG(t, primary, 10, 10)
	writeTestJPEG(t, extra, 40, 10) // wide, so the square extra gets bands

	res := p.ProcessGroup(models.ProductGroup{Key: "mesa", Files: []string{primary, extra}})
	require.True(t, res.Ok(), res.Skipped)
	require.Len(t, res.Extras, 1)

	im, err := img.Load(res.Extras[0].Output)
	require.NoError(t, err)
	// near-black, allowing for JPEG noise
	r, g, b, _ := im.At(10, 1).RGBA()
	assert.Less(t, int(r>>8), 30, "letterbox band should use the configured background")
	assert.Less(t, int(g>>8), 30)
	assert.Less(t, int(b>>8), 30)
}

func TestProcessGroupInvalidExtraBackground(t *testing.T) {
	cfg := testConfig(t)
	cfg.ExtraBackground = "black"
	p := New(cfg)

	primary := filepath.Join(cfg.InputRoot, "mesa_0001.jpg")
	extra := filepath.Join(cfg.InputRoot, "mesa_0002.jpg")
	writeTestJPEG(t, primary, 10, 10)
	writeTestJPEG(t, extra, 10, 10)

	res := p.ProcessGroup(models.ProductGroup{Key: "mesa", Files: []string{primary, extra}})
	assert.False(t, res.Ok())
	assert.Contains(t, res.Skipped, "extra background")
}

func TestProcessGroupKeyDeterminesOutputNames(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg)

	primary := filepath.Join(cfg.InputRoot, "Carmel_Beach_0001.jpg")
	writeTestJPEG(t, primary, 10, 10)

	res := p.ProcessGroup(models.ProductGroup{Key: "carmel-beach", Files: []string{primary}})
	require.True(t, res.Ok(), res.Skipped)

	dir := filepath.Join(cfg.OutputRoot, "etsy_images", "carmel-beach")
	assert.Equal(t, dir, res.Etsy.Folder)
	assert.FileExists(t, filepath.Join(dir, "carmel-beach_"+config.VariantEtsyPrimary+".jpg"))
	assert.FileExists(t, filepath.Join(dir, "carmel-beach_"+config.VariantWebsiteThumb+".jpg"))
}
