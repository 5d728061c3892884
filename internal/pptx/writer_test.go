package pptx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestDoc() *Document {
	doc := New(SizeWide)

	s1 := doc.AddSlide()
	pic := s1.AddPicture([]byte("fake png bytes"), 0, 0, SizeWide.CX, SizeWide.CY)
	tb := s1.AddTextBox(Inches(1), Inches(1), Inches(4), Inches(1))
	p := tb.AddParagraph()
	p.Alignment = AlignCenter
	p.Indent = 1
	r := p.AddRun("Profit & Loss <2026>")
	r.SizePt = 32
	r.Bold = true
	r.Color = [3]uint8{0x12, 0x34, 0x56}
	s1.SendToBack(pic)

	s2 := doc.AddSlide()
	s2.SetBackground([3]uint8{255, 255, 255})
	s2.AddTextBox(Inches(1), Inches(2), Inches(3), Inches(1)).AddParagraph().AddRun("plain")

	return doc
}

func readArchive(t *testing.T, doc *Document) map[string]string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		parts[f.Name] = string(data)
	}
	return parts
}

func TestWriteProducesCompletePackage(t *testing.T) {
	parts := readArchive(t, buildTestDoc())

	wantParts := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideMasters/_rels/slideMaster1.xml.rels",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels",
		"ppt/theme/theme1.xml",
		"ppt/presProps.xml",
		"ppt/viewProps.xml",
		"ppt/tableStyles.xml",
		"ppt/media/image1.png",
		"ppt/slides/slide1.xml",
		"ppt/slides/_rels/slide1.xml.rels",
		"ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide2.xml.rels",
	}
	for _, name := range wantParts {
		assert.Contains(t, parts, name)
	}
}

func TestWriteSlideGeometry(t *testing.T) {
	parts := readArchive(t, buildTestDoc())

	pres := parts["ppt/presentation.xml"]
	assert.Contains(t, pres, `<p:sldSz cx="12192000" cy="6858000" type="screen16x9"/>`)
	assert.Contains(t, pres, `<p:sldId id="256" r:id="rId5"/>`)
	assert.Contains(t, pres, `<p:sldId id="257" r:id="rId6"/>`)

	rels := parts["ppt/_rels/presentation.xml.rels"]
	assert.Contains(t, rels, `Id="rId5"`)
	assert.Contains(t, rels, `Target="slides/slide1.xml"`)
	assert.Contains(t, rels, `Target="slides/slide2.xml"`)

	contentTypes := parts["[Content_Types].xml"]
	assert.Contains(t, contentTypes, `/ppt/slides/slide1.xml`)
	assert.Contains(t, contentTypes, `/ppt/slides/slide2.xml`)
	assert.Contains(t, contentTypes, `Extension="png"`)
}

func TestWriteSlideContent(t *testing.T) {
	parts := readArchive(t, buildTestDoc())

	slide1 := parts["ppt/slides/slide1.xml"]
	assert.Contains(t, slide1, "<p:pic>")
	assert.Contains(t, slide1, `r:embed="rId2"`)
	assert.Contains(t, slide1, `sz="3200"`)
	assert.Contains(t, slide1, `b="1"`)
	assert.Contains(t, slide1, `<a:srgbClr val="123456"/>`)
	assert.Contains(t, slide1, `algn="ctr"`)
	assert.Contains(t, slide1, `lvl="1"`)
	assert.Contains(t, slide1, "<a:t>Profit &amp; Loss &lt;2026&gt;</a:t>")

	// Picture XML precedes text XML when the picture was sent to back.
	assert.Less(t, strings.Index(slide1, "<p:pic>"), strings.Index(slide1, "<p:sp>"))

	rels1 := parts["ppt/slides/_rels/slide1.xml.rels"]
	assert.Contains(t, rels1, `Target="../slideLayouts/slideLayout1.xml"`)
	assert.Contains(t, rels1, `Target="../media/image1.png"`)

	slide2 := parts["ppt/slides/slide2.xml"]
	assert.Contains(t, slide2, `<a:srgbClr val="FFFFFF"/>`)
	assert.NotContains(t, slide2, "<p:pic>")
}

func TestWriteFileCreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/nested/out.pptx"

	require.NoError(t, buildTestDoc().WriteFile(path))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	assert.NotEmpty(t, zr.File)
}
