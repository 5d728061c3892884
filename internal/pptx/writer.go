package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/slideforge/pdf2pptx/internal/domain"
)

// WriteFile writes the presentation to path, creating the parent directory
// if it does not exist.
func (d *Document) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.IOError("failed to create output directory", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return domain.IOError("failed to create output file", err)
	}

	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write assembles the OOXML package and writes it as a zip archive.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	n := len(d.slides)

	staticParts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML(n)},
		{"_rels/.rels", rootRelsXML()},
		{"docProps/core.xml", corePropsXML(time.Now())},
		{"docProps/app.xml", appPropsXML(n, d.size)},
		{"ppt/presentation.xml", presentationXML(n, d.size)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(n)},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML()},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML()},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML()},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML()},
		{"ppt/theme/theme1.xml", themeXML()},
		{"ppt/presProps.xml", presPropsXML()},
		{"ppt/viewProps.xml", viewPropsXML()},
		{"ppt/tableStyles.xml", tableStylesXML()},
	}
	for _, part := range staticParts {
		if err := writeZipEntry(zw, part.name, []byte(part.content)); err != nil {
			zw.Close()
			return err
		}
	}

	mediaIndex := 0
	for slideNum, slide := range d.slides {
		// Relationship ids and media parts are assigned per slide, in
		// shape (z) order.
		relIDs := make(map[*Picture]string)
		var mediaTargets []string
		for _, shape := range slide.shapes {
			pic, ok := shape.(*Picture)
			if !ok {
				continue
			}
			mediaIndex++
			mediaName := fmt.Sprintf("ppt/media/image%d.png", mediaIndex)
			if err := writeZipEntry(zw, mediaName, pic.PNG); err != nil {
				zw.Close()
				return err
			}
			relIDs[pic] = fmt.Sprintf("rId%d", len(mediaTargets)+2)
			mediaTargets = append(mediaTargets, "../media/"+filepath.Base(mediaName))
		}

		name := fmt.Sprintf("ppt/slides/slide%d.xml", slideNum+1)
		if err := writeZipEntry(zw, name, []byte(slideXML(slide, relIDs))); err != nil {
			zw.Close()
			return err
		}
		relsName := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideNum+1)
		if err := writeZipEntry(zw, relsName, []byte(slideRelsXML(mediaTargets))); err != nil {
			zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return domain.IOError("failed to finalize presentation archive", err)
	}
	return nil
}

func writeZipEntry(zw *zip.Writer, name string, payload []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return domain.IOError(fmt.Sprintf("failed to create archive entry %s", name), err)
	}
	if _, err := w.Write(payload); err != nil {
		return domain.IOError(fmt.Sprintf("failed to write archive entry %s", name), err)
	}
	return nil
}
