package pptx

import (
	"fmt"
	"strings"
	"time"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

const (
	nsDrawing       = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPresentation  = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"

	relTypeOfficeDocument = nsRelationships + "/officeDocument"
	relTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtendedProps  = nsRelationships + "/extended-properties"
	relTypeSlideMaster    = nsRelationships + "/slideMaster"
	relTypeSlideLayout    = nsRelationships + "/slideLayout"
	relTypeSlide          = nsRelationships + "/slide"
	relTypeTheme          = nsRelationships + "/theme"
	relTypePresProps      = nsRelationships + "/presProps"
	relTypeViewProps      = nsRelationships + "/viewProps"
	relTypeTableStyles    = nsRelationships + "/tableStyles"
	relTypeImage          = nsRelationships + "/image"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

func hexColor(rgb [3]uint8) string {
	return fmt.Sprintf("%02X%02X%02X", rgb[0], rgb[1], rgb[2])
}

func contentTypesXML(slideCount int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	b.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	b.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/presProps.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/viewProps.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/tableStyles.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"/>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

func rootRelsXML() string {
	return xmlHeader +
		`<Relationships xmlns="` + nsPackageRels + `">` +
		`<Relationship Id="rId1" Type="` + relTypeOfficeDocument + `" Target="ppt/presentation.xml"/>` +
		`<Relationship Id="rId2" Type="` + relTypeCoreProps + `" Target="docProps/core.xml"/>` +
		`<Relationship Id="rId3" Type="` + relTypeExtendedProps + `" Target="docProps/app.xml"/>` +
		`</Relationships>`
}

func corePropsXML(now time.Time) string {
	stamp := now.UTC().Format(time.RFC3339)
	return xmlHeader +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title/>` +
		`<dc:creator>pdf2pptx</dc:creator>` +
		`<cp:lastModifiedBy>pdf2pptx</cp:lastModifiedBy>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>` +
		`</cp:coreProperties>`
}

func appPropsXML(slideCount int, size SlideSize) string {
	format := "On-screen Show (4:3)"
	if size.Kind == SizeWide.Kind {
		format = "On-screen Show (16:9)"
	}

	var titles strings.Builder
	fmt.Fprintf(&titles, `<vt:vector size="%d" baseType="lpstr">`, maxInt(slideCount, 1))
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&titles, `<vt:lpstr>Slide %d</vt:lpstr>`, i)
	}
	if slideCount == 0 {
		titles.WriteString(`<vt:lpstr>Slides</vt:lpstr>`)
	}
	titles.WriteString(`</vt:vector>`)

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">`)
	b.WriteString(`<Application>pdf2pptx</Application>`)
	fmt.Fprintf(&b, `<PresentationFormat>%s</PresentationFormat>`, format)
	fmt.Fprintf(&b, `<Slides>%d</Slides>`, slideCount)
	b.WriteString(`<Notes>0</Notes><HiddenSlides>0</HiddenSlides><MMClips>0</MMClips><ScaleCrop>false</ScaleCrop>`)
	fmt.Fprintf(&b, `<HeadingPairs><vt:vector size="2" baseType="variant"><vt:variant><vt:lpstr>Slides</vt:lpstr></vt:variant><vt:variant><vt:i4>%d</vt:i4></vt:variant></vt:vector></HeadingPairs>`, slideCount)
	b.WriteString(`<TitlesOfParts>`)
	b.WriteString(titles.String())
	b.WriteString(`</TitlesOfParts>`)
	b.WriteString(`<AppVersion>16.0000</AppVersion>`)
	b.WriteString(`</Properties>`)
	return b.String()
}

// presentation.xml relationship layout: rId1 master, rId2 presProps,
// rId3 viewProps, rId4 tableStyles, slides from rId5 on.
const firstSlideRelID = 5

func presentationXML(slideCount int, size SlideSize) string {
	var slides strings.Builder
	slides.WriteString(`<p:sldIdLst>`)
	for i := 0; i < slideCount; i++ {
		fmt.Fprintf(&slides, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, firstSlideRelID+i)
	}
	slides.WriteString(`</p:sldIdLst>`)

	return xmlHeader +
		`<p:presentation xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentation + `" saveSubsetFonts="1" autoCompressPictures="0">` +
		`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
		slides.String() +
		fmt.Sprintf(`<p:sldSz cx="%d" cy="%d" type="%s"/>`, size.CX, size.CY, size.Kind) +
		`<p:notesSz cx="6858000" cy="9144000"/>` +
		`<p:defaultTextStyle/>` +
		`</p:presentation>`
}

func presentationRelsXML(slideCount int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="` + nsPackageRels + `">`)
	b.WriteString(`<Relationship Id="rId1" Type="` + relTypeSlideMaster + `" Target="slideMasters/slideMaster1.xml"/>`)
	b.WriteString(`<Relationship Id="rId2" Type="` + relTypePresProps + `" Target="presProps.xml"/>`)
	b.WriteString(`<Relationship Id="rId3" Type="` + relTypeViewProps + `" Target="viewProps.xml"/>`)
	b.WriteString(`<Relationship Id="rId4" Type="` + relTypeTableStyles + `" Target="tableStyles.xml"/>`)
	for i := 0; i < slideCount; i++ {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s" Target="slides/slide%d.xml"/>`, firstSlideRelID+i, relTypeSlide, i+1)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func slideMasterXML() string {
	return xmlHeader +
		`<p:sldMaster xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentation + `">` +
		`<p:cSld>` +
		`<p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg>` +
		`<p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr/>` +
		`</p:spTree>` +
		`</p:cSld>` +
		`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
		`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
		`<p:txStyles><p:titleStyle/><p:bodyStyle/><p:otherStyle/></p:txStyles>` +
		`</p:sldMaster>`
}

func slideMasterRelsXML() string {
	return xmlHeader +
		`<Relationships xmlns="` + nsPackageRels + `">` +
		`<Relationship Id="rId1" Type="` + relTypeSlideLayout + `" Target="../slideLayouts/slideLayout1.xml"/>` +
		`<Relationship Id="rId2" Type="` + relTypeTheme + `" Target="../theme/theme1.xml"/>` +
		`</Relationships>`
}

func slideLayoutXML() string {
	return xmlHeader +
		`<p:sldLayout xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentation + `" type="blank" preserve="1">` +
		`<p:cSld name="Blank">` +
		`<p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr/>` +
		`</p:spTree>` +
		`</p:cSld>` +
		`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
		`</p:sldLayout>`
}

func slideLayoutRelsXML() string {
	return xmlHeader +
		`<Relationships xmlns="` + nsPackageRels + `">` +
		`<Relationship Id="rId1" Type="` + relTypeSlideMaster + `" Target="../slideMasters/slideMaster1.xml"/>` +
		`</Relationships>`
}

func presPropsXML() string {
	return xmlHeader +
		`<p:presentationPr xmlns:a="` + nsDrawing + `" xmlns:p="` + nsPresentation + `"/>`
}

func viewPropsXML() string {
	return xmlHeader +
		`<p:viewPr xmlns:a="` + nsDrawing + `" xmlns:p="` + nsPresentation + `"/>`
}

func tableStylesXML() string {
	return xmlHeader +
		`<a:tblStyleLst xmlns:a="` + nsDrawing + `" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`
}

// themeXML is a minimal Office-compatible theme. The deck never references
// scheme colors from slide content (all colors are explicit sRGB), but a
// valid theme part is mandatory for the package to open.
func themeXML() string {
	fill := `<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>`
	line := `<a:ln w="9525" cap="flat" cmpd="sng" algn="ctr"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:prstDash val="solid"/></a:ln>`
	return xmlHeader +
		`<a:theme xmlns:a="` + nsDrawing + `" name="Office">` +
		`<a:themeElements>` +
		`<a:clrScheme name="Office">` +
		`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
		`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
		`<a:dk2><a:srgbClr val="44546A"/></a:dk2>` +
		`<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
		`<a:accent1><a:srgbClr val="4472C4"/></a:accent1>` +
		`<a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
		`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>` +
		`<a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
		`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>` +
		`<a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
		`<a:hlink><a:srgbClr val="0563C1"/></a:hlink>` +
		`<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
		`</a:clrScheme>` +
		`<a:fontScheme name="Office">` +
		`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
		`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
		`</a:fontScheme>` +
		`<a:fmtScheme name="Office">` +
		`<a:fillStyleLst>` + fill + fill + fill + `</a:fillStyleLst>` +
		`<a:lnStyleLst>` + line + line + line + `</a:lnStyleLst>` +
		`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>` +
		`<a:bgFillStyleLst>` + fill + fill + fill + `</a:bgFillStyleLst>` +
		`</a:fmtScheme>` +
		`</a:themeElements>` +
		`</a:theme>`
}

// slideXML renders one slide part. imageRelIDs maps each Picture shape to its
// relationship id within the slide's rels part, in shape order.
func slideXML(s *Slide, imageRelIDs map[*Picture]string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sld xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentation + `">`)
	b.WriteString(`<p:cSld>`)

	if bg := s.background; bg != nil {
		fmt.Fprintf(&b, `<p:bg><p:bgPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`, hexColor(*bg))
	}

	b.WriteString(`<p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	b.WriteString(`<p:grpSpPr/>`)

	// Shape ids 1 and the group header are reserved; drawables start at 2.
	shapeID := 2
	for _, shape := range s.shapes {
		switch v := shape.(type) {
		case *Picture:
			writePictureXML(&b, v, shapeID, imageRelIDs[v])
		case *TextBox:
			writeTextBoxXML(&b, v, shapeID)
		}
		shapeID++
	}

	b.WriteString(`</p:spTree>`)
	b.WriteString(`</p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return b.String()
}

func writePictureXML(b *strings.Builder, p *Picture, id int, relID string) {
	fmt.Fprintf(b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`, id, id)
	fmt.Fprintf(b, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, relID)
	fmt.Fprintf(b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`, p.X, p.Y, p.CX, p.CY)
	b.WriteString(`</p:pic>`)
}

func writeTextBoxXML(b *strings.Builder, t *TextBox, id int) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, id)
	fmt.Fprintf(b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`, t.X, t.Y, t.CX, t.CY)
	b.WriteString(`<p:txBody><a:bodyPr wrap="square" rtlCol="0"/><a:lstStyle/>`)
	for _, para := range t.Paragraphs {
		writeParagraphXML(b, para)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func writeParagraphXML(b *strings.Builder, p *Paragraph) {
	b.WriteString(`<a:p>`)

	var attrs []string
	if p.Indent > 0 {
		attrs = append(attrs, fmt.Sprintf(`lvl="%d"`, p.Indent))
	}
	switch p.Alignment {
	case AlignCenter:
		attrs = append(attrs, `algn="ctr"`)
	case AlignRight:
		attrs = append(attrs, `algn="r"`)
	}
	if len(attrs) > 0 {
		fmt.Fprintf(b, `<a:pPr %s/>`, strings.Join(attrs, " "))
	}

	for _, r := range p.Runs {
		writeRunXML(b, r)
	}
	b.WriteString(`</a:p>`)
}

func writeRunXML(b *strings.Builder, r *Run) {
	// Run size is in hundredths of a point.
	fmt.Fprintf(b, `<a:r><a:rPr lang="en-US" sz="%d"`, r.SizePt*100)
	if r.Bold {
		b.WriteString(` b="1"`)
	}
	if r.Italic {
		b.WriteString(` i="1"`)
	}
	b.WriteString(` dirty="0">`)
	fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, hexColor(r.Color))
	if r.Font != "" {
		fmt.Fprintf(b, `<a:latin typeface="%s"/>`, escapeXML(r.Font))
	}
	b.WriteString(`</a:rPr>`)
	fmt.Fprintf(b, `<a:t>%s</a:t></a:r>`, escapeXML(r.Text))
}

// slideRelsXML renders the rels part for one slide: the layout plus every
// embedded image, in shape order.
func slideRelsXML(mediaTargets []string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="` + nsPackageRels + `">`)
	b.WriteString(`<Relationship Id="rId1" Type="` + relTypeSlideLayout + `" Target="../slideLayouts/slideLayout1.xml"/>`)
	for i, target := range mediaTargets {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s" Target="%s"/>`, i+2, relTypeImage, target)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
