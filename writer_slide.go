package godeck

import (
	"archive/zip"
	"fmt"
	"math"
	"strings"
)

func (w *PPTXWriter) writeSlide(zw *zip.Writer, f *Frame, slideNum int) error {
	var shapesXML strings.Builder
	shapeID := 2 // 1 is reserved for the group shape

	// Image rIds follow z-order and must match writeSlideRels exactly.
	relIdx := 2 // rId1 is slideLayout
	for _, n := range f.children {
		switch s := n.(type) {
		case *RectNode:
			shapesXML.WriteString(w.writeRectXML(s, &shapeID))
		case *LineNode:
			shapesXML.WriteString(w.writeLineXML(s, &shapeID))
		case *TextNode:
			shapesXML.WriteString(w.writeTextXML(s, &shapeID))
		case *ImageNode:
			if len(s.data) == 0 {
				continue
			}
			shapesXML.WriteString(w.writePictureXML(s, &shapeID, relIdx))
			relIdx++
		}
	}

	bgXML := ""
	if f.background != nil {
		bgXML = "    <p:bg>\n      <p:bgPr>\n"
		bgXML += writePaintXML(*f.background, 1)
		bgXML += "        <a:effectLst/>\n      </p:bgPr>\n    </p:bg>\n"
	}

	name := ""
	if f.name != "" {
		name = fmt.Sprintf(` name="%s"`, xmlEscape(f.name))
	}

	content := fmt.Sprintf(xmlDecl+`<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld%s>
%s    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, name, bgXML, shapesXML.String())

	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/slide%d.xml", slideNum), content)
}

func (w *PPTXWriter) writeSlideRels(zw *zip.Writer, f *Frame, slideNum int) error {
	var rels strings.Builder
	fmt.Fprintf(&rels, xmlDecl+`<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="../slideLayouts/slideLayout1.xml"/>`, nsRelationships, relTypeSlideLayout)

	relIdx := 2
	for _, m := range w.frameMedia(slideNum - 1) {
		fmt.Fprintf(&rels, `
  <Relationship Id="rId%d" Type="%s" Target="../media/image%d.%s"/>`,
			relIdx, relTypeImage, m.index, m.ext)
		relIdx++
	}

	if f.notes != "" {
		fmt.Fprintf(&rels, `
  <Relationship Id="rId%d" Type="%s" Target="../notesSlides/notesSlide%d.xml"/>`,
			relIdx, relTypeNotesSlide, slideNum)
	}

	rels.WriteString(`
</Relationships>`)
	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideNum), rels.String())
}

// xfrmXML builds <a:xfrm> for a node. Negative extents become flips so that
// lines drawn right-to-left or bottom-to-top keep their direction.
func xfrmXML(b *BaseNode) string {
	x, y, w, h := b.x, b.y, b.width, b.height
	var attrs strings.Builder
	if b.rotation != 0 {
		fmt.Fprintf(&attrs, ` rot="%d"`, int64(math.Round(b.rotation*60000)))
	}
	if w < 0 {
		x += w
		w = -w
		attrs.WriteString(` flipH="1"`)
	}
	if h < 0 {
		y += h
		h = -h
		attrs.WriteString(` flipV="1"`)
	}
	return fmt.Sprintf(`          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
`, attrs.String(), PixelToEMU(x), PixelToEMU(y), PixelToEMU(w), PixelToEMU(h))
}

// prstGeomXML returns the preset geometry for a rectangle, rounded rectangle
// or ellipse. The roundRect adjust value is the corner radius relative to the
// shorter side, capped at a half (a pill).
func prstGeomXML(ellipse bool, radius, w, h float64) string {
	switch {
	case ellipse:
		return "          <a:prstGeom prst=\"ellipse\">\n            <a:avLst/>\n          </a:prstGeom>\n"
	case radius > 0 && math.Min(w, h) > 0:
		adj := int64(math.Round(radius / math.Min(w, h) * 100000))
		if adj > 50000 {
			adj = 50000
		}
		return fmt.Sprintf("          <a:prstGeom prst=\"roundRect\">\n            <a:avLst>\n              <a:gd name=\"adj\" fmla=\"val %d\"/>\n            </a:avLst>\n          </a:prstGeom>\n", adj)
	default:
		return "          <a:prstGeom prst=\"rect\">\n            <a:avLst/>\n          </a:prstGeom>\n"
	}
}

// --- Rectangle / ellipse XML ---

func (w *PPTXWriter) writeRectXML(s *RectNode, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := s.name
	if name == "" {
		if s.ellipse {
			name = fmt.Sprintf("Oval %d", id)
		} else {
			name = fmt.Sprintf("Rectangle %d", id)
		}
	}

	fillXML := "          <a:noFill/>\n"
	if len(s.fills) > 0 {
		// DrawingML has one fill per shape; the topmost paint wins.
		fillXML = writePaintXML(s.fills[len(s.fills)-1], s.opacity)
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
%s%s%s%s%s        </p:spPr>
      </p:sp>
`, id, xmlEscape(name),
		xfrmXML(&s.BaseNode),
		prstGeomXML(s.ellipse, s.cornerRadius, s.width, s.height),
		fillXML, writeStrokeXML(&s.BaseNode), writeShadowXML(s.shadow))
}

// --- Line XML ---

func (w *PPTXWriter) writeLineXML(s *LineNode, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := s.name
	if name == "" {
		name = fmt.Sprintf("Connector %d", id)
	}

	return fmt.Sprintf(`      <p:cxnSp>
        <p:nvCxnSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvCxnSpPr/>
          <p:nvPr/>
        </p:nvCxnSpPr>
        <p:spPr>
%s          <a:prstGeom prst="line">
            <a:avLst/>
          </a:prstGeom>
%s        </p:spPr>
      </p:cxnSp>
`, id, xmlEscape(name), xfrmXML(&s.BaseNode), writeStrokeXML(&s.BaseNode))
}

// --- Text XML ---

func (w *PPTXWriter) writeTextXML(s *TextNode, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := s.name
	if name == "" {
		name = fmt.Sprintf("TextBox %d", id)
	}

	fill := SolidPaint(ColorBlack, 1)
	if len(s.fills) > 0 {
		fill = s.fills[0]
	}

	attrs := fmt.Sprintf(` lang="en-US" sz="%d" dirty="0"`, int64(math.Round(PixelToPoint(s.fontSize)*100)))
	if s.font.IsBold() {
		attrs += ` b="1"`
	}
	if s.font.IsItalic() {
		attrs += ` i="1"`
	}
	if s.letterSpacing != 0 {
		attrs += fmt.Sprintf(` spc="%d"`, int64(math.Round(PixelToPoint(s.letterSpacing)*100)))
	}

	runProps := fmt.Sprintf(`
              <a:rPr%s>
                <a:solidFill>%s</a:solidFill>
                <a:latin typeface="%s"/>
              </a:rPr>`, attrs, srgbXML(fill.Color, fill.Opacity*s.opacity), xmlEscape(s.font.Family))

	lnSpc := int64(math.Round(PixelToPoint(s.GetLineHeight()) * 100))
	var paragraphsXML strings.Builder
	for _, line := range strings.Split(s.characters, "\n") {
		run := ""
		if line != "" {
			run = fmt.Sprintf(`
            <a:r>%s
              <a:t>%s</a:t>
            </a:r>`, runProps, xmlEscape(line))
		}
		fmt.Fprintf(&paragraphsXML, `          <a:p>
            <a:pPr algn="%s">
              <a:lnSpc><a:spcPts val="%d"/></a:lnSpc>
            </a:pPr>%s
            <a:endParaRPr lang="en-US" sz="%d" dirty="0"/>
          </a:p>
`, s.align, lnSpc, run, int64(math.Round(PixelToPoint(s.fontSize)*100)))
	}

	autofit := ""
	if s.autoHeight {
		autofit = "<a:spAutoFit/>"
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
%s          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
          <a:noFill/>
        </p:spPr>
        <p:txBody>
          <a:bodyPr wrap="square" lIns="0" tIns="0" rIns="0" bIns="0" anchor="t">%s</a:bodyPr>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, id, xmlEscape(name), xfrmXML(&s.BaseNode), autofit, paragraphsXML.String())
}

// --- Picture XML ---

func (w *PPTXWriter) writePictureXML(s *ImageNode, shapeID *int, relIdx int) string {
	id := *shapeID
	*shapeID++

	name := s.name
	if name == "" {
		name = fmt.Sprintf("Picture %d", id)
	}

	alphaXML := ""
	if s.opacity < 1 {
		alphaXML = fmt.Sprintf(`
            <a:alphaModFix amt="%d"/>`, int64(math.Round(s.opacity*100000)))
	}

	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvPicPr>
            <a:picLocks noChangeAspect="1"/>
          </p:cNvPicPr>
          <p:nvPr/>
        </p:nvPicPr>
        <p:blipFill>
          <a:blip r:embed="rId%d">%s
          </a:blip>
%s        </p:blipFill>
        <p:spPr>
%s%s%s        </p:spPr>
      </p:pic>
`, id, xmlEscape(name), relIdx, alphaXML,
		imageCropXML(s),
		xfrmXML(&s.BaseNode),
		prstGeomXML(false, s.cornerRadius, s.width, s.height),
		writeShadowXML(s.shadow))
}

// imageCropXML maps the scale mode onto blipFill geometry. Fill crops the
// overflow with srcRect, Fit insets the stretch rectangle, Stretch does neither.
func imageCropXML(s *ImageNode) string {
	const stretch = "          <a:stretch>\n            <a:fillRect/>\n          </a:stretch>\n"
	pw, ph := float64(s.pixelWidth), float64(s.pixelHeight)
	if pw <= 0 || ph <= 0 || s.width <= 0 || s.height <= 0 || s.scaleMode == ScaleStretch {
		return stretch
	}
	imgAR := pw / ph
	boxAR := s.width / s.height
	if math.Abs(imgAR-boxAR) < 1e-6 {
		return stretch
	}

	switch s.scaleMode {
	case ScaleFit:
		if imgAR > boxAR {
			inset := int64(math.Round((1 - boxAR/imgAR) / 2 * 100000))
			return fmt.Sprintf("          <a:stretch>\n            <a:fillRect t=\"%d\" b=\"%d\"/>\n          </a:stretch>\n", inset, inset)
		}
		inset := int64(math.Round((1 - imgAR/boxAR) / 2 * 100000))
		return fmt.Sprintf("          <a:stretch>\n            <a:fillRect l=\"%d\" r=\"%d\"/>\n          </a:stretch>\n", inset, inset)
	default:
		if imgAR > boxAR {
			crop := int64(math.Round((1 - boxAR/imgAR) / 2 * 100000))
			return fmt.Sprintf("          <a:srcRect l=\"%d\" r=\"%d\"/>\n%s", crop, crop, stretch)
		}
		crop := int64(math.Round((1 - imgAR/boxAR) / 2 * 100000))
		return fmt.Sprintf("          <a:srcRect t=\"%d\" b=\"%d\"/>\n%s", crop, crop, stretch)
	}
}

// --- Paint XML ---

func srgbXML(c Color, opacity float64) string {
	if opacity >= 1 {
		return fmt.Sprintf(`<a:srgbClr val="%s"/>`, c.Hex())
	}
	return fmt.Sprintf(`<a:srgbClr val="%s"><a:alpha val="%d"/></a:srgbClr>`, c.Hex(), int64(math.Round(clampUnit(opacity)*100000)))
}

// writePaintXML writes a fill element. opacity multiplies the paint and stop opacities.
func writePaintXML(p Paint, opacity float64) string {
	switch p.Type {
	case PaintLinearGradient, PaintRadialGradient:
		var stops strings.Builder
		for _, s := range p.Stops {
			fmt.Fprintf(&stops, "              <a:gs pos=\"%d\">%s</a:gs>\n",
				int64(math.Round(clampUnit(s.Position)*100000)), srgbXML(s.Color, s.Opacity*p.Opacity*opacity))
		}
		shade := fmt.Sprintf("            <a:lin ang=\"%d\" scaled=\"0\"/>\n", int64(math.Round(p.Angle*60000)))
		if p.Type == PaintRadialGradient {
			l := int64(math.Round(clampUnit(p.CenterX) * 100000))
			t := int64(math.Round(clampUnit(p.CenterY) * 100000))
			shade = fmt.Sprintf("            <a:path path=\"circle\">\n              <a:fillToRect l=\"%d\" t=\"%d\" r=\"%d\" b=\"%d\"/>\n            </a:path>\n",
				l, t, 100000-l, 100000-t)
		}
		return fmt.Sprintf(`          <a:gradFill rotWithShape="1">
            <a:gsLst>
%s            </a:gsLst>
%s          </a:gradFill>
`, stops.String(), shade)
	default:
		return fmt.Sprintf("          <a:solidFill>%s</a:solidFill>\n", srgbXML(p.Color, p.Opacity*opacity))
	}
}

func writeStrokeXML(b *BaseNode) string {
	if len(b.strokes) == 0 || b.strokeWeight <= 0 {
		return "          <a:ln>\n            <a:noFill/>\n          </a:ln>\n"
	}
	p := b.strokes[len(b.strokes)-1]
	return fmt.Sprintf("          <a:ln w=\"%d\">\n            <a:solidFill>%s</a:solidFill>\n          </a:ln>\n",
		PixelToEMU(b.strokeWeight), srgbXML(p.Color, p.Opacity*b.opacity))
}

func writeShadowXML(s *DropShadow) string {
	if s == nil {
		return ""
	}
	dist := math.Hypot(s.OffsetX, s.OffsetY)
	dir := math.Atan2(s.OffsetY, s.OffsetX) * 180 / math.Pi
	if dir < 0 {
		dir += 360
	}
	return fmt.Sprintf(`          <a:effectLst>
            <a:outerShdw blurRad="%d" dist="%d" dir="%d" algn="ctr" rotWithShape="0">
              %s
            </a:outerShdw>
          </a:effectLst>
`, PixelToEMU(s.Radius), PixelToEMU(dist), int64(math.Round(dir*60000)), srgbXML(s.Color, s.Alpha))
}

// --- Media ---

func (w *PPTXWriter) writeMedia(zw *zip.Writer) error {
	for _, m := range w.media {
		fw, err := zw.Create(fmt.Sprintf("ppt/media/image%d.%s", m.index, m.ext))
		if err != nil {
			return err
		}
		if _, err := fw.Write(m.node.data); err != nil {
			return err
		}
	}
	return nil
}

// --- Notes ---

func (w *PPTXWriter) writeNotesSlide(zw *zip.Writer, f *Frame, slideNum int) error {
	var paras strings.Builder
	for _, line := range strings.Split(f.notes, "\n") {
		fmt.Fprintf(&paras, `          <a:p>
            <a:r>
              <a:rPr lang="en-US" dirty="0"/>
              <a:t>%s</a:t>
            </a:r>
          </a:p>
`, xmlEscape(line))
	}

	content := fmt.Sprintf(xmlDecl+`<p:notes xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="2" name="Notes Placeholder"/>
          <p:cNvSpPr>
            <a:spLocks noGrp="1"/>
          </p:cNvSpPr>
          <p:nvPr>
            <p:ph type="body" idx="1"/>
          </p:nvPr>
        </p:nvSpPr>
        <p:spPr/>
        <p:txBody>
          <a:bodyPr/>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:notes>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, paras.String())

	if err := writeRawXMLToZip(zw, fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", slideNum), content); err != nil {
		return err
	}

	rels := fmt.Sprintf(xmlDecl+`<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="../slides/slide%d.xml"/>
</Relationships>`, nsRelationships, relTypeSlide, slideNum)
	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", slideNum), rels)
}
