package extractor

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Reader extracts the flattened playback model from PPTX containers.
// The zero value is usable; Logger defaults to a no-op logger.
type Reader struct {
	Logger zerolog.Logger
}

// NewReader creates a Reader with a silent logger.
func NewReader() *Reader {
	return &Reader{Logger: zerolog.Nop()}
}

// maxZipEntrySize is the maximum allowed size for a single file extracted
// from a ZIP. This prevents zip bomb attacks. 50 MB is generous for any
// legitimate PPTX part.
const maxZipEntrySize = 50 << 20 // 50 MB

// maxZipTotalSize is the limit for the whole archive.
const maxZipTotalSize = 200 << 20 // 200 MB

// maxZipEntries is the maximum number of files allowed in a ZIP archive.
const maxZipEntries = 10000

// nsRelationships is the OOXML relationships attribute namespace (r:id).
const nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

// Read reads a PPTX file from disk and builds the playback model.
func (r *Reader) Read(path string) (*Deck, *Warnings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	deck, warn, err := r.ReadFrom(f, info.Size())
	if err != nil {
		return nil, nil, err
	}
	deck.Source = filepath.Base(path)
	return deck, warn, nil
}

// ReadFrom reads a PPTX container from an io.ReaderAt and builds the
// playback model. The returned warnings hold every non-fatal issue
// recorded while flattening; no per-slide condition aborts the read.
func (r *Reader) ReadFrom(reader io.ReaderAt, size int64) (*Deck, *Warnings, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("invalid reader size: %d", size)
	}
	if size > int64(maxZipTotalSize) {
		return nil, nil, fmt.Errorf("file size %d exceeds maximum allowed (%d bytes)", size, maxZipTotalSize)
	}

	zr, err := zip.NewReader(reader, size)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open zip: %w", err)
	}
	if len(zr.File) > maxZipEntries {
		return nil, nil, fmt.Errorf("zip archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries)
	}

	pres, err := r.readPresentation(zr)
	if err != nil {
		return nil, nil, err
	}

	presRels, err := r.readRelationships(zr, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, nil, err
	}
	targetByRel := make(map[string]string, len(presRels))
	for _, rel := range presRels {
		// Targets may be package-absolute ("/ppt/slides/slide1.xml") or
		// relative to ppt/.
		target := strings.TrimPrefix(rel.Target, "/")
		if !strings.HasPrefix(target, "ppt/") {
			target = "ppt/" + target
		}
		targetByRel[rel.ID] = target
	}

	// Each slide part is parsed once; the main deck and custom shows
	// reference the same immutable SlideContent values.
	contentByRel := make(map[string]*SlideContent)
	readContent := func(relID string) (*SlideContent, error) {
		if content, ok := contentByRel[relID]; ok {
			return content, nil
		}
		target, ok := targetByRel[relID]
		if !ok {
			return nil, nil
		}
		content, err := r.readSlideContent(zr, target)
		if err != nil {
			return nil, fmt.Errorf("failed to read slide %s: %w", target, err)
		}
		contentByRel[relID] = content
		return content, nil
	}

	var mainContents []*SlideContent
	for _, relID := range pres.slideRelIDs {
		content, err := readContent(relID)
		if err != nil {
			return nil, nil, err
		}
		if content != nil {
			mainContents = append(mainContents, content)
		}
	}

	shows := make(map[int]*CustomShow, len(pres.customShows))
	for _, cs := range pres.customShows {
		show := &CustomShow{ID: cs.id, Name: cs.name}
		for _, relID := range cs.slideRelIDs {
			content, err := readContent(relID)
			if err != nil {
				return nil, nil, err
			}
			if content != nil {
				show.Slides = append(show.Slides, content)
			}
		}
		shows[cs.id] = show
	}

	warn := NewWarnings(r.Logger)
	builder := NewBuilder(shows, warn)
	deck := builder.BuildDeck(mainContents)
	deck.Width = float64(pres.width)
	deck.Height = float64(pres.height)
	deck.Title = r.readTitle(zr)
	return deck, warn, nil
}

// presentationInfo is the slice of ppt/presentation.xml the extractor needs:
// the ordered slide list, the slide size and the custom-show table.
type presentationInfo struct {
	slideRelIDs []string
	width       int64
	height      int64
	customShows []customShowInfo
}

type customShowInfo struct {
	id          int
	name        string
	slideRelIDs []string
}

type xmlPresentation struct {
	XMLName xml.Name `xml:"presentation"`
	SldIDs  []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
	SldSz struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
	CustShows []struct {
		Name string `xml:"name,attr"`
		ID   int    `xml:"id,attr"`
		Slds []struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sldLst>sld"`
	} `xml:"custShowLst>custShow"`
}

func (r *Reader) readPresentation(zr *zip.Reader) (*presentationInfo, error) {
	data, err := readFileFromZip(zr, "ppt/presentation.xml")
	if err != nil {
		return nil, fmt.Errorf("missing ppt/presentation.xml: %w", err)
	}

	var doc xmlPresentation
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse presentation.xml: %w", err)
	}

	info := &presentationInfo{
		width:  doc.SldSz.CX,
		height: doc.SldSz.CY,
	}
	for _, sld := range doc.SldIDs {
		info.slideRelIDs = append(info.slideRelIDs, sld.RID)
	}
	for _, cs := range doc.CustShows {
		show := customShowInfo{id: cs.ID, name: cs.Name}
		for _, sld := range cs.Slds {
			show.slideRelIDs = append(show.slideRelIDs, sld.RID)
		}
		info.customShows = append(info.customShows, show)
	}
	return info, nil
}

// readTitle pulls dc:title from docProps/core.xml. Missing properties are
// acceptable.
func (r *Reader) readTitle(zr *zip.Reader) string {
	data, err := readFileFromZip(zr, "docProps/core.xml")
	if err != nil {
		return ""
	}
	var core struct {
		XMLName xml.Name `xml:"coreProperties"`
		Title   string   `xml:"title"`
	}
	if err := xml.Unmarshal(data, &core); err != nil {
		return ""
	}
	return core.Title
}

func readFileFromZip(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		if f.UncompressedSize64 > maxZipEntrySize {
			return nil, fmt.Errorf("file %s exceeds maximum allowed size (%d bytes)", name, maxZipEntrySize)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in zip: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(io.LimitReader(rc, int64(maxZipEntrySize)+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s from zip: %w", name, err)
		}
		if int64(len(data)) > int64(maxZipEntrySize) {
			return nil, fmt.Errorf("file %s actual size exceeds maximum allowed size", name)
		}
		return data, nil
	}
	return nil, fmt.Errorf("file not found in zip: %s", name)
}

// --- Relationship reading ---

type xmlRel struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type xmlRels struct {
	XMLName       xml.Name `xml:"Relationships"`
	Relationships []xmlRel `xml:"Relationship"`
}

func (r *Reader) readRelationships(zr *zip.Reader, path string) ([]xmlRel, error) {
	data, err := readFileFromZip(zr, path)
	if err != nil {
		return nil, nil // relationships file may not exist
	}

	var rels xmlRels
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships %s: %w", path, err)
	}
	return rels.Relationships, nil
}
