// Package export renders the transcript and summary as a Word document.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/live-summary/internal/transcript"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

// Notes is the content of one exported document.
type Notes struct {
	Title       string
	GeneratedAt time.Time
	Summary     string
	Utterances  []transcript.Utterance
}

// WriteNotes saves notes as a .docx file at path.
func WriteNotes(path string, notes Notes) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), notes.Title, true, 16)
	addStyledRun(doc.AddParagraph(""), notes.GeneratedAt.Format("2006-01-02 15:04"), false, fontSize)

	addStyledRun(doc.AddParagraph(""), "Summary", true, 15)
	writeMarkdown(doc, notes.Summary)

	addStyledRun(doc.AddParagraph(""), "Transcript", true, 15)
	if len(notes.Utterances) == 0 {
		addStyledRun(doc.AddParagraph(""), "No utterances recorded.", false, fontSize)
	}
	for _, u := range notes.Utterances {
		p := doc.AddParagraph("")
		p.AddText(u.RecordedAt.Format("15:04:05") + " ").Font(fontName).Size(fontSize).Color("555555")
		p.AddText(u.Speaker + ": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
		p.AddText(u.Text).Font(fontName).Size(fontSize).Color("000000")
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// writeMarkdown renders the light markdown model backends tend to produce.
func writeMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
