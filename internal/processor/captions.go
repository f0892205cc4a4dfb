package processor

import (
	"regexp"
	"strings"
)

const maxSpeakerLen = 40

var (
	reSrtTime  = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}`)
	reSrtIndex = regexp.MustCompile(`^\d+$`)
)

type captionLine struct {
	lineNo  int
	speaker string
	text    string
}

// parseCaptions turns "Speaker: text" lines into captions. Lines without a
// speaker prefix get defaultSpeaker. For .srt files sequence numbers and
// timestamps are dropped.
func parseCaptions(content, ext, defaultSpeaker string) []captionLine {
	srt := strings.EqualFold(ext, ".srt")

	var out []captionLine
	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if srt && (reSrtIndex.MatchString(line) || reSrtTime.MatchString(line)) {
			continue
		}

		speaker, text := defaultSpeaker, line
		if idx := strings.Index(line, ":"); idx > 0 && idx <= maxSpeakerLen {
			speaker = strings.TrimSpace(line[:idx])
			text = strings.TrimSpace(line[idx+1:])
		}
		out = append(out, captionLine{lineNo: i + 1, speaker: speaker, text: text})
	}
	return out
}
