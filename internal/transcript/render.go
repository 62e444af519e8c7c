package transcript

import (
	"fmt"
	"strings"

	"github.com/patrickprogramme/ytscribe/pkg/model"
)

// emptyMarker : ligne explicite rendue quand aucun paragraphe n'existe.
// Les appelants ne doivent jamais recevoir un document sans ce marqueur
// lorsque les captions sont absentes.
const emptyMarker = "*No transcript available for this video.*"

// NewDocument assemble l'artefact terminal du pipeline.
func NewDocument(meta *model.Meta, paragraphs []model.Paragraph, withTimestamps bool) model.Document {
	return model.Document{
		Title:          meta.Title,
		VideoID:        meta.ID,
		Paragraphs:     paragraphs,
		WithTimestamps: withTimestamps,
	}
}

// RenderMarkdown produit la forme textuelle du document : titre, bloc de
// métadonnées, séparateur, puis un bloc par paragraphe. Avec timestamps,
// chaque paragraphe est préfixé de son ancre au format H:MM:SS.
func RenderMarkdown(doc model.Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "**Video ID:** %s  \n", doc.VideoID)
	fmt.Fprintf(&b, "**YouTube URL:** %s\n\n", doc.VideoID.WatchURL())
	b.WriteString("---\n\n")

	if doc.IsEmpty() {
		b.WriteString(emptyMarker + "\n")
		return b.String()
	}

	for _, p := range doc.Paragraphs {
		if doc.WithTimestamps {
			fmt.Fprintf(&b, "**[%s]** %s\n\n", p.Start.Timestamp(), p.Text)
		} else {
			fmt.Fprintf(&b, "%s\n\n", p.Text)
		}
	}
	return b.String()
}

const (
	// maxSummaryInput : plafond de caractères envoyé au service de résumé.
	maxSummaryInput = 50000
	// truncationMarker signale explicitement la coupe.
	truncationMarker = "... [transcript truncated for summarization]"
)

// TruncateForSummary borne le texte à maxSummaryInput runes et appose le
// marqueur de troncature quand la limite est dépassée.
func TruncateForSummary(text string) string {
	runes := []rune(text)
	if len(runes) <= maxSummaryInput {
		return text
	}
	return string(runes[:maxSummaryInput]) + truncationMarker
}
