// Package transcript fusionne les cues décodés en paragraphes de prose puis
// rend le document final. La segmentation est heuristique (ponctuation +
// longueur bornée), pas linguistique.
package transcript

import (
	"strings"
	"unicode/utf8"

	"github.com/patrickprogramme/ytscribe/internal/language"
	"github.com/patrickprogramme/ytscribe/pkg/model"
)

// maxParagraphLen borne la taille de l'accumulateur : les captions
// auto-générées peuvent rester sans ponctuation terminale très longtemps.
const maxParagraphLen = 500

// terminators : fins de phrase latines et leurs équivalents pleine chasse.
var terminators = []string{".", "!", "?", "。", "！", "？"}

// endsWithTerminator indique si le texte se clôt sur une ponctuation de fin
// de phrase. Un paragraphe fermé par la borne de longueur peut très bien ne
// pas en avoir : comportement assumé, conservé pour la compatibilité de
// sortie.
func endsWithTerminator(text string) bool {
	for _, t := range terminators {
		if strings.HasSuffix(text, t) {
			return true
		}
	}
	return false
}

// cleanup applique le nettoyage propre à la langue. Pour l'anglais c'est un
// simple trim ; pour le japonais, tags musicaux et espaces parasites en plus.
// Idempotent dans les deux cas.
func cleanup(text string, lang language.Lang) string {
	if lang == language.Japanese {
		return language.CleanJapanese(text)
	}
	return strings.TrimSpace(text)
}

// BuildParagraphs fusionne les cues, dans l'ordre, en paragraphes :
//   - les cues au texte vide (après trim, puis après nettoyage japonais)
//     sont écartés ;
//   - l'ancre du paragraphe est le start du premier cue fusionné ;
//   - le paragraphe se ferme quand le texte du cue qui vient d'être ajouté
//     se termine par une ponctuation de fin de phrase, ou quand
//     l'accumulateur dépasse maxParagraphLen runes ;
//   - le nettoyage est réappliqué à la fermeture (il est idempotent, mais la
//     fusion peut recréer des points de coupe à recoller) ;
//   - le reliquat final est émis sauf si le nettoyage le vide.
//
// Ne retourne jamais d'erreur : le nettoyage ne fait que réduire le texte.
func BuildParagraphs(cues []model.Cue, lang language.Lang) []model.Paragraph {
	var out []model.Paragraph

	var sb strings.Builder
	var anchor model.Seconds
	anchorSet := false

	commit := func() {
		text := cleanup(sb.String(), lang)
		if text != "" {
			out = append(out, model.Paragraph{Start: anchor, Text: text})
		}
		sb.Reset()
		anchorSet = false
	}

	for _, cue := range cues {
		text := strings.TrimSpace(cue.Text)
		if text == "" {
			continue
		}
		if lang == language.Japanese {
			text = language.CleanJapanese(text)
			if text == "" {
				continue
			}
		}

		if !anchorSet {
			anchor = cue.StartSeconds()
			anchorSet = true
		}
		sb.WriteString(text)
		sb.WriteByte(' ')

		if endsWithTerminator(text) || utf8.RuneCountInString(sb.String()) > maxParagraphLen {
			commit()
		}
	}

	// reliquat : émis seulement s'il survit au nettoyage
	if strings.TrimSpace(sb.String()) != "" {
		commit()
	}
	return out
}
