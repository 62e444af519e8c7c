// Package language porte l'heuristique bi-locale du pipeline : détection
// anglais/japonais sur le titre, et nettoyage spécifique au japonais des
// textes de sous-titres (tags musicaux, espaces parasites entre caractères).
//
// Volontairement étroit : ce n'est PAS un identificateur de langue général.
// Les listes d'indicateurs et de tags font partie du contrat, les frontières
// de paragraphes en aval en dépendent.
package language

import (
	"strings"
	"unicode"
)

// Lang : les deux locales supportées.
type Lang string

const (
	English  Lang = "en"
	Japanese Lang = "ja"
)

// japaneseIndicators : particules et terminaisons à très haute fréquence.
// Recherche par sous-chaîne au niveau caractère, pas de tokenisation.
var japaneseIndicators = []string{
	"を", "は", "が", "に", "で", "と", "の",
	"です", "ます", "した", "する", "ある", "いる",
}

// musicTags : tags de musique/bruitage insérés par le générateur de captions,
// plus les glyphes de note. Supprimés intégralement au nettoyage.
var musicTags = []string{
	"[音楽]", "♪", "♫", "♬", "♩",
	"[拍手]", "[笑い]", "[笑]", "[音響効果]", "[効果音]",
}

// Detect analyse titre + description et retourne Japanese si au moins un
// indicateur y figure, English sinon. Appelée une seule fois par document,
// le résultat est réutilisé pour tout le traitement.
func Detect(title, description string) Lang {
	text := strings.ToLower(title + " " + description)
	for _, ind := range japaneseIndicators {
		if strings.Contains(text, ind) {
			return Japanese
		}
	}
	return English
}

// isJapaneseRune : hiragana, katakana ou idéogramme CJK unifié.
// Plages Unicode : 3040-309F, 30A0-30FF, 4E00-9FAF.
func isJapaneseRune(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) ||
		(r >= 0x30A0 && r <= 0x30FF) ||
		(r >= 0x4E00 && r <= 0x9FAF)
}

// CleanJapanese nettoie un texte de sous-titre japonais :
//  1. suppression des tags musicaux/bruitages et glyphes de note ;
//  2. suppression de tout blanc situé entre deux caractères japonais
//     (le générateur de captions coupe les mots avec des espaces parasites) ;
//  3. réduction des blancs restants à un espace simple, puis trim.
//
// Idempotente : réappliquer sur un texte déjà nettoyé ne change rien.
// Peut retourner "" ; l'appelant écarte alors le texte.
func CleanJapanese(text string) string {
	for _, tag := range musicTags {
		text = strings.ReplaceAll(text, tag, "")
	}

	text = collapseJapaneseSpacing(text)

	// normalisation des blancs restants (entre caractères non japonais)
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}

// collapseJapaneseSpacing supprime chaque suite de blancs dont le caractère
// qui précède ET celui qui suit sont japonais. Un seul passage suffit : on
// raisonne sur les voisins réels, pas sur des paires consommées, donc les
// chaînes "あ い う" sont entièrement recollées d'un coup.
func collapseJapaneseSpacing(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	i := 0
	for i < len(runes) {
		r := runes[i]
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
			i++
			continue
		}
		// début d'une suite de blancs : repérer sa fin
		j := i
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		prevIsJa := i > 0 && isJapaneseRune(runes[i-1])
		nextIsJa := j < len(runes) && isJapaneseRune(runes[j])
		if !(prevIsJa && nextIsJa) {
			// suite conservée telle quelle, Fields la normalisera ensuite
			b.WriteString(string(runes[i:j]))
		}
		i = j
	}
	return b.String()
}
