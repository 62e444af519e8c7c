package ytdlp

import "fmt"

// subtitleItem : une variante de piste telle que listée par yt-dlp.
type subtitleItem struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// dumpOutput représente la sortie JSON brute de `yt-dlp -J` pour une vidéo.
//
// Subtitles et AutomaticCaptions sont des maps où :
//   - la clé (string) est le code langue de la piste (ex. "en", "ja", "en-US") ;
//   - la valeur liste toutes les variantes disponibles pour cette langue
//     (une par format), chacune avec son extension et son URL de
//     téléchargement.
type dumpOutput struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	Description       string                    `json:"description"`
	Duration          float64                   `json:"duration"`
	Subtitles         map[string][]subtitleItem `json:"subtitles"`
	AutomaticCaptions map[string][]subtitleItem `json:"automatic_captions"`
}

// ExtractedRaw contient le JSON brut et les lignes d'avertissement que
// yt-dlp a mêlées à sa sortie.
type ExtractedRaw struct {
	JSON     []byte
	Warnings []string
}

// PrintWarnings affiche les avertissements de yt-dlp sur stdout.
func (r *ExtractedRaw) PrintWarnings() {
	if len(r.Warnings) == 0 {
		return
	}
	fmt.Println("⚠️  Avertissements yt-dlp :")
	for _, w := range r.Warnings {
		fmt.Printf("  - %s\n", w)
	}
}
