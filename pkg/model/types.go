package model

import "fmt"

// Seconds est un alias explicite pour représenter un instant en secondes.
type Seconds int64

// Timestamp formate Seconds en "H:MM:SS" : les heures ne sont pas complétées
// par des zéros, minutes et secondes le sont toujours.
// Exemple : 65 -> "0:01:05", 3661 -> "1:01:01".
func (s Seconds) Timestamp() string {
	total := int64(s)
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
}

// constantes pour les formats de pistes de sous-titres
type Format string

const (
	FormatJSON3 Format = "json3"
	FormatVTT   Format = "vtt"
	FormatSRV1  Format = "srv1"
)

// ParseFormat convertit l'extension annoncée par yt-dlp en constante Format.
// Retourne false pour tout format qu'on ne sait pas décoder.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "json3":
		return FormatJSON3, true
	case "vtt":
		return FormatVTT, true
	case "srv1":
		return FormatSRV1, true
	default:
		return "", false
	}
}

func (f Format) String() string {
	return string(f)
}

// SubSource représente la provenance d'une piste de sous-titres.
// automatic = généré automatiquement par Youtube
// manual = fourni par l'auteur de la vidéo
type SubSource string

const (
	SubSourceAutomatic SubSource = "automatic"
	SubSourceManual    SubSource = "manual"
)

func (s SubSource) String() string {
	switch s {
	case SubSourceAutomatic:
		return "Auto-generated"
	case SubSourceManual:
		return "Manual"
	default:
		return "Unknown"
	}
}

// Track décrit une variante (format + URL) d'une piste de sous-titres.
// La langue n'est pas portée ici : elle sert de clé dans le CaptionSet.
type Track struct {
	Format Format `json:"format,omitempty"`
	URL    string `json:"url,omitempty"`
}

// CaptionSet : toutes les pistes disponibles pour une source donnée,
// indexées par code langue ("en", "ja", "en-US", ...). Chaque langue peut
// exister en plusieurs formats.
type CaptionSet map[string][]Track

// Cue est l'unité de base d'un sous-titre décodé : un texte horodaté.
// Start et Duration sont en secondes (fractions autorisées) ; Duration vaut 0
// quand le format source ne la fournit pas (cas du VTT).
type Cue struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// StartSeconds retourne le début du cue en secondes entières.
func (c Cue) StartSeconds() Seconds {
	return Seconds(int64(c.Start))
}

// Paragraph est le résultat de la fusion de Cues consécutifs : un bloc de
// prose avec, comme ancre, le timestamp du premier cue fusionné.
type Paragraph struct {
	Start Seconds `json:"start"`
	Text  string  `json:"text"`
}
