package model

import (
	"fmt"
	"regexp"
)

// videoIDRe : exactement 11 caractères alphanumériques, "-" ou "_".
var videoIDRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// VideoID identifie une vidéo sur la plateforme (token de 11 caractères).
// Immuable une fois résolu ; une entrée invalide ne produit pas de VideoID.
type VideoID string

// IsVideoID indique si s a la forme exacte d'un identifiant de vidéo.
func IsVideoID(s string) bool {
	return videoIDRe.MatchString(s)
}

// WatchURL reconstruit l'URL canonique de visionnage pour cet identifiant.
func (id VideoID) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + string(id)
}

func (id VideoID) String() string {
	return string(id)
}

// Meta regroupe les métadonnées d'une vidéo telles que fournies par le client
// plateforme (yt-dlp). Le coeur du pipeline ne fait aucune découverte
// lui-même : tout est déjà récupéré ici, sauf le payload de la piste choisie.
type Meta struct {
	ID                VideoID    `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Duration          Seconds    `json:"duration,omitempty"`
	Subtitles         CaptionSet `json:"subtitles,omitempty"`
	AutomaticCaptions CaptionSet `json:"automatic_captions,omitempty"`
}

// HasCaptions indique si au moins une piste existe, toutes sources confondues.
func (m Meta) HasCaptions() bool {
	return len(m.Subtitles) != 0 || len(m.AutomaticCaptions) != 0
}

func (m Meta) String() string {
	return fmt.Sprintf("Meta[ID=%s, Title=%q, Duration=%s, Manual=%d, Auto=%d]",
		m.ID, m.Title, m.Duration.Timestamp(),
		len(m.Subtitles), len(m.AutomaticCaptions))
}

// Selection identifie la piste retenue par le sélecteur : provenance + langue.
// Sert au labelling aval ("Manual (en)", "Auto-generated (ja)").
type Selection struct {
	Source SubSource `json:"source"`
	Lang   string    `json:"lang"`
}

func (s Selection) String() string {
	return fmt.Sprintf("%s (%s)", s.Source, s.Lang)
}
