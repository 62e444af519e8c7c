package model

// Document est l'artefact terminal du pipeline : la suite ordonnée de
// paragraphes, plus le minimum de métadonnées pour rendre un en-tête.
// Produit une fois par requête, jamais modifié ensuite.
type Document struct {
	Title          string      `json:"title"`
	VideoID        VideoID     `json:"video_id"`
	Paragraphs     []Paragraph `json:"paragraphs"`
	WithTimestamps bool        `json:"with_timestamps"`
}

// IsEmpty indique qu'aucun paragraphe n'a survécu à la segmentation.
// Le renderer émet alors le marqueur explicite "no transcript".
func (d Document) IsEmpty() bool {
	return len(d.Paragraphs) == 0
}
