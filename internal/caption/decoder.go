// Package caption décode le payload brut d'une piste de sous-titres en une
// suite ordonnée de Cues. Trois formats sont supportés (json3, vtt, srv1),
// chacun derrière la même capacité Decoder ; une table format -> décodeur
// remplace tout branchement sur le tag de format.
package caption

import (
	"errors"

	"github.com/patrickprogramme/ytscribe/pkg/model"
)

var (
	// ErrNoSuitableFormat : la liste de variantes ne contient aucun format
	// décodable. Les captions existent mais on ne sait pas les lire.
	ErrNoSuitableFormat = errors.New("no suitable caption format")

	// ErrMalformed : payload illisible pour le format choisi. Pas de repli
	// vers un autre format, le choix encode déjà l'ordre de préférence.
	ErrMalformed = errors.New("malformed caption payload")
)

// Decoder transforme le texte brut d'une piste en Cues.
// Contrat commun : échec propre (erreur, zéro cue), jamais de cues partiels.
type Decoder interface {
	Decode(data []byte) ([]model.Cue, error)
}

// decoders : la table format -> décodeur. Tout tag absent est non supporté.
var decoders = map[model.Format]Decoder{
	model.FormatJSON3: json3Decoder{},
	model.FormatVTT:   vttDecoder{},
	model.FormatSRV1:  srv1Decoder{},
}

// ForFormat retourne le décodeur du format, ou false si non supporté.
func ForFormat(f model.Format) (Decoder, bool) {
	d, ok := decoders[f]
	return d, ok
}

// preference : ordre de choix parmi les variantes d'une même langue.
var preference = []model.Format{model.FormatJSON3, model.FormatVTT, model.FormatSRV1}

// PickTrack choisit la variante à télécharger parmi la liste de la langue
// retenue : json3 d'abord, sinon vtt, sinon srv1. Les autres tags sont
// ignorés. Retourne aussi le décodeur associé.
func PickTrack(variants []model.Track) (model.Track, Decoder, error) {
	for _, want := range preference {
		for _, t := range variants {
			if t.Format == want && t.URL != "" {
				d, ok := decoders[want]
				if !ok {
					continue
				}
				return t, d, nil
			}
		}
	}
	return model.Track{}, nil, ErrNoSuitableFormat
}
