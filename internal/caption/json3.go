package caption

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/patrickprogramme/ytscribe/pkg/model"
)

// rawJSON3 représente la structure "brute" du format json3 de YouTube.
// Seuls les champs utiles sont mappés, le reste est ignoré proprement.
type rawJSON3 struct {
	Events []rawEvent `json:"events"`
}

type rawEvent struct {
	TStartMs    int64    `json:"tStartMs"`
	DDurationMs int64    `json:"dDurationMs"`
	Segs        []rawSeg `json:"segs"`
	// wpWinPosId, wWinId, etc. volontairement ignorés
}

type rawSeg struct {
	Utf8 string `json:"utf8"`
}

type json3Decoder struct{}

// Decode : chaque event porteur de segs produit un cue. Start et durée sont
// convertis de millisecondes en secondes ; le texte est la concaténation des
// segs, trimée. Events sans segs et textes vides sont écartés.
func (json3Decoder) Decode(data []byte) ([]model.Cue, error) {
	var raw rawJSON3
	dec := json.NewDecoder(bytes.NewReader(data))
	// pas de DisallowUnknownFields : le json3 réel est truffé de champs
	// qu'on ne mappe pas et qu'on veut ignorer sans bruit.
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: json3: %v", ErrMalformed, err)
	}

	var cues []model.Cue
	for _, ev := range raw.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var sb strings.Builder
		for _, seg := range ev.Segs {
			sb.WriteString(seg.Utf8)
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		cues = append(cues, model.Cue{
			Text:     text,
			Start:    float64(ev.TStartMs) / 1000.0,
			Duration: float64(ev.DDurationMs) / 1000.0,
		})
	}
	return cues, nil
}
