package caption

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/patrickprogramme/ytscribe/pkg/model"
)

// srvTranscript : le srv1 est une liste plate d'éléments <text> sous une
// racine <transcript>.
type srvTranscript struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []srvText `xml:"text"`
}

type srvText struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Body  string `xml:",chardata"`
}

type srv1Decoder struct{}

// Decode : chaque élément <text> avec un contenu non vide devient un cue.
// start et dur sont des secondes fractionnaires ; un attribut absent vaut 0,
// un attribut non numérique rend le payload invalide.
func (srv1Decoder) Decode(data []byte) ([]model.Cue, error) {
	var doc srvTranscript
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: srv1: %v", ErrMalformed, err)
	}

	var cues []model.Cue
	for _, el := range doc.Texts {
		start, err := parseAttrSeconds(el.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: srv1: %v", ErrMalformed, err)
		}
		dur, err := parseAttrSeconds(el.Dur)
		if err != nil {
			return nil, fmt.Errorf("%w: srv1: %v", ErrMalformed, err)
		}

		text := strings.TrimSpace(el.Body)
		if text == "" {
			continue
		}
		cues = append(cues, model.Cue{Text: text, Start: start, Duration: dur})
	}
	return cues, nil
}

// parseAttrSeconds : attribut numérique optionnel, absent -> 0.
func parseAttrSeconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad numeric attribute %q: %w", s, err)
	}
	return v, nil
}
