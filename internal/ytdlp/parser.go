package ytdlp

import (
	"encoding/json"
	"fmt"

	"github.com/patrickprogramme/ytscribe/pkg/model"
)

// ParseDump transforme le JSON brut de yt-dlp en model.Meta.
// Les variantes dont le format n'est pas décodable (ttml, srv2, m3u8...)
// sont écartées ici : le sélecteur aval ne voit que du décodable.
func ParseDump(raw []byte) (*model.Meta, error) {
	var d dumpOutput
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("unmarshal yt-dlp output: %w", err)
	}

	meta := &model.Meta{
		ID:                model.VideoID(d.ID),
		Title:             d.Title,
		Description:       d.Description,
		Duration:          model.Seconds(int64(d.Duration)),
		Subtitles:         captionSet(d.Subtitles),
		AutomaticCaptions: captionSet(d.AutomaticCaptions),
	}
	return meta, nil
}

// captionSet convertit une map yt-dlp en CaptionSet, en ne gardant que les
// variantes à format supporté et URL non vide. Les langues qui n'ont plus
// aucune variante après filtrage disparaissent de la map.
func captionSet(src map[string][]subtitleItem) model.CaptionSet {
	if len(src) == 0 {
		return nil
	}
	out := model.CaptionSet{}
	for lang, items := range src {
		var tracks []model.Track
		for _, it := range items {
			f, ok := model.ParseFormat(it.Ext)
			if !ok || it.URL == "" {
				continue
			}
			tracks = append(tracks, model.Track{Format: f, URL: it.URL})
		}
		if len(tracks) > 0 {
			out[lang] = tracks
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
