package caption

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/patrickprogramme/ytscribe/pkg/model"
)

// tagRe : balises inline (<b>, <c.colorE5E5E5>, <00:00:01.240>, ...) à
// retirer du texte des cues.
var tagRe = regexp.MustCompile(`<[^>]+>`)

type vttDecoder struct{}

// Decode : format ligne à ligne. Une ligne contenant la flèche "-->" ouvre un
// cue ; sa partie gauche est le timestamp de début, les lignes non vides qui
// suivent forment le texte (jointes par des espaces), jusqu'à une ligne vide.
// La durée n'est pas dérivable de ce format : toujours 0.
func (vttDecoder) Decode(data []byte) ([]model.Cue, error) {
	lines := strings.Split(string(data), "\n")

	var cues []model.Cue
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if strings.Contains(line, "-->") {
			startRaw, _, _ := strings.Cut(line, "-->")
			start, err := parseVTTTime(strings.TrimSpace(startRaw))
			if err != nil {
				return nil, fmt.Errorf("%w: vtt: %v", ErrMalformed, err)
			}

			// texte : les lignes non vides suivantes
			i++
			var parts []string
			for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
				parts = append(parts, strings.TrimSpace(lines[i]))
				i++
			}

			text := tagRe.ReplaceAllString(strings.Join(parts, " "), "")
			text = strings.TrimSpace(text)
			if text != "" {
				cues = append(cues, model.Cue{Text: text, Start: float64(start)})
			}
		}
		i++
	}
	return cues, nil
}

// parseVTTTime convertit "H:MM:SS.mmm" ou "MM:SS.mmm" en secondes entières.
// La précision sous la seconde est volontairement écartée.
func parseVTTTime(ts string) (int64, error) {
	// couper la partie millisecondes si présente
	ts, _, _ = strings.Cut(ts, ".")

	parts := strings.Split(ts, ":")
	nums := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("bad timestamp %q: %w", ts, err)
		}
		nums = append(nums, n)
	}

	switch len(nums) {
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2], nil
	case 2:
		return nums[0]*60 + nums[1], nil
	case 1:
		return nums[0], nil
	default:
		return 0, fmt.Errorf("bad timestamp %q", ts)
	}
}
