// Package tracks choisit, de façon déterministe, UNE piste de sous-titres
// parmi les ensembles manuel et automatique d'une vidéo.
package tracks

import (
	"errors"
	"sort"

	xlang "golang.org/x/text/language"

	"github.com/patrickprogramme/ytscribe/internal/language"
	"github.com/patrickprogramme/ytscribe/pkg/model"
)

// ErrNoCaptions : aucune piste disponible, ni manuelle ni automatique.
// Distinct d'un échec de décodage : ici les captions n'existent pas.
var ErrNoCaptions = errors.New("no caption track available")

// Result : la liste de variantes retenue + sa provenance pour le labelling.
type Result struct {
	Tracks    []model.Track
	Selection model.Selection
}

// priorityList construit l'ordre de préférence des codes langue.
// La langue détectée passe en tête avec sa variante régionale, l'autre
// locale supportée suit avec les siennes.
func priorityList(detected language.Lang) []string {
	if detected == language.Japanese {
		return []string{"ja", "ja-JP", "en", "en-US", "en-GB"}
	}
	return []string{"en", "en-US", "en-GB", "ja", "ja-JP"}
}

// Select parcourt la liste de priorité d'abord contre les pistes manuelles
// (premier match gagnant), puis contre les automatiques. Si aucun code
// préféré ne matche, repli sur la première clé du set manuel puis du set
// automatique ; les clés sont triées pour rendre le repli déterministe
// malgré l'ordre d'itération aléatoire des maps Go.
func Select(manual, auto model.CaptionSet, detected language.Lang) (Result, error) {
	prefs := priorityList(detected)

	if lang, ts := lookup(manual, prefs); ts != nil {
		return Result{Tracks: ts, Selection: model.Selection{Source: model.SubSourceManual, Lang: lang}}, nil
	}
	if lang, ts := lookup(auto, prefs); ts != nil {
		return Result{Tracks: ts, Selection: model.Selection{Source: model.SubSourceAutomatic, Lang: lang}}, nil
	}

	// repli : n'importe quelle langue, manuel d'abord
	if lang, ts := first(manual); ts != nil {
		return Result{Tracks: ts, Selection: model.Selection{Source: model.SubSourceManual, Lang: lang}}, nil
	}
	if lang, ts := first(auto); ts != nil {
		return Result{Tracks: ts, Selection: model.Selection{Source: model.SubSourceAutomatic, Lang: lang}}, nil
	}

	return Result{}, ErrNoCaptions
}

// lookup cherche chaque code préféré dans set : d'abord par clé exacte,
// sinon par équivalence canonique ("en-us" vaut "en-US"). Retourne la clé
// réellement présente dans le set, pas le code préféré.
func lookup(set model.CaptionSet, prefs []string) (string, []model.Track) {
	if len(set) == 0 {
		return "", nil
	}
	for _, code := range prefs {
		if ts, ok := set[code]; ok && len(ts) > 0 {
			return code, ts
		}
		for _, key := range sortedKeys(set) {
			if sameTag(key, code) && len(set[key]) > 0 {
				return key, set[key]
			}
		}
	}
	return "", nil
}

// first retourne la première langue du set (clés triées) qui a des variantes.
func first(set model.CaptionSet) (string, []model.Track) {
	for _, key := range sortedKeys(set) {
		if ts := set[key]; len(ts) > 0 {
			return key, ts
		}
	}
	return "", nil
}

func sortedKeys(set model.CaptionSet) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sameTag compare deux codes après canonicalisation BCP 47.
// Codes invalides -> jamais équivalents (la comparaison exacte a déjà eu lieu).
func sameTag(a, b string) bool {
	ta, errA := xlang.Parse(a)
	tb, errB := xlang.Parse(b)
	return errA == nil && errB == nil && ta == tb
}
