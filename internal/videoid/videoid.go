// Package videoid résout l'identifiant canonique d'une vidéo YouTube à partir
// d'une entrée hétérogène : URL complète, URL sans schéma, ou token nu.
// Fonction pure : même entrée, même sortie, aucune I/O.
package videoid

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/patrickprogramme/ytscribe/pkg/model"
)

// ErrNoVideoID : aucune extraction possible depuis l'entrée fournie.
var ErrNoVideoID = errors.New("no video id in input")

// schemeRe détecte un schéma http(s) déjà présent.
var schemeRe = regexp.MustCompile(`^http(s)?://`)

// hostRe valide la famille de domaines YouTube : youtube.com et ses variantes
// régionales (youtube.co.uk, youtube.co.jp, ...), les sous-domaines www/m/music,
// et le domaine court youtu.be.
var hostRe = regexp.MustCompile(`^((?:www\.|m\.|music\.)?youtube\.co(m|\.uk|\.jp|\.de|.\w{2})|youtu\.be)`)

// altEndpoints : premiers segments de chemin qui portent l'identifiant en
// second segment (lecteur embarqué, shorts, live, ancien lecteur /v/).
var altEndpoints = map[string]bool{
	"embed":  true,
	"shorts": true,
	"live":   true,
	"v":      true,
}

// Resolve extrait l'identifiant de vidéo depuis input.
// Dans l'ordre :
//  1. l'entrée est déjà un token de 11 caractères -> retour tel quel ;
//  2. coercition en URL (préfixe "http://" si absent) puis parse ;
//  3. rejet de tout hôte hors de la famille de domaines YouTube ;
//  4. dispatch hôte/chemin : /watch?v=, youtu.be/<id>, /embed|shorts|live|v/<id>.
//
// Retourne ErrNoVideoID dans tous les autres cas : pas de valeur sentinelle.
func Resolve(input string) (model.VideoID, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrNoVideoID
	}

	// cas trivial : l'entrée est déjà l'identifiant
	if model.IsVideoID(input) {
		return model.VideoID(input), nil
	}

	// préfixer un schéma par défaut pour que url.Parse remplisse Host
	if !schemeRe.MatchString(input) {
		input = "http://" + input
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", ErrNoVideoID
	}

	host := u.Hostname()
	if host == "" || !hostRe.MatchString(host) {
		return "", ErrNoVideoID
	}

	// Cas 1 : URL standard /watch?v=VIDEO_ID
	if u.Path == "/watch" {
		v := u.Query().Get("v")
		if v == "" {
			return "", ErrNoVideoID
		}
		return model.VideoID(v), nil
	}

	// Cas 2 : domaine court youtu.be/VIDEO_ID (query de tracking ignorée)
	if host == "youtu.be" {
		if id := pathSegment(u.Path, 0); id != "" {
			return model.VideoID(id), nil
		}
		return "", ErrNoVideoID
	}

	// Cas 3 : /embed/, /shorts/, /live/ ou ancien /v/ -> second segment
	if altEndpoints[pathSegment(u.Path, 0)] {
		if id := pathSegment(u.Path, 1); id != "" {
			return model.VideoID(id), nil
		}
	}

	return "", ErrNoVideoID
}

// pathSegment retourne le n-ième segment du chemin (0-based, "/" initial
// ignoré), débarrassé d'une éventuelle query résiduelle. Vide si absent.
func pathSegment(path string, n int) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if n >= len(parts) {
		return ""
	}
	seg := parts[n]
	// certaines URLs collent la query au segment sans "?" décodé par url.Parse
	if i := strings.IndexByte(seg, '?'); i >= 0 {
		seg = seg[:i]
	}
	return seg
}
