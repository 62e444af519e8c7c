// Package gemini est la frontière vers le service de résumé : texte en
// entrée, texte en sortie, indice de langue. Le coeur n'inspecte jamais la
// structure du texte généré.
//
// La clé API est une configuration explicite passée au client, jamais un
// état ambiant.
package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/patrickprogramme/ytscribe/internal/assets"
	"github.com/patrickprogramme/ytscribe/internal/fetch"
	"github.com/patrickprogramme/ytscribe/pkg/model"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

var (
	// ErrNoAPIKey : client construit sans clé, le résumé est indisponible.
	ErrNoAPIKey = errors.New("gemini: no api key configured")

	// ErrEmptyResponse : l'API a répondu sans candidat exploitable.
	ErrEmptyResponse = errors.New("gemini: no candidates in api response")
)

// Hint : indice de langue du résumé, trois valeurs.
type Hint string

const (
	HintAuto     Hint = "auto"
	HintEnglish  Hint = "en"
	HintJapanese Hint = "ja"
)

// ParseHint valide une valeur d'indice venue de l'extérieur (flag, requête).
func ParseHint(s string) (Hint, error) {
	switch Hint(s) {
	case HintAuto, HintEnglish, HintJapanese:
		return Hint(s), nil
	case "":
		return HintAuto, nil
	default:
		return "", fmt.Errorf("indice de langue inconnu : %q (attendu auto, en ou ja)", s)
	}
}

// Client appelle l'API generateContent.
type Client struct {
	apiKey  string
	model   string
	timeout time.Duration
	baseURL string // remplacé dans les tests
}

// New construit un client. apiKey vide est accepté ici ; Summarize refusera
// alors de partir en réseau.
func New(apiKey, model string, timeout time.Duration) *Client {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Client{apiKey: apiKey, model: model, timeout: timeout, baseURL: defaultBaseURL}
}

// Enabled indique si une clé est configurée.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// structures du corps de requête/réponse generateContent
type requestBody struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type responseBody struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Summarize envoie le texte (déjà tronqué par l'appelant) et retourne le
// résumé généré. hint=auto est résolu par la règle des 30% de caractères
// japonais avant de choisir le prompt.
func (c *Client) Summarize(ctx context.Context, text string, hint Hint) (string, error) {
	if !c.Enabled() {
		return "", ErrNoAPIKey
	}

	lang := hint
	if lang == HintAuto {
		lang = detectHint(text)
	}

	prompt, err := buildPrompt(text, lang)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req := requestBody{Contents: []content{{Parts: []part{{Text: prompt}}}}}

	var resp responseBody
	if err := fetch.PostJSON(ctx, url, c.timeout, req, &resp); err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// detectHint applique la règle auto : plus de 30% de caractères japonais
// parmi les caractères "alphabétiques" -> japonais, sinon anglais.
func detectHint(text string) Hint {
	var japanese, total int
	for _, r := range text {
		isJa := (r >= 0x3040 && r <= 0x309F) ||
			(r >= 0x30A0 && r <= 0x30FF) ||
			(r >= 0x4E00 && r <= 0x9FAF)
		if isJa {
			japanese++
		}
		if isJa || isLatinLetter(r) {
			total++
		}
	}
	if total > 0 && float64(japanese)/float64(total) > 0.3 {
		return HintJapanese
	}
	return HintEnglish
}

func isLatinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// buildPrompt rend le template embarqué de la langue demandée.
func buildPrompt(text string, lang Hint) (string, error) {
	name := "summary_prompt_en"
	if lang == HintJapanese {
		name = "summary_prompt_ja"
	}
	tplPath := assets.TemplateByName[name]
	if tplPath == "" {
		return "", fmt.Errorf("template %s introuvable dans assets.TemplateByName", name)
	}
	b, err := assets.Embedded.ReadFile(tplPath)
	if err != nil {
		return "", fmt.Errorf("lecture template embarqué %s: %w", tplPath, err)
	}

	tpl, err := template.New(name).Parse(string(b))
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, struct{ Transcript string }{Transcript: text}); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// SummaryMarkdown enveloppe le résumé généré dans son document : en-tête
// avec identifiant, URL et durée, corps, et pied de page. Un résumé vide
// donne le marqueur d'échec explicite.
func SummaryMarkdown(meta *model.Meta, summary string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s - Summary\n\n", meta.Title)
	fmt.Fprintf(&b, "**Video ID:** %s  \n", meta.ID)
	fmt.Fprintf(&b, "**YouTube URL:** %s  \n", meta.ID.WatchURL())
	fmt.Fprintf(&b, "**Duration:** %s\n\n", meta.Duration.Timestamp())
	b.WriteString("---\n\n")

	if summary != "" {
		b.WriteString(summary)
	} else {
		b.WriteString("*Failed to generate summary.*\n")
	}

	b.WriteString("\n\n---\n\n")
	b.WriteString("*Summary generated using Gemini AI*\n")
	return b.String()
}
