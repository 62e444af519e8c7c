// Package app enchaîne les étapes du pipeline d'extraction : résolution de
// l'identifiant, métadonnées yt-dlp, choix de la piste, téléchargement,
// décodage, paragraphes, rendu. Chaque étape vit dans son propre package ;
// app ne fait que les brancher et remonter les erreurs telles quelles.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickprogramme/ytscribe/internal/caption"
	"github.com/patrickprogramme/ytscribe/internal/config"
	"github.com/patrickprogramme/ytscribe/internal/fetch"
	"github.com/patrickprogramme/ytscribe/internal/gemini"
	"github.com/patrickprogramme/ytscribe/internal/language"
	"github.com/patrickprogramme/ytscribe/internal/tracks"
	"github.com/patrickprogramme/ytscribe/internal/transcript"
	"github.com/patrickprogramme/ytscribe/internal/videoid"
	"github.com/patrickprogramme/ytscribe/internal/ytdlp"
	"github.com/patrickprogramme/ytscribe/pkg/model"
)

// Options : variations du pipeline décidées par l'appelant (CLI ou daemon).
type Options struct {
	IncludeTimestamps bool
	GenerateSummary   bool
	SummaryHint       gemini.Hint
}

// Result : tout ce que le pipeline produit. SummaryErr est non fatal : un
// transcript réussi reste réussi même si le résumé a échoué.
type Result struct {
	Meta      *model.Meta
	Selection model.Selection
	Document  model.Document
	Markdown  string

	// Summary : document markdown du résumé, vide si non demandé ou
	// indisponible. SummaryErr porte alors la cause.
	Summary    string
	SummaryErr error
}

// Progress reçoit une ligne d'avancement par étape. Peut être nil.
type Progress func(step string)

// Pipeline relie la config aux frontières réseau et processus.
type Pipeline struct {
	cfg *config.Config
	yt  ytdlp.Interface
	gem *gemini.Client
}

// New assemble un pipeline depuis la config. yt et gem sont injectés pour
// garder le pipeline testable sans yt-dlp ni clé API.
func New(cfg *config.Config, yt ytdlp.Interface, gem *gemini.Client) *Pipeline {
	return &Pipeline{cfg: cfg, yt: yt, gem: gem}
}

// FromConfig construit le pipeline avec les clients réels.
func FromConfig(cfg *config.Config) *Pipeline {
	gem := gemini.New(cfg.Gemini.APIKey, cfg.Gemini.Model,
		time.Duration(cfg.Gemini.TimeoutSeconds)*time.Second)
	return New(cfg, ytdlp.New(cfg.YtDlp.ResolvedPath), gem)
}

// Run exécute le pipeline complet pour une entrée utilisateur (URL ou
// identifiant nu). Les erreurs des étapes sont remontées sans repli : un
// payload illisible n'essaie jamais un autre format.
func (p *Pipeline) Run(ctx context.Context, input string, opts Options, report Progress) (*Result, error) {
	step := func(s string) {
		if report != nil {
			report(s)
		}
	}

	step("Extracting video ID...")
	id, err := videoid.Resolve(input)
	if err != nil {
		return nil, err
	}

	step("Fetching video information...")
	meta, err := p.yt.Extract(ctx, id)
	if err != nil {
		return nil, err
	}

	detected := language.Detect(meta.Title, meta.Description)
	sel, err := tracks.Select(meta.Subtitles, meta.AutomaticCaptions, detected)
	if err != nil {
		return nil, err
	}

	track, dec, err := caption.PickTrack(sel.Tracks)
	if err != nil {
		return nil, err
	}

	step("Downloading transcript...")
	data, err := fetch.GetBytes(ctx, track.URL,
		time.Duration(p.cfg.Fetch.TimeoutSeconds)*time.Second, p.cfg.Fetch.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("téléchargement de la piste %s : %w", sel.Selection, err)
	}

	cues, err := dec.Decode(data)
	if err != nil {
		return nil, err
	}

	step("Converting to markdown...")
	// le nettoyage des paragraphes se décide sur le seul titre
	paragraphs := transcript.BuildParagraphs(cues, language.Detect(meta.Title, ""))
	doc := transcript.NewDocument(meta, paragraphs, opts.IncludeTimestamps)

	res := &Result{
		Meta:      meta,
		Selection: sel.Selection,
		Document:  doc,
		Markdown:  transcript.RenderMarkdown(doc),
	}

	if opts.GenerateSummary && p.gem != nil && p.gem.Enabled() && len(paragraphs) > 0 {
		step("Generating AI summary...")
		body, err := p.gem.Summarize(ctx,
			transcript.TruncateForSummary(plainText(paragraphs)), opts.SummaryHint)
		if err != nil {
			res.SummaryErr = err
		} else {
			res.Summary = gemini.SummaryMarkdown(meta, body)
		}
	}

	return res, nil
}

// plainText assemble le texte brut des paragraphes pour le résumé, sans
// horodatage ni mise en forme.
func plainText(paragraphs []model.Paragraph) string {
	parts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n\n")
}
