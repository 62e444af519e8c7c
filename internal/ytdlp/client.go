// Package ytdlp est le client plateforme : il interroge le binaire yt-dlp
// pour obtenir les métadonnées d'une vidéo (titre, description, durée, pistes
// de sous-titres). Le coeur du pipeline ne fait aucune autre découverte.
package ytdlp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/patrickprogramme/ytscribe/pkg/model"
)

// Interface est l'abstraction consommée par le pipeline. Elle permet
// d'injecter une implémentation factice dans les tests.
type Interface interface {
	Extract(ctx context.Context, id model.VideoID) (*model.Meta, error)
}

// Client exécute le binaire yt-dlp.
type Client struct {
	path string // chemin résolu (ou nom nu, résolu via PATH)
}

// New construit un Client. path est le chemin résolu vers l'exécutable,
// ou son simple nom pour une résolution via le PATH système.
func New(path string) *Client {
	return &Client{path: path}
}

// CheckBinary vérifie que l'exécutable existe. Un nom nu est résolu via
// exec.LookPath, un chemin explicite via os.Stat.
func (c *Client) CheckBinary() error {
	if strings.ContainsRune(c.path, os.PathSeparator) {
		info, err := os.Stat(c.path)
		if err != nil {
			return fmt.Errorf("yt-dlp introuvable à l'emplacement %s : %w", c.path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("le chemin yt-dlp %s est un répertoire, pas un exécutable", c.path)
		}
		return nil
	}
	if _, err := exec.LookPath(c.path); err != nil {
		return fmt.Errorf("yt-dlp introuvable dans le PATH (%s) : %w", c.path, err)
	}
	return nil
}

// Extract exécute `yt-dlp -J --skip-download <id>` et parse la sortie.
func (c *Client) Extract(ctx context.Context, id model.VideoID) (*model.Meta, error) {
	raw, err := c.extractRaw(ctx, id)
	if err != nil {
		return nil, err
	}
	raw.PrintWarnings()
	return ParseDump(raw.JSON)
}

// extractRaw lance le binaire et sépare la ligne JSON des avertissements que
// yt-dlp écrit sur la même sortie.
func (c *Client) extractRaw(ctx context.Context, id model.VideoID) (*ExtractedRaw, error) {
	start := time.Now()
	defer func() {
		fmt.Printf("Métadonnées extraites en %s\n", time.Since(start))
	}()

	args := []string{"-J", "--skip-download", "--no-warnings", string(id)}
	cmd := exec.CommandContext(ctx, c.path, args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp dump json failed: %w", err)
	}

	var jsonLine string
	var warnings []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") || strings.HasPrefix(line, "[") {
			jsonLine = line
		} else {
			warnings = append(warnings, line)
		}
	}
	if jsonLine == "" {
		return nil, fmt.Errorf("aucun JSON détecté dans la sortie yt-dlp")
	}
	return &ExtractedRaw{JSON: []byte(jsonLine), Warnings: warnings}, nil
}
