// Package fsutil : utilitaires fichiers partagés par la CLI et le daemon.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// longueur maximale d'un nom de fichier généré
const maxNameLen = 200

// invalidFileRunes définit les caractères interdits dans les noms de fichiers
// \x00-\x1F sont les caractères de contrôle
var invalidFileRunes = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

var multiSpace = regexp.MustCompile(`\s+`)

// SanitizeFilename nettoie une chaîne pour en faire un nom de fichier valide :
// caractères interdits remplacés par des espaces, espaces réduits, points
// terminaux supprimés, longueur bornée. Chaîne vide -> "transcript".
func SanitizeFilename(name string) string {
	clean := invalidFileRunes.ReplaceAllString(name, " ")
	clean = multiSpace.ReplaceAllString(strings.TrimSpace(clean), " ")
	clean = strings.TrimRight(clean, ".")
	if clean == "" {
		return "transcript"
	}
	if len(clean) > maxNameLen {
		clean = clean[:maxNameLen]
	}
	return clean
}

// WriteFileAtomic écrit data dans destPath de manière atomique : écriture
// dans un fichier temporaire du même répertoire puis os.Rename. Les
// répertoires parents sont créés si nécessaire.
func WriteFileAtomic(destPath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(destPath)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	// permissions (best-effort)
	_ = os.Chmod(tmpName, perm)

	if err := os.Rename(tmpName, destPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename tmp -> dest: %w", err)
	}
	return nil
}
