package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/patrickprogramme/ytscribe/internal/assets"
	"github.com/patrickprogramme/ytscribe/internal/fsutil"
)

const CurrentConfigVersion = 1

// Config : paramètres de l'application (CLI et daemon).
type Config struct {
	ConfigVersion int `yaml:"config_version"`

	// Sortie
	OutputDir         string `yaml:"output_dir"`
	IncludeTimestamps bool   `yaml:"include_timestamps"`

	// Téléchargement du payload de sous-titres
	Fetch struct {
		TimeoutSeconds int   `yaml:"timeout_seconds"`
		MaxBytes       int64 `yaml:"max_bytes"`
	} `yaml:"fetch"`

	// yt-dlp
	YtDlp struct {
		Name string `yaml:"name"`
		Path string `yaml:"path"`

		// ResolvedPath contient le chemin effectif vers l'exécutable
		ResolvedPath string `yaml:"-"`
	} `yaml:"yt_dlp"`

	// Résumé Gemini
	Gemini struct {
		APIKey         string `yaml:"api_key"`
		Model          string `yaml:"model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"gemini"`

	// Daemon HTTP
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
		DBPath     string `yaml:"db_path"`
	} `yaml:"server"`
}

// defaultConfig : valeurs de repli si l'asset embarqué ou le fichier sont
// incomplets.
func defaultConfig() *Config {
	c := &Config{}
	c.ConfigVersion = CurrentConfigVersion

	c.OutputDir = "."
	c.IncludeTimestamps = true

	c.Fetch.TimeoutSeconds = 15
	c.Fetch.MaxBytes = 10_000_000

	c.YtDlp.Name = "yt-dlp"
	c.YtDlp.Path = ""

	c.Gemini.APIKey = ""
	c.Gemini.Model = "gemini-2.0-flash"
	c.Gemini.TimeoutSeconds = 120

	c.Server.ListenAddr = "127.0.0.1:8000"
	c.Server.DBPath = "ytscribe-jobs.db"

	return c
}

// Load lit la config ; si le fichier n'existe pas, il est créé depuis
// l'exemple embarqué. Les champs présents dans le YAML écrasent les
// défauts ; GEMINI_API_KEY dans l'environnement écrase toujours le fichier
// (la clé n'a pas vocation à traîner sur disque).
func Load(path string) (*Config, error) {
	if path == "" {
		path = "ytscribe.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}
	fmt.Printf("info : fichier de configuration par défaut créé : %s\n", dstPath)
	return nil
}

func (c *Config) normalize() {
	c.OutputDir = filepath.Clean(c.OutputDir)

	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = 15
	}
	if c.Fetch.MaxBytes <= 0 {
		c.Fetch.MaxBytes = 10_000_000
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Gemini.TimeoutSeconds <= 0 {
		c.Gemini.TimeoutSeconds = 120
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = "127.0.0.1:8000"
	}
	if c.Server.DBPath == "" {
		c.Server.DBPath = "ytscribe-jobs.db"
	}

	// l'environnement prime sur le fichier pour la clé API
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		c.Gemini.APIKey = key
	}

	c.resolveYtDlpPath()
}

// resolveYtDlpPath normalise le nom et résout le chemin complet vers
// l'exécutable yt-dlp. Appeler après toute modification de Name ou Path.
func (c *Config) resolveYtDlpPath() {
	c.YtDlp.Name = strings.TrimSpace(c.YtDlp.Name)
	if c.YtDlp.Name == "" {
		c.YtDlp.Name = "yt-dlp"
	}
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.YtDlp.Name), ".exe") {
		c.YtDlp.Name += ".exe"
	}

	cfgPath := strings.TrimSpace(c.YtDlp.Path)
	if cfgPath == "" {
		// pas de chemin : on s'en remet au PATH du système
		c.YtDlp.ResolvedPath = c.YtDlp.Name
		return
	}
	cleanPath := filepath.Clean(cfgPath)
	if filepath.Base(cleanPath) == c.YtDlp.Name {
		c.YtDlp.ResolvedPath = cleanPath
	} else {
		// cfgPath est traité comme un répertoire contenant l'exécutable
		c.YtDlp.ResolvedPath = filepath.Join(cleanPath, c.YtDlp.Name)
	}
}
