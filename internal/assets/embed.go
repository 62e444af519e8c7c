package assets

import "embed"

//go:embed ytscribe.example.yaml
//go:embed templates/*.tmpl
var Embedded embed.FS

// Nom de l'asset de config par défaut (chemin DANS Embedded)
const DefaultConfigAsset = "ytscribe.example.yaml"

// TemplateByName donne l'accès par clé aux templates de prompt embarqués.
var TemplateByName = map[string]string{
	"summary_prompt_en": "templates/summary_prompt_en.txt.tmpl",
	"summary_prompt_ja": "templates/summary_prompt_ja.txt.tmpl",
}
