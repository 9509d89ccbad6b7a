// Package prompt renders the translation instruction sent to the
// model. The instruction template is fixed; only the language names
// and the source text vary.
package prompt

import (
	"github.com/valyala/fasttemplate"

	"github.com/hotchpotch/NEKO-translate/internal/lang"
)

// Template is the instruction the NEKO-Translate models were tuned on.
// Changing its wording degrades translation quality.
const Template = "Translate the following {src_lang} text into {tgt_lang}.\n\n{src_text}"

var languageNames = map[lang.Code]string{
	lang.English:  "English",
	lang.Japanese: "Japanese",
}

var tmpl = fasttemplate.New(Template, "{", "}")

// LanguageName returns the human-readable display name for a canonical
// code, e.g. "Japanese" for lang.Japanese.
func LanguageName(code lang.Code) string {
	return languageNames[code]
}

// Build substitutes the pair's display names and the raw text into the
// instruction template.
func Build(pair lang.Pair, text string) string {
	return tmpl.ExecuteString(map[string]interface{}{
		"src_lang": LanguageName(pair.Source),
		"tgt_lang": LanguageName(pair.Target),
		"src_text": text,
	})
}
