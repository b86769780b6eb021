package locale

import (
	"embed"
	"fmt"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"

	"github.com/spigell/lente/internal/matcher"
)

//go:embed locales/*.yaml
var messageFiles embed.FS

// Default is the locale used when none is configured or the configured one is unknown.
const Default = "en"

// Translator renders match reasons in one locale.
type Translator struct {
	tag       language.Tag
	fallback  bool
	localizer *i18n.Localizer
}

// Supported returns the locales with an embedded message file.
func Supported() []string {
	entries, err := messageFiles.ReadDir("locales")
	if err != nil {
		return []string{Default}
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		parts := strings.Split(e.Name(), ".")
		if len(parts) == 3 {
			out = append(out, parts[1])
		}
	}
	return out
}

// New builds a translator for lang. Messages missing in lang fall back to English.
func New(lang string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := messageFiles.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("reading embedded locales: %w", err)
	}
	for _, e := range entries {
		if _, err := bundle.LoadMessageFileFS(messageFiles, "locales/"+e.Name()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", e.Name(), err)
		}
	}

	tag := language.English
	fallback := false
	if lang = strings.TrimSpace(lang); lang != "" {
		fallback = true
		if parsed, err := language.Parse(lang); err == nil {
			_, idx, confidence := language.NewMatcher(bundle.LanguageTags()).Match(parsed)
			if confidence != language.No {
				tag = bundle.LanguageTags()[idx]
				fallback = false
			}
		}
	}

	return &Translator{
		tag:       tag,
		fallback:  fallback,
		localizer: i18n.NewLocalizer(bundle, tag.String(), language.English.String()),
	}, nil
}

// Language returns the locale the translator resolved to.
func (t *Translator) Language() string {
	base, _ := t.tag.Base()
	return base.String()
}

// Fallback reports whether the requested locale was not available and English is used instead.
func (t *Translator) Fallback() bool {
	return t.fallback
}

// Explain renders reasons in order. A reason whose message cannot be rendered
// falls back to its English form.
func (t *Translator) Explain(reasons []matcher.Reason) []string {
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, t.explain(r))
	}
	return out
}

func (t *Translator) explain(r matcher.Reason) string {
	id := string(r.Kind)
	if r.Kind == "" {
		id = string(matcher.ReasonPartial)
	}

	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID: id,
		TemplateData: map[string]string{
			"Concepts": strings.Join(r.Concepts, ", "),
			"Location": r.Location,
			"Area":     r.Area,
		},
	})
	if err != nil {
		return r.String()
	}
	return msg
}
