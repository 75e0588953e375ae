package locale

import (
	"embed"
	"fmt"
	"path"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed messages/*.yaml
var messageFiles embed.FS

// Message IDs
const (
	MsgOutOfHoursNotice = "out_of_hours_notice"
	MsgDefaultWelcome   = "default_welcome"
	MsgAutoTimeLayout   = "auto_time_layout"
)

// DefaultLanguage is used when no locale is configured or the requested one is unknown
var DefaultLanguage = language.BrazilianPortuguese

// Texts renders the bot's canned texts in one locale
type Texts struct {
	localizer *i18n.Localizer
	tag       language.Tag
	loc       *time.Location
}

// NewBundle loads the embedded message files
func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := messageFiles.ReadDir("messages")
	if err != nil {
		return nil, fmt.Errorf("failed to read message files: %w", err)
	}
	for _, e := range entries {
		p := path.Join("messages", e.Name())
		buf, err := messageFiles.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		if _, err := bundle.ParseMessageFileBytes(buf, p); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", p, err)
		}
	}
	return bundle, nil
}

// New creates texts for the given BCP 47 locale, rendering dates in loc
func New(locale string, loc *time.Location) (*Texts, error) {
	bundle, err := NewBundle()
	if err != nil {
		return nil, err
	}

	tag := DefaultLanguage
	if locale != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
		}
		matcher := language.NewMatcher(bundle.LanguageTags())
		_, idx, _ := matcher.Match(parsed)
		tag = bundle.LanguageTags()[idx]
	}
	if loc == nil {
		loc = time.Local
	}

	return &Texts{
		localizer: i18n.NewLocalizer(bundle, tag.String()),
		tag:       tag,
		loc:       loc,
	}, nil
}

// Language returns the resolved language tag
func (t *Texts) Language() language.Tag {
	return t.tag
}

// OutOfHoursNotice renders the notice sent outside business hours
func (t *Texts) OutOfHoursNotice(start, end string) string {
	return t.localize(MsgOutOfHoursNotice, map[string]string{"Start": start, "End": end})
}

// DefaultWelcome returns the welcome text used when none is configured
func (t *Texts) DefaultWelcome() string {
	return t.localize(MsgDefaultWelcome, nil)
}

// DateTime renders ts as the locale's human-readable date-time
func (t *Texts) DateTime(ts time.Time) string {
	layout := t.localize(MsgAutoTimeLayout, nil)
	if layout == "" {
		layout = time.DateTime
	}
	return ts.In(t.loc).Format(layout)
}

func (t *Texts) localize(id string, data interface{}) string {
	s, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return ""
	}
	return s
}
