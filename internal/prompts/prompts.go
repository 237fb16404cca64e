// Package prompts renders selected stories into the text pasted into an
// assistant.
package prompts

import (
	_ "embed"
	"os"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/sant0-9/storyprompt/internal/document"
	"github.com/sant0-9/storyprompt/internal/record"
)

//go:embed copilot.md.tmpl
var Copilot string

// Missing is shown for story fields without a value.
const Missing = "N/A"

// Column is a story field shown in the prompt under Label.
type Column struct {
	Name  string
	Label string
}

// Field is a rendered story field.
type Field struct {
	Label string
	Value string
}

// Story is one selected record as seen by the template.
type Story struct {
	Seq    int
	ID     string
	Fields []Field
}

// Data is the value passed to the template.
type Data struct {
	Count   int
	IDField string
	Stories []Story
	// Document is the selection in interchange format.
	Document string
}

// Renderer executes a prompt template over a story table.
type Renderer struct {
	tmpl    *template.Template
	columns []Column
}

var funcs = template.FuncMap{
	"na": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return Missing
		}
		return s
	},
	"banner": document.BannerLine,
	"sep":    func() string { return record.Separator },
}

// New builds a renderer over the built-in template.
func New(columns []Column) (*Renderer, error) {
	return Parse("copilot", Copilot, columns)
}

// NewFromFile builds a renderer over the template stored at path.
func NewFromFile(path string, columns []Column) (*Renderer, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read template")
	}
	return Parse(path, string(text), columns)
}

// Parse builds a renderer from template text.
func Parse(name, text string, columns []Column) (*Renderer, error) {
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid template %s", name)
	}
	return &Renderer{tmpl: tmpl, columns: columns}, nil
}

// Data builds template data from t. Labels default to column names.
func (r *Renderer) Data(t *record.Table) Data {
	d := Data{
		Count:    t.Len(),
		IDField:  t.Schema().IDField(),
		Document: document.Serialize(t),
	}
	for i := 0; i < t.Len(); i++ {
		rec := t.At(i)
		s := Story{Seq: i + 1, ID: t.ID(i)}
		for _, c := range r.columns {
			label := c.Label
			if label == "" {
				label = c.Name
			}
			s.Fields = append(s.Fields, Field{Label: label, Value: rec.Get(c.Name)})
		}
		d.Stories = append(d.Stories, s)
	}
	return d
}

// Render executes the template over t.
func (r *Renderer) Render(t *record.Table) (string, error) {
	var b strings.Builder
	if err := r.tmpl.Execute(&b, r.Data(t)); err != nil {
		return "", errors.Wrap(err, "failed to render prompt")
	}
	return b.String(), nil
}
