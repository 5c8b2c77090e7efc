package report

import (
	"embed"
	"html/template"
	"io"

	"github.com/Masterminds/sprig/v3"

	"ramcalc/internal/estimator"
	"ramcalc/internal/form"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var pageTmpl = template.Must(template.New("page.html.tmpl").
	Funcs(sprig.FuncMap()).
	Funcs(template.FuncMap{"gb": GB}).
	ParseFS(templatesFS, "templates/page.html.tmpl"))

// PageOption is a selection choice with its selected state resolved.
type PageOption struct {
	form.Option
	Selected bool
}

// PageField is a form field with the submitted value.
type PageField struct {
	form.Field
	Value   string
	Choices []PageOption
}

// Page is the view model of the calculator page.
type Page struct {
	Primary      []PageField
	Advanced     []PageField
	ShowAdvanced bool
	Result       estimator.Result
}

// NewPage builds the view of values and the result computed from them.
// The advanced section starts open when any advanced field differs from the
// form defaults.
func NewPage(values form.Values, res estimator.Result) Page {
	defaults := form.Defaults()
	p := Page{Result: res}
	for _, f := range form.Fields {
		pf := PageField{Field: f, Value: values[f.Key]}
		for _, o := range f.Options {
			pf.Choices = append(pf.Choices, PageOption{Option: o, Selected: o.Value == pf.Value})
		}
		if f.Advanced {
			p.Advanced = append(p.Advanced, pf)
			if pf.Value != defaults[f.Key] {
				p.ShowAdvanced = true
			}
			continue
		}
		p.Primary = append(p.Primary, pf)
	}
	return p
}

// WritePage renders the calculator page.
func WritePage(w io.Writer, p Page) error {
	return pageTmpl.Execute(w, p)
}
