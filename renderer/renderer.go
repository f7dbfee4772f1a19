package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// InfoRenderOptions holds configuration for rendering a project summary.
type InfoRenderOptions struct {
	Full bool // Also render securities, cash accounts and FX currencies.
}

// RenderInfo renders the Info struct to a markdown string.
func RenderInfo(i *Info, opts InfoRenderOptions) string {
	partials := map[string]string{
		"info_title":    "info_title.md",
		"info_content":  "info_content.md",
		"info_sections": "info_sections.md",
	}
	// An empty file name results in an empty template.
	if opts.Full {
		partials["info_securities"] = "info_securities.md"
		partials["info_cash"] = "info_cash.md"
		partials["info_fx"] = "info_fx.md"
	} else {
		partials["info_securities"] = ""
		partials["info_cash"] = ""
		partials["info_fx"] = ""
	}
	return renderTemplate("info", "info.md", partials, i)
}

// RenderVerification renders the Verification struct to a markdown string.
func RenderVerification(v *Verification) string {
	partials := map[string]string{
		"info_sections": "info_sections.md",
	}
	return renderTemplate("verify", "verify.md", partials, v)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
