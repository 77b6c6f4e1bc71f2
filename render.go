package main

import (
	"bytes"
	"html/template"
	"net/http"
	"os"

	"github.com/gomarkdown/markdown"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

func staticPageHandler(deps *Dependencies, tmplname string) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deps = checkRequestState(w, r, deps)
		sublog := deps.logger
		webdata := deps.webdata

		if tmplname == "terms" || tmplname == "privacy" {
			webdata["hideRecents"] = true
		}
		if tmplname == "about" {
			webdata["about"] = renderMarkdownFile(deps, "templates/md/methodology.md")
		}

		renderTemplate(w, r, deps, *sublog, tmplname)
	})
}

// renderTemplate is a wrapper around template.ExecuteTemplate.
// It writes into a bytes.Buffer before writing to the http.ResponseWriter to catch
// any errors resulting from populating the template.
func renderTemplate(w http.ResponseWriter, r *http.Request, deps *Dependencies, sublog zerolog.Logger, tmplname string) error {
	tmpl := deps.templates
	config := deps.config
	webdata := deps.webdata

	config["template_name"] = tmplname
	webdata["config"] = config
	webdata["messages"] = deps.messages
	webdata["nonce"] = deps.nonce

	// Create a buffer to temporarily write to and check if any errors were encountered.
	buf := deps.bufpool.Get()
	defer deps.bufpool.Put(buf)

	err := tmpl.ExecuteTemplate(buf, tmplname, webdata)
	if err != nil {
		sublog.Error().Err(err).Str("template", tmplname).Msg("failed to execute template")
		return err
	}

	// Set the header and write the buffer to the http.ResponseWriter
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
	return nil
}

func renderTemplateToString(deps *Dependencies, tmplname string, data interface{}) (template.HTML, error) {
	tmpl := deps.templates
	sublog := deps.logger

	// Create a buffer to temporarily write to and check if any errors were encountered.
	buf := deps.bufpool.Get()
	defer deps.bufpool.Put(buf)

	err := tmpl.ExecuteTemplate(buf, tmplname, data)
	if err != nil {
		sublog.Error().Err(err).Str("template", tmplname).Msg("failed to execute template")
		return "", err
	}

	var html bytes.Buffer
	html.Write(buf.Bytes())

	return template.HTML(html.String()), nil
}

// renderMarkdownFile turns a markdown file on disk into sanitized HTML safe
// to inline into a page.
func renderMarkdownFile(deps *Dependencies, path string) template.HTML {
	sublog := deps.logger

	md, err := os.ReadFile(path)
	if err != nil {
		sublog.Error().Err(err).Str("path", path).Msg("failed to read markdown file")
		return ""
	}

	unsafe := markdown.ToHTML(md, nil, nil)
	return template.HTML(ugcPolicy.SanitizeBytes(unsafe))
}

// sanitizeText strips any markup from provider-supplied text before it
// reaches a page.
func sanitizeText(s string) string {
	return strictPolicy.Sanitize(s)
}
