// Package export renders a session transcript and its generation history
// into a standalone HTML document. All user-supplied text goes through
// html/template's contextual escaping; image URLs are embedded only for
// successful renders with a fetchable http(s) link.
package export

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/carescene/carescene/internal/domain"
)

// Data is everything the export document shows, in stored order.
type Data struct {
	SessionID   uuid.UUID
	Turns       []domain.Turn
	Renders     []domain.Render
	GeneratedAt time.Time
}

var tmpl = template.Must(template.New("transcript").Funcs(template.FuncMap{
	"displayable": func(r domain.Render) bool { return r.Displayable() },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Session transcript {{.SessionID}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
.turn { margin: 0.6rem 0; padding: 0.6rem 0.8rem; border-radius: 0.5rem; }
.turn.assistant { background: #eef2f7; }
.turn.user { background: #e7f6e7; text-align: right; }
.role { font-size: 0.75rem; color: #667; text-transform: uppercase; }
.render { margin: 1rem 0; padding: 0.8rem; border: 1px solid #ccd; border-radius: 0.5rem; }
.render img { max-width: 100%; border-radius: 0.3rem; }
.render .prompt { font-size: 0.85rem; color: #445; margin-top: 0.5rem; }
.render.failed { border-color: #d99; color: #922; }
.render.unavailable { border-color: #dc9; color: #863; }
footer { margin-top: 2rem; font-size: 0.8rem; color: #889; }
</style>
</head>
<body>
<h1>Conversation transcript</h1>
<section class="transcript">
{{- range .Turns}}
<div class="turn {{.Role}}"><span class="role">{{.Role}}</span><p>{{.Content}}</p></div>
{{- end}}
</section>
<h2>Generated images</h2>
<section class="renders">
{{- range .Renders}}
{{- if displayable .}}
<div class="render"><img src="{{.ImageURL}}" alt="Generated image"><p class="prompt">{{.PromptUsed}}</p></div>
{{- else if .Succeeded}}
<div class="render unavailable"><p>Image link unavailable.</p><p class="prompt">{{.PromptUsed}}</p></div>
{{- else}}
<div class="render failed"><p>Generation failed: {{.ErrorMessage}}</p><p class="prompt">{{.PromptUsed}}</p></div>
{{- end}}
{{- end}}
</section>
<footer>Session {{.SessionID}} &middot; exported {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</footer>
</body>
</html>
`))

// WriteHTML renders the export document to w.
func WriteHTML(w io.Writer, data Data) error {
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render transcript: %w", err)
	}
	return nil
}
