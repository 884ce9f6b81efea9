package tables

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/adampresley/workshopadmin/pkg/models"
	"github.com/adampresley/workshopadmin/pkg/services"
)

/*
Table is everything needed to draw one entity's table. Rows are drawn
even when Err is set, so a failed refresh still shows the last rows that
were successfully fetched.
*/
type Table struct {
	Entity models.Entity
	Rows   []models.Row
	Err    error
}

func FromSnapshot(snapshot services.Snapshot) Table {
	return Table{
		Entity: snapshot.Entity,
		Rows:   snapshot.Rows,
		Err:    snapshot.Err,
	}
}

func (t Table) Failed() bool {
	return t.Err != nil
}

func (t Table) Noun() string {
	return strings.ToLower(t.Entity.Title)
}

func (t Table) ErrorMessage() string {
	var statusErr *services.StatusError

	if t.Err == nil {
		return ""
	}

	if errors.As(t.Err, &statusErr) {
		return fmt.Sprintf("Status: %d - %s", statusErr.StatusCode, statusErr.Status)
	}

	return "The server could not be reached or returned an invalid response."
}

type TableRenderer interface {
	RenderRows(w io.Writer, table Table) error
	RenderTable(table Table) (template.HTML, error)
}

/*
HtmlTableRenderer draws tables with html/template, so every value that
comes from the backend is escaped before it reaches the page.
*/
type HtmlTableRenderer struct {
	templates *template.Template
}

func NewHtmlTableRenderer() HtmlTableRenderer {
	return HtmlTableRenderer{
		templates: template.Must(template.New("tables").Parse(tableMarkup)),
	}
}

/*
RenderRows writes the contents of the entity's <tbody>. The whole body is
rebuilt on every call.
*/
func (r HtmlTableRenderer) RenderRows(w io.Writer, table Table) error {
	if err := r.templates.ExecuteTemplate(w, "rows", table); err != nil {
		return fmt.Errorf("error rendering rows for %s: %w", table.Entity.Name, err)
	}

	return nil
}

func (r HtmlTableRenderer) RenderTable(table Table) (template.HTML, error) {
	buf := bytes.Buffer{}

	if err := r.templates.ExecuteTemplate(&buf, "table", table); err != nil {
		return "", fmt.Errorf("error rendering table for %s: %w", table.Entity.Name, err)
	}

	return template.HTML(buf.String()), nil
}

const tableMarkup = `
{{- define "table" -}}
<div class="d-flex justify-content-end mb-2">
	<button type="button" class="btn btn-outline-secondary btn-sm" hx-get="/entities/{{ .Entity.Name }}/rows" hx-target="#{{ .Entity.TableBodyID }}" hx-swap="innerHTML" hx-sync="#{{ .Entity.TableBodyID }}:drop">Refresh</button>
</div>
<table class="table table-striped" id="{{ .Entity.Name }}Table">
	<thead>
		<tr>
		{{- range .Entity.Columns }}
			<th>{{ . }}</th>
		{{- end }}
			<th>Actions</th>
		</tr>
	</thead>
	<tbody id="{{ .Entity.TableBodyID }}">
		{{- template "rows" . }}
	</tbody>
</table>
{{- end -}}

{{- define "rows" -}}
{{- if .Failed }}
<tr class="table-error">
	<td colspan="{{ .Entity.ColumnCount }}">Could not load {{ .Noun }}. {{ .ErrorMessage }}</td>
</tr>
{{- end }}
{{- range .Rows }}
<tr id="{{ $.Entity.Name }}-row-{{ .ID }}">
{{- range .Cells }}
	<td>{{ . }}</td>
{{- end }}
	<td>
		<form method="post" action="/entities/{{ $.Entity.Name }}/{{ .ID }}/delete">
			<button type="submit" class="btn btn-danger btn-sm" hx-delete="/entities/{{ $.Entity.Name }}/{{ .ID }}" hx-target="#{{ $.Entity.TableBodyID }}" hx-swap="innerHTML" hx-sync="closest tbody:queue all">
				<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" class="icon icon-tabler icon-tabler-trash">
					<path stroke="none" d="M0 0h24v24H0z" fill="none"/>
					<path d="M4 7l16 0" />
					<path d="M10 11l0 6" />
					<path d="M14 11l0 6" />
					<path d="M5 7l1 12a2 2 0 0 0 2 2h8a2 2 0 0 0 2 -2l1 -12" />
					<path d="M9 7v-3a1 1 0 0 1 1 -1h4a1 1 0 0 1 1 1v3" />
				</svg> Delete
			</button>
		</form>
	</td>
</tr>
{{- else }}
{{- if not .Failed }}
<tr class="table-empty">
	<td colspan="{{ .Entity.ColumnCount }}">No {{ .Noun }} found.</td>
</tr>
{{- end }}
{{- end }}
{{- end -}}
`
