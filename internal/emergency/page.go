package emergency

import (
	"embed"
	"html/template"
	"io"
	"net/url"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type pageData struct {
	View
	CallHref     template.URL
	LocationPath string
	Notice       string
}

// RenderPage writes the responder HTML page for v. notice, when non-empty,
// is shown as a banner (for example "Profile not found").
//
// tel: is outside html/template's safe URL schemes, so the fixed-prefix call
// URI is passed as template.URL.
func RenderPage(w io.Writer, v View, notice string) error {
	return pageTemplate.ExecuteTemplate(w, "emergency.html", pageData{
		View:         v,
		CallHref:     template.URL(v.CallURI()),
		LocationPath: "/api/emergency/" + url.PathEscape(v.Slug) + "/location",
		Notice:       notice,
	})
}
