package rest

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-widget/internal/widget"
)

//go:embed web/index.html
var pageFS embed.FS

//go:embed web/static
var staticFS embed.FS

var pageTemplate = template.Must(template.ParseFS(pageFS, "web/index.html"))

type pageData struct {
	View   widget.View
	ColorX string
	ColorO string
}

// Page renders the widget for a brand new session, so a reload always starts over.
func (that *handlers) Page(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.NewSession(r.Context())
	if err != nil {
		that.logger.Error("failed to create session for page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	data := pageData{
		View:   widget.RenderSession(session),
		ColorX: widget.ColorX,
		ColorO: widget.ColorO,
	}

	if err = pageTemplate.Execute(w, data); err != nil {
		that.logger.Error("failed to render page", "error", err)
	}
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "web/static")
	if err != nil {
		panic(err)
	}

	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
