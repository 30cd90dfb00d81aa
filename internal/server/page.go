package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/rewired-gh/surveyboard/internal/dashboard"
	"github.com/rewired-gh/surveyboard/internal/logger"
	"github.com/rewired-gh/surveyboard/internal/models"
)

//go:embed templates/index.html
var templates embed.FS

func parsePage() (*template.Template, error) {
	return template.ParseFS(templates, "templates/index.html")
}

// blankLabel is shown for the option selecting blank source cells
const blankLabel = "(blank)"

type option struct {
	Value    string
	Label    string
	Selected bool
}

type gauge struct {
	Title string
	URL   string
}

type pageData struct {
	Topics  []option
	Sources []option
	Gauges  []gauge
	PieURL  string
	BarURL  string
}

func options(values []string, selected string) []option {
	opts := make([]option, len(values))
	for i, v := range values {
		label := v
		if v == "" {
			label = blankLabel
		}
		opts[i] = option{Value: v, Label: label, Selected: v == selected}
	}
	return opts
}

func chartURL(name string, sel models.Selection) string {
	q := url.Values{}
	q.Set("topic", sel.TopicID)
	q.Set("source", sel.Source)
	return "/charts/" + name + "?" + q.Encode()
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sel := s.selection(r)
	opts := s.service.Options()

	data := pageData{
		Topics:  options(opts.Topics, sel.TopicID),
		Sources: options(opts.Sources, sel.Source),
		Gauges: []gauge{
			{Title: "Total", URL: chartURL(dashboard.ChartTotal, sel)},
			{Title: "Yes", URL: chartURL(dashboard.ChartYes, sel)},
			{Title: "No", URL: chartURL(dashboard.ChartNo, sel)},
			{Title: "Maybe", URL: chartURL(dashboard.ChartMaybe, sel)},
		},
		PieURL: chartURL(dashboard.ChartPie, sel),
		BarURL: chartURL(dashboard.ChartBar, sel),
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		logger.Error("Failed to render page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
