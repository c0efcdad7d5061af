package surface

import (
	"html/template"
	"io"

	"github.com/trafficscope/trafficscope/pkg/recommend"
)

// HTMLRenderer renders each segment as a self-contained analysis panel with
// the tier colors inlined.
type HTMLRenderer struct{}

var htmlTemplate = template.Must(template.New("run").Funcs(template.FuncMap{
	"css":   func(s string) template.CSS { return template.CSS(s) },
	"money": func(ra recommend.RecommendedAction) string { return ra.Cost.StringFixed(0) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>trafficscope run {{.Run.ID}}</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #FFFFFF;">
<h1 style="font-size: 20px; color: #333;">trafficscope: {{.Summary.Total}} segments analysed</h1>
<p style="color: #777; font-size: 12px;">Run {{.Run.ID}} at {{.Run.CreatedAt.Format "2006-01-02 15:04 MST"}}</p>
{{range .Run.Reports}}
<div style="padding: 15px; margin-bottom: 20px; background-color: #F8F8F8; border-radius: 6px; border: 1px solid #E0E0E0;">
  <h2 style="margin: 0 0 10px 0; font-size: 18px; color: #333;">Segment analysis: {{.SegmentName}}</h2>
  <div style="margin-bottom: 20px; padding: 15px; background-color: {{css .BackgroundColor}}; color: #333; border-radius: 4px; border-left: 5px solid {{css .StatusColor}};">
    <h3 style="margin: 0; font-size: 18px; color: {{css .StatusColor}};">&#9679; Tier {{.Tier}}: {{.TierLabel}}</h3>
    <p style="margin: 5px 0 0 0; font-size: 14px;">Severity index: <strong>{{printf "%.1f" .SeverityScore}}</strong></p>
    <p style="margin: 5px 0 0 0; font-size: 14px;">Load (current/forecast): <strong>{{printf "%.2f" .CurrentLoad}} / {{printf "%.2f" .PredictiveLoad}}</strong></p>
    <hr style="border: none; border-top: 1px dashed #CCC; margin: 10px 0;">
    <p style="margin: 0; font-size: 14px; line-height: 1.5;"><strong>Overall:</strong> {{.Narrative}}</p>
  </div>
  <h3 style="font-size: 16px; color: #444; border-bottom: 1px solid #EEE; padding-bottom: 5px;">Contributing factors</h3>
  <ul style="list-style: none; padding-left: 0; margin-top: 10px; font-size: 14px;">
    <li style="margin-bottom: 8px;"><span style="color: #6A5ACD; font-weight: bold;">1. Road hierarchy:</span> <span style="color: #3CB371;">{{.ClassExplanation}}</span></li>
    <li style="margin-bottom: 8px;"><span style="color: #6A5ACD; font-weight: bold;">2. Weather:</span> <span style="color: {{css .WeatherColor}}; font-weight: bold;">{{.Weather}}</span> {{.WeatherExplanation}}</li>
    <li style="margin-bottom: 8px;"><span style="color: #6A5ACD; font-weight: bold;">3. Structure:</span> {{.StructuralExplanation}}</li>
  </ul>
  <div style="margin-top: 20px; padding: 15px; background-color: #E8F5E9; border-radius: 4px; border: 1px solid #A5D6A7;">
    <h3 style="font-size: 17px; color: #1B5E20; margin: 0 0 10px 0;">Recommended strategy</h3>
    <p style="font-size: 15px; font-weight: bold; color: #1B5E20;">{{.RecommendedAction.Name}}</p>
    <ul style="list-style: disc; padding-left: 20px; font-size: 14px;">
      <li><strong>Measure type:</strong> {{.RecommendedAction.StrengthLabel}} (targets {{.RecommendedAction.TargetTier}} and above)</li>
      <li><strong>Cost:</strong> {{money .RecommendedAction}}</li>
      <li><strong>Projected effect:</strong> load reduced by {{printf "%.0f" .RecommendedAction.ProjectedLoadReductionPercent}}%</li>
    </ul>
  </div>
</div>
{{else}}
<p>No segments.</p>
{{end}}
</body>
</html>
`))

func (r *HTMLRenderer) Render(w io.Writer, run *recommend.Run) error {
	return htmlTemplate.Execute(w, struct {
		Run     *recommend.Run
		Summary recommend.Summary
	}{run, run.Summary()})
}
