package wizard

import "github.com/vaultmarkets/onboarding/svc/onboarding"

// ResumeView tells the client which wizard screen to open.
type ResumeView struct {
	Step            string `json:"step"`
	Slug            string `json:"slug"`
	MainStep        int    `json:"main_step"`
	SubStep         int    `json:"sub_step"`
	HighestMainStep int    `json:"highest_main_step"`
	Source          string `json:"source,omitempty"`
}

// NewResumeView renders a resolution for the client.
func NewResumeView(g *onboarding.Graph, res onboarding.Resolution) ResumeView {
	v := stepView(g, res.Step, res.HighestMainStep)
	v.Source = string(res.Source)
	return v
}

func stepView(g *onboarding.Graph, s onboarding.Step, highest int) ResumeView {
	return ResumeView{
		Step:            s.String(),
		Slug:            g.Slug(s),
		MainStep:        s.Main(),
		SubStep:         s.Sub(),
		HighestMainStep: highest,
	}
}

// MoveView is the result of a navigate or advance request.
type MoveView struct {
	Moved bool `json:"moved"`
	ResumeView
}

// ProgressView is the saved progress as returned to the client.
type ProgressView struct {
	Fields      map[string]any `json:"fields"`
	CurrentStep string         `json:"current_step,omitempty"`
	LastUpdated string         `json:"last_updated,omitempty"`
}

func newProgressView(p *onboarding.Progress) ProgressView {
	v := ProgressView{Fields: p.Fields, CurrentStep: p.CurrentStep}
	if v.Fields == nil {
		v.Fields = map[string]any{}
	}
	if !p.LastUpdated.IsZero() {
		v.LastUpdated = p.LastUpdated.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	}
	return v
}
