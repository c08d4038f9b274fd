package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Template names used by the adoption notification flow.
const (
	TemplateAdoptionAccepted = "adoption_accepted"
	TemplateAdoptionRejected = "adoption_rejected"
)

// TemplateManager implements TemplateRenderer.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		// Built-in templates are compile-time constants; a parse error
		// here is a programming mistake.
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

var builtinTemplates = map[string]string{
	TemplateAdoptionAccepted: `
<p>Dear {{.UserName}},</p>
<p>Great news! Your adoption request for <b>{{.AnimalName}}</b> has been accepted.</p>
<p>The shelter staff will contact you at {{.ContactInfo}} to arrange the handover.</p>`,

	TemplateAdoptionRejected: `
<p>Dear {{.UserName}},</p>
<p>Unfortunately your adoption request for <b>{{.AnimalName}}</b> was not approved.</p>
<p>You are welcome to browse our other animals looking for a home.</p>`,
}
