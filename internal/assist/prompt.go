// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assist

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/doc-assistant/pkg/types"
)

// System instructions for the fixed prompt shapes.
const (
	askSystem     = "You answer questions based only on the provided document."
	stepsSystem   = "You provide clear, practical, step-by-step instructions."
	analyzeSystem = "You explain the situation described by the user and give a practical solution."
	polishSystem  = "You are a helpful assistant."
)

var (
	documentTmpl = template.Must(template.New("document").Parse(`Document content:
{{.}}`))

	questionTmpl = template.Must(template.New("question").Parse(`Question: {{.}}`))

	stepsTmpl = template.Must(template.New("steps").Parse(`Provide clear, step-by-step instructions to complete the following process:
'{{.}}'`))

	analyzeTmpl = template.Must(template.New("analyze").Parse(`Analyze the following situation and propose a practical solution:
'{{.}}'`))

	polishTmpl = template.Must(template.New("polish").Parse(`Polish this template while keeping the values:

{{.}}`))
)

// render executes tmpl with data.
func render(tmpl *template.Template, data string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func system(content string) types.Message {
	return types.Message{Role: types.RoleSystem, Content: content}
}

func user(content string) types.Message {
	return types.Message{Role: types.RoleUser, Content: content}
}

// Document is optional context attached to a prompt.
type Document struct {
	Name string
	Text string
}

// AskMessages builds the question-answering prompt: the system instruction,
// the document text, then the question.
func AskMessages(doc Document, question string) ([]types.Message, error) {
	d, err := render(documentTmpl, doc.Text)
	if err != nil {
		return nil, err
	}
	q, err := render(questionTmpl, question)
	if err != nil {
		return nil, err
	}
	return []types.Message{system(askSystem), user(d), user(q)}, nil
}

// StepsMessages builds the step-list prompt. A non-empty doc is sent as
// context before the request.
func StepsMessages(process string, doc *Document) ([]types.Message, error) {
	return withOptionalDocument(stepsSystem, stepsTmpl, process, doc)
}

// AnalyzeMessages builds the situation-analysis prompt.
func AnalyzeMessages(situation string, doc *Document) ([]types.Message, error) {
	return withOptionalDocument(analyzeSystem, analyzeTmpl, situation, doc)
}

// PolishMessages builds the template-polish prompt around merged text.
func PolishMessages(merged string) ([]types.Message, error) {
	p, err := render(polishTmpl, merged)
	if err != nil {
		return nil, err
	}
	return []types.Message{system(polishSystem), user(p)}, nil
}

func withOptionalDocument(sys string, tmpl *template.Template, input string, doc *Document) ([]types.Message, error) {
	msgs := []types.Message{system(sys)}
	if doc != nil {
		d, err := render(documentTmpl, doc.Text)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, user(d))
	}
	body, err := render(tmpl, input)
	if err != nil {
		return nil, err
	}
	return append(msgs, user(body)), nil
}

// promptChars is the total message content length.
func promptChars(msgs []types.Message) int {
	n := 0
	for _, m := range msgs {
		n += len(m.Content)
	}
	return n
}
