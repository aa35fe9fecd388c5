package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/dotcommander/faultline/internal/app"
	"github.com/dotcommander/faultline/internal/credential"
	"github.com/dotcommander/faultline/internal/llm"
)

// CredentialSource yields the API credential for a single request.
type CredentialSource interface {
	Get() credential.Credential
}

// Asker resolves a credential, queries the model once, and renders the
// reply. The credential is re-resolved on every call.
type Asker struct {
	Credentials CredentialSource
	// NewCompleter builds the completion client for a resolved credential.
	// Swappable in tests to count or fake network calls.
	NewCompleter func(cred credential.Credential) llm.Completer
}

// NewAsker wires the default resolver and OpenAI client using the
// configured model and base URL.
func NewAsker() *Asker {
	cfg := app.EffectiveSettings()
	return &Asker{
		Credentials: credential.NewResolver(),
		NewCompleter: func(cred credential.Credential) llm.Completer {
			return llm.New(cred.Value, cfg.Model, cfg.BaseURL)
		},
	}
}

// Ask runs the one-shot conversation for promptText and writes the AI-help
// panel to w. When no credential resolves, it writes the instructional
// notice and performs no network call; that case is not an error. A failed
// completion propagates as *llm.CompletionError for the hook's recovery
// boundary to catch.
func (a *Asker) Ask(w io.Writer, rc *Context, promptText string) error {
	cred := a.Credentials.Get()
	if !cred.Found() {
		return a.RenderMissingCredentialNotice(w, rc)
	}

	reply, err := a.NewCompleter(cred).Complete(context.Background(), promptText)
	if err != nil {
		return err
	}
	return RenderAnswer(w, rc, reply)
}

// RenderAnswer converts the model's markdown reply into a bordered
// "AI help" panel followed by a dim separator. The panel body carries the
// answer style from the theme.
func RenderAnswer(w io.Writer, rc *Context, markdown string) error {
	body, err := renderMarkdown(rc, markdown)
	if err != nil {
		return err
	}

	panel := rc.Panel("AI help", "Help", rc.Theme.Answer.Render(body))
	if _, err := fmt.Fprintln(w, panel); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, rc.Separator())
	return err
}

// Message renders an error message as the body of the error panel: the text
// goes through the markdown renderer as a fenced code block, so it comes
// back syntax-highlighted and word-wrapped, then takes the message style.
func Message(rc *Context, message string) (string, error) {
	body, err := renderMarkdown(rc, "```\n"+message+"\n```")
	if err != nil {
		return "", err
	}
	return rc.Theme.Message.Render(body), nil
}

// renderMarkdown runs source through the terminal markdown renderer,
// word-wrapped to fit inside a panel at the context width.
func renderMarkdown(rc *Context, source string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(rc.Width-8),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := renderer.Render(source)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// RenderMissingCredentialNotice writes a static instructional panel naming
// the two ways to supply an API key. No network call is made.
func (a *Asker) RenderMissingCredentialNotice(w io.Writer, rc *Context) error {
	envVar := app.EffectiveSettings().APIKeyEnv
	body := fmt.Sprintf(
		"No API key found, so no explanation was requested.\n\n"+
			"Provide one either way:\n"+
			"  faultline key set <your-key>\n"+
			"  export %s=<your-key>",
		envVar,
	)
	_, err := fmt.Fprintln(w, rc.Panel("AI help", "Help", body))
	return err
}
