package tui

import (
	"strings"

	"github.com/alexgenc/hack-or-snooze/internal/api"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a small vertical stack of labelled text inputs, driving the
// login, signup, submit and edit screens.
type form struct {
	title  string
	fields []formField
	focus  int
}

type formField struct {
	label string
	input textinput.Model
}

func newField(label, placeholder string, secret bool) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return formField{label: label, input: ti}
}

func newForm(title string, fields ...formField) form {
	f := form{title: title, fields: fields}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func newLoginForm() form {
	return newForm("Log in",
		newField("Username", "username", false),
		newField("Password", "password", true),
	)
}

func newSignupForm() form {
	return newForm("Create account",
		newField("Name", "your display name", false),
		newField("Username", "pick a username", false),
		newField("Password", "pick a password", true),
	)
}

func newSubmitForm(author string) form {
	f := newForm("Submit a story",
		newField("Title", "story title", false),
		newField("URL", "https://...", false),
		newField("Author", "author", false),
	)
	f.fields[2].input.SetValue(author)
	return f
}

func newEditForm(s api.Story) form {
	f := newForm("Edit story",
		newField("Title", "story title", false),
		newField("URL", "https://...", false),
		newField("Author", "author", false),
	)
	f.fields[0].input.SetValue(s.Title)
	f.fields[1].input.SetValue(s.URL)
	f.fields[2].input.SetValue(s.Author)
	return f
}

func newRenameForm(current string) form {
	f := newForm("Change name",
		newField("Name", "new display name", false),
	)
	f.fields[0].input.SetValue(current)
	return f
}

func (f *form) next() {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + 1) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func (f *form) prev() {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func (f *form) atLast() bool {
	return f.focus == len(f.fields)-1
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

// complete reports whether every field has a value.
func (f *form) complete() bool {
	for i := range f.fields {
		if f.value(i) == "" {
			return false
		}
	}
	return true
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render(f.title))
	b.WriteString("\n")
	for i, fd := range f.fields {
		label := formLabelStyle.Render(fd.label)
		if i == f.focus {
			label = formLabelFocusStyle.Render(fd.label)
		}
		b.WriteString("\n")
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(fd.input.View())
		b.WriteString("\n")
	}
	b.WriteString(formHintStyle.Render("tab next field · enter submit · esc cancel"))
	return formCardStyle.Render(b.String())
}
