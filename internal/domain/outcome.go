package domain

// IconKind names the glyph a renderer should show for an outcome.
type IconKind string

const (
	IconError   IconKind = "error"
	IconWarning IconKind = "warning"
	IconRetry   IconKind = "retry"
	IconSuccess IconKind = "success"
	IconMail    IconKind = "mail"
)

// Trigger names a client-only effect attached to an action. The core never
// executes it.
type Trigger string

const (
	TriggerReload         Trigger = "reload"
	TriggerOpenMailClient Trigger = "open-mail-client"
)

// Action is a button or link offered by an outcome surface.
type Action struct {
	Text    string  `json:"text"`
	Href    string  `json:"href"`
	Trigger Trigger `json:"trigger,omitempty"`
}

// AutoRedirect asks the renderer to navigate after DelayMs.
type AutoRedirect struct {
	TargetHref string `json:"target_href"`
	DelayMs    int64  `json:"delay_ms"`
}

// OutcomeDescriptor is the presentation contract for one classification key.
type OutcomeDescriptor struct {
	Key             string        `json:"key"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	DefaultMessage  string        `json:"default_message"`
	Icon            IconKind      `json:"icon"`
	PrimaryAction   Action        `json:"primary_action"`
	SecondaryAction *Action       `json:"secondary_action,omitempty"`
	ShowResend      bool          `json:"show_resend"`
	AutoRedirect    *AutoRedirect `json:"auto_redirect,omitempty"`
}

// Clone returns a deep copy so callers can never write into a catalog entry.
func (d OutcomeDescriptor) Clone() OutcomeDescriptor {
	out := d
	if d.SecondaryAction != nil {
		a := *d.SecondaryAction
		out.SecondaryAction = &a
	}
	if d.AutoRedirect != nil {
		r := *d.AutoRedirect
		out.AutoRedirect = &r
	}
	return out
}

// LinkParams are the read-only query keys a surface was opened with.
type LinkParams struct {
	Type     string
	Message  string
	Email    string
	Redirect string
}
