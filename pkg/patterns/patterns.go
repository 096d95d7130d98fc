// Package patterns holds the static tables that map natural-language text to
// integrations and node types. Keeping these as data keeps the matching logic
// unit-testable in isolation and extensible without touching control flow.
package patterns

import "regexp"

// TriggerPattern maps a text pattern to a trigger preset. Tables are scanned
// in order; the first match wins.
type TriggerPattern struct {
	Pattern     *regexp.Regexp
	Integration string
	Type        string
}

// ActionPattern maps a text pattern to an action preset. All matches are
// kept, deduplicated by integration.
type ActionPattern struct {
	Pattern     *regexp.Regexp
	Integration string
	Type        string
}

// TriggerPatterns is the priority-ordered trigger table. More specific
// patterns come first so that e.g. "github issue" beats a bare "issue".
var TriggerPatterns = []TriggerPattern{
	{regexp.MustCompile(`(?i)\bnew\s+github\s+issue\b|\bgithub\s+issue\b`), "github", "new_issue"},
	{regexp.MustCompile(`(?i)\bnew\s+pull\s+request\b|\bpull\s+request\s+(is\s+)?(opened|created)\b`), "github", "new_pull_request"},
	{regexp.MustCompile(`(?i)\b(receive|get|new)\s+(an?\s+)?email\b|\bemail\s+(arrives|comes\s+in)\b`), "gmail", "new_email"},
	{regexp.MustCompile(`(?i)\bnew\s+slack\s+message\b|\bslack\s+message\s+(arrives|is\s+posted)\b|\bmentioned\s+(in|on)\s+slack\b`), "slack", "new_message"},
	{regexp.MustCompile(`(?i)\bnew\s+row\b|\brow\s+(is\s+)?added\b|\bspreadsheet\s+(is\s+)?updated\b`), "sheets", "new_row"},
	{regexp.MustCompile(`(?i)\bnew\s+(trello\s+)?card\b|\bcard\s+(is\s+)?(created|added|moved)\b`), "trello", "card_created"},
	{regexp.MustCompile(`(?i)\bform\s+(is\s+)?submitted\b|\bnew\s+form\s+(response|submission)\b`), "forms", "form_submitted"},
	{regexp.MustCompile(`(?i)\bevery\s+(day|morning|hour|week|monday|friday)\b|\bdaily\b|\bweekly\b|\bon\s+a\s+schedule\b|\bat\s+\d{1,2}(:\d{2})?\s*(am|pm)?\b`), "schedule", "schedule"},
	{regexp.MustCompile(`(?i)\bwebhook\b|\bhttp\s+request\s+(arrives|comes\s+in)\b|\bapi\s+call\b`), "webhook", "webhook"},
	{regexp.MustCompile(`(?i)\bnew\s+calendar\s+event\b|\bevent\s+(is\s+)?(scheduled|starts)\b|\bmeeting\s+(starts|begins)\b`), "calendar", "event_starting"},
	{regexp.MustCompile(`(?i)\bnew\s+(stripe\s+)?payment\b|\bpayment\s+(received|succeeds)\b|\bcustomer\s+pays\b`), "stripe", "payment_received"},
	{regexp.MustCompile(`(?i)\bfile\s+(is\s+)?(uploaded|added)\b|\bnew\s+file\b`), "drive", "file_uploaded"},
}

// ActionPatterns is the action table. Verb-anchored patterns so that trigger
// phrasing ("when I get a slack message") does not also read as an action.
var ActionPatterns = []ActionPattern{
	{regexp.MustCompile(`(?i)\bsend\s+(a\s+|me\s+a\s+)?slack\s+message\b|\bpost\s+(to|in|on)\s+slack\b|\bnotify\s+.{0,30}\bslack\b|\bslack\s+message\b`), "slack", "send_message"},
	{regexp.MustCompile(`(?i)\bsend\s+(an?\s+|me\s+an?\s+)?email\b|\bemail\s+(me|the\s+team|them)\b`), "gmail", "send_email"},
	{regexp.MustCompile(`(?i)\badd\s+(a\s+)?row\b|\b(log|record|save)\s+.{0,30}\b(sheet|spreadsheet)\b|\bto\s+a\s+spreadsheet\b`), "sheets", "add_row"},
	{regexp.MustCompile(`(?i)\bcreate\s+(a\s+)?(trello\s+)?card\b|\badd\s+.{0,20}\bto\s+trello\b`), "trello", "create_card"},
	{regexp.MustCompile(`(?i)\bcreate\s+(an?\s+)?(github\s+)?issue\b|\bopen\s+(an?\s+)?issue\b`), "github", "create_issue"},
	{regexp.MustCompile(`(?i)\bcreate\s+(a\s+)?(notion\s+)?page\b|\badd\s+.{0,20}\bto\s+notion\b`), "notion", "create_page"},
	{regexp.MustCompile(`(?i)\bcreate\s+(a\s+)?calendar\s+event\b|\bschedule\s+(a\s+)?meeting\b|\badd\s+.{0,20}\bto\s+(my\s+)?calendar\b`), "calendar", "create_event"},
	{regexp.MustCompile(`(?i)\bsend\s+(a\s+)?(text|sms)\b|\btext\s+me\b`), "twilio", "send_sms"},
	{regexp.MustCompile(`(?i)\bupload\s+.{0,20}\b(file|document)\b|\bsave\s+.{0,20}\bto\s+drive\b`), "drive", "upload_file"},
	{regexp.MustCompile(`(?i)\bcall\s+(an?\s+)?(api|webhook|endpoint)\b|\bmake\s+an?\s+http\s+request\b`), "webhook", "http_request"},
}

// NamePatterns extract an explicit workflow name from phrasing like
// "workflow called X" or "workflow for X". The first capture group is the name.
var NamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bworkflow\s+(?:called|named)\s+["']?([^"'.,!?]+)["']?`),
	regexp.MustCompile(`(?i)\bworkflow\s+for\s+["']?([^"'.,!?]+)["']?`),
}

// DefaultActions maps an integration to the action type a bare "add X"
// command synthesizes when the user names only the integration.
var DefaultActions = map[string]string{
	"slack":    "send_message",
	"gmail":    "send_email",
	"sheets":   "add_row",
	"trello":   "create_card",
	"github":   "create_issue",
	"notion":   "create_page",
	"calendar": "create_event",
	"twilio":   "send_sms",
	"drive":    "upload_file",
	"webhook":  "http_request",
}

// DefaultActionType resolves the default action type for an integration,
// falling back to a generic "action".
func DefaultActionType(integration string) string {
	if actionType, ok := DefaultActions[integration]; ok {
		return actionType
	}

	return "action"
}
