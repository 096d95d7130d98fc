package patterns

import "github.com/draftflow/draftflow/pkg/models"

// Preset is one catalog entry the suggestion ranker scores and the
// conversation engine instantiates nodes from.
type Preset struct {
	Type        string
	Integration string
	Name        string
	Icon        string
	Category    models.CategoryType
}

// TriggerPresets is the trigger catalog, one entry per trigger pattern target.
var TriggerPresets = []Preset{
	{"new_issue", "github", "New GitHub Issue", "github", models.CategoryTypeTrigger},
	{"new_pull_request", "github", "New Pull Request", "github", models.CategoryTypeTrigger},
	{"new_email", "gmail", "New Email Received", "mail", models.CategoryTypeTrigger},
	{"new_message", "slack", "New Slack Message", "slack", models.CategoryTypeTrigger},
	{"new_row", "sheets", "New Spreadsheet Row", "table", models.CategoryTypeTrigger},
	{"card_created", "trello", "New Trello Card", "trello", models.CategoryTypeTrigger},
	{"form_submitted", "forms", "Form Submitted", "form", models.CategoryTypeTrigger},
	{"schedule", "schedule", "On a Schedule", "clock", models.CategoryTypeTrigger},
	{"webhook", "webhook", "Webhook Received", "webhook", models.CategoryTypeTrigger},
	{"event_starting", "calendar", "Calendar Event Starting", "calendar", models.CategoryTypeTrigger},
	{"payment_received", "stripe", "Payment Received", "stripe", models.CategoryTypeTrigger},
	{"file_uploaded", "drive", "File Uploaded", "drive", models.CategoryTypeTrigger},
}

// ActionPresets is the action catalog.
var ActionPresets = []Preset{
	{"send_message", "slack", "Send Slack Message", "slack", models.CategoryTypeAction},
	{"send_email", "gmail", "Send Email", "mail", models.CategoryTypeAction},
	{"add_row", "sheets", "Add Spreadsheet Row", "table", models.CategoryTypeAction},
	{"create_card", "trello", "Create Trello Card", "trello", models.CategoryTypeAction},
	{"create_issue", "github", "Create GitHub Issue", "github", models.CategoryTypeAction},
	{"create_page", "notion", "Create Notion Page", "notion", models.CategoryTypeAction},
	{"create_event", "calendar", "Create Calendar Event", "calendar", models.CategoryTypeAction},
	{"send_sms", "twilio", "Send SMS", "phone", models.CategoryTypeAction},
	{"upload_file", "drive", "Upload File", "drive", models.CategoryTypeAction},
	{"http_request", "webhook", "Call Webhook", "webhook", models.CategoryTypeAction},
}

// FindTriggerPreset returns the trigger preset for an (integration, type)
// pair, or nil when the catalog has no such entry.
func FindTriggerPreset(integration, nodeType string) *Preset {
	for i := range TriggerPresets {
		if TriggerPresets[i].Integration == integration && TriggerPresets[i].Type == nodeType {
			return &TriggerPresets[i]
		}
	}

	return nil
}

// FindActionPreset returns the action preset for an (integration, type) pair.
func FindActionPreset(integration, nodeType string) *Preset {
	for i := range ActionPresets {
		if ActionPresets[i].Integration == integration && ActionPresets[i].Type == nodeType {
			return &ActionPresets[i]
		}
	}

	return nil
}
