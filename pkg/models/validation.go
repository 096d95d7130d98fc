package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// ValidationErrorType classifies why a draft is not saveable.
type ValidationErrorType string

const (
	ValidationMissingTrigger     ValidationErrorType = "missing_trigger"
	ValidationMissingActions     ValidationErrorType = "missing_actions"
	ValidationIncompleteConfig   ValidationErrorType = "incomplete_config"
	ValidationInvalidConnection  ValidationErrorType = "invalid_connection"
	ValidationMissingIntegration ValidationErrorType = "missing_integration"
)

// ValidationError describes one problem with a draft. Recomputed on demand,
// never persisted.
type ValidationError struct {
	Type    ValidationErrorType `json:"type"`
	Message string              `json:"message"`
	NodeID  string              `json:"node_id,omitempty"`
	Field   string              `json:"field,omitempty"`
}

var (
	structValidator = validator.New()
	cronParser      = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
)

// Validate recomputes the full error list for the draft. An empty result
// means the draft is saveable. Malformed drafts never cause a panic or an
// error return; every problem becomes a ValidationError entry.
func (d *WorkflowDraft) Validate() []ValidationError {
	errs := make([]ValidationError, 0)

	if d.Trigger == nil {
		errs = append(errs, ValidationError{
			Type:    ValidationMissingTrigger,
			Message: "Workflow needs a trigger to know when to start",
		})
	} else {
		errs = append(errs, validateTrigger(d.Trigger)...)
	}

	if len(d.Actions) == 0 {
		errs = append(errs, ValidationError{
			Type:    ValidationMissingActions,
			Message: "Workflow needs at least one action",
		})
	}

	for _, action := range d.Actions {
		if action.Integration == "" {
			errs = append(errs, ValidationError{
				Type:    ValidationMissingIntegration,
				Message: fmt.Sprintf("Step %q is not bound to an integration", action.Name),
				NodeID:  action.ID,
				Field:   "integration",
			})
		} else if err := structValidator.Struct(action); err != nil {
			errs = append(errs, ValidationError{
				Type:    ValidationIncompleteConfig,
				Message: fmt.Sprintf("Step %q is missing required fields", action.Name),
				NodeID:  action.ID,
			})
		}
	}

	errs = append(errs, d.validateConnections()...)

	return errs
}

func validateTrigger(trigger *TriggerNode) []ValidationError {
	errs := make([]ValidationError, 0)

	if trigger.Integration == "" {
		errs = append(errs, ValidationError{
			Type:    ValidationMissingIntegration,
			Message: "Trigger is not bound to an integration",
			NodeID:  trigger.ID,
			Field:   "integration",
		})

		return errs
	}

	if err := structValidator.Struct(trigger); err != nil {
		errs = append(errs, ValidationError{
			Type:    ValidationIncompleteConfig,
			Message: "Trigger is missing required fields",
			NodeID:  trigger.ID,
		})
	}

	// Schedule triggers carry a cron expression in config; a bad expression
	// would silently never fire once executed.
	if trigger.Integration == "schedule" {
		if expr, ok := trigger.Config["cron"].(string); ok && expr != "" {
			if _, err := cronParser.Parse(expr); err != nil {
				errs = append(errs, ValidationError{
					Type:    ValidationIncompleteConfig,
					Message: fmt.Sprintf("Invalid schedule expression %q: %v", expr, err),
					NodeID:  trigger.ID,
					Field:   "cron",
				})
			}
		}
	}

	return errs
}

func (d *WorkflowDraft) validateConnections() []ValidationError {
	known := make(map[string]bool, len(d.Actions)+1)
	if d.Trigger != nil {
		known[d.Trigger.ID] = true
	}

	for _, action := range d.Actions {
		known[action.ID] = true
	}

	errs := make([]ValidationError, 0)

	for _, conn := range d.Connections {
		if !known[conn.SourceID] || !known[conn.TargetID] {
			errs = append(errs, ValidationError{
				Type:    ValidationInvalidConnection,
				Message: fmt.Sprintf("Connection %s references a node that no longer exists", conn.ID),
				NodeID:  conn.ID,
			})
		}
	}

	return errs
}
