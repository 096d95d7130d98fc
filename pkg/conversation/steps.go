package conversation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/draftflow/draftflow/pkg/events"
	"github.com/draftflow/draftflow/pkg/intent"
	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/patterns"
	"github.com/draftflow/draftflow/pkg/suggest"
	"github.com/google/uuid"
)

var (
	reviewKeywords  = regexp.MustCompile(`(?i)\b(review|done|finished|that's (all|it)|looks good|create it|save it)\b`)
	confirmKeywords = regexp.MustCompile(`(?i)\b(create|yes|yep|save|confirm|go ahead|do it)\b`)
)

// step advances the state machine by one user turn.
func (e *Engine) step(ctx context.Context, sess *Session, text string) {
	switch sess.Step {
	case models.StepTrigger:
		e.stepTrigger(ctx, sess, text)
	case models.StepActions:
		e.stepActions(ctx, sess, text)
	case models.StepReview:
		e.stepReview(ctx, sess, text)
	case models.StepComplete:
		sess.append(assistantText("This workflow is complete. You can still edit it directly (\"remove gmail\", \"add slack\"), or ask me to start a new one."))
	case models.StepConfigure:
		// No transitions reach CONFIGURE yet; treat input as a request to
		// keep going rather than failing.
		sess.append(assistantText("Tell me more about what this workflow should do."))
	}
}

func (e *Engine) stepTrigger(ctx context.Context, sess *Session, text string) {
	extraction := intent.Extract(text)

	if !extraction.HasTrigger() {
		suggestions := suggest.Rank(text, models.StepTrigger)
		sess.append(suggestionMessage(
			models.MessageTypeTriggerSelect,
			"What should start this workflow? Here are some triggers that might fit:",
			suggestions,
		))

		return
	}

	trigger := triggerFromPreset(extraction.TriggerIntegration, extraction.TriggerType)
	sess.Draft.SetTrigger(trigger)

	if extraction.WorkflowName != "" {
		sess.Draft.Name = extraction.WorkflowName
	}

	if extraction.Description != "" {
		sess.Draft.Description = extraction.Description
	}

	e.publish(ctx, sess.ID, events.TriggerSet{
		BaseEvent:   events.NewBaseEvent(events.TriggerSetEvent, sess.ID),
		DraftID:     sess.Draft.ID,
		Integration: trigger.Integration,
		TriggerType: trigger.Type,
	})

	// One-shot descriptions ("when X, do Y") usually carry actions too;
	// apply them from the same utterance.
	added := e.addActions(ctx, sess, extraction.Actions)

	sess.Step = models.StepActions

	if added > 0 {
		sess.append(previewMessage(
			fmt.Sprintf("Here's what I suggest: when %q fires, %s. Want to add more steps, or say \"review\" when you're ready.",
				trigger.Name, actionNames(sess.Draft)),
			sess.Draft,
		))

		return
	}

	sess.append(assistantText(fmt.Sprintf("Got it - this workflow starts on %q. What should happen next?", trigger.Name)))
}

func (e *Engine) stepActions(ctx context.Context, sess *Session, text string) {
	extraction := intent.Extract(text)

	if added := e.addActions(ctx, sess, extraction.Actions); added > 0 {
		sess.append(previewMessage(
			fmt.Sprintf("Added %d step(s). Anything else, or say \"review\" to see the whole workflow.", added),
			sess.Draft,
		))

		return
	}

	if reviewKeywords.MatchString(text) {
		sess.Step = models.StepReview
		sess.append(previewMessage(summarize(sess.Draft)+"\n\nSay \"create\" to finish, or tell me what to change.", sess.Draft))

		return
	}

	suggestions := suggest.Rank(text, models.StepActions)
	sess.append(suggestionMessage(
		models.MessageTypeActionSelect,
		"What should this workflow do? Here are some actions that might fit:",
		suggestions,
	))
}

func (e *Engine) stepReview(ctx context.Context, sess *Session, text string) {
	if !confirmKeywords.MatchString(text) {
		sess.append(assistantText("What would you like to change - the trigger, the actions, or the name?"))

		return
	}

	sess.Step = models.StepComplete
	sess.append(completeMessage(
		fmt.Sprintf("Your workflow %q is ready: %d step(s) after the trigger.", sess.Draft.Name, len(sess.Draft.Actions)),
		sess.Draft,
	))

	e.publish(ctx, sess.ID, events.ConversationCompleted{
		BaseEvent:   events.NewBaseEvent(events.ConversationCompletedEvent, sess.ID),
		DraftID:     sess.Draft.ID,
		ActionCount: len(sess.Draft.Actions),
	})
}

func (e *Engine) addActions(ctx context.Context, sess *Session, matches []intent.ActionMatch) int {
	for _, match := range matches {
		action := actionFromPreset(match.Integration, match.Type)
		sess.Draft.AddAction(action)

		e.publish(ctx, sess.ID, events.ActionAdded{
			BaseEvent:   events.NewBaseEvent(events.ActionAddedEvent, sess.ID),
			DraftID:     sess.Draft.ID,
			ActionID:    action.ID,
			Integration: action.Integration,
			ActionType:  action.Type,
			Order:       action.Order,
		})
	}

	return len(matches)
}

func triggerFromPreset(integration, nodeType string) *models.TriggerNode {
	trigger := &models.TriggerNode{
		ID:          uuid.New().String(),
		Type:        nodeType,
		Name:        fallbackNodeName(integration, nodeType),
		Icon:        integration,
		Integration: integration,
		Config:      make(map[string]any),
	}

	if preset := patterns.FindTriggerPreset(integration, nodeType); preset != nil {
		trigger.Name = preset.Name
		trigger.Icon = preset.Icon
	}

	return trigger
}

func actionFromPreset(integration, nodeType string) *models.ActionNode {
	action := &models.ActionNode{
		ID:          uuid.New().String(),
		Type:        nodeType,
		Name:        fallbackNodeName(integration, nodeType),
		Icon:        integration,
		Integration: integration,
		Config:      make(map[string]any),
	}

	if preset := patterns.FindActionPreset(integration, nodeType); preset != nil {
		action.Name = preset.Name
		action.Icon = preset.Icon
	}

	return action
}

func fallbackNodeName(integration, nodeType string) string {
	name := strings.ReplaceAll(nodeType, "_", " ")

	return strings.TrimSpace(fmt.Sprintf("%s %s", strings.ToUpper(integration[:1])+integration[1:], name))
}

func actionNames(draft *models.WorkflowDraft) string {
	names := make([]string, 0, len(draft.Actions))
	for _, action := range draft.Actions {
		names = append(names, strings.ToLower(action.Name))
	}

	return strings.Join(names, ", then ")
}
