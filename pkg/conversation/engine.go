// Package conversation drives the multi-turn authoring dialogue: it owns the
// creation-step state machine, consumes the intent extractor and suggestion
// ranker, and appends every turn's messages to the session log.
package conversation

import (
	"context"
	"log/slog"

	"github.com/draftflow/draftflow/pkg/ai"
	"github.com/draftflow/draftflow/pkg/editcmd"
	"github.com/draftflow/draftflow/pkg/eventbus"
	"github.com/draftflow/draftflow/pkg/events"
	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/otelhelper"
	"github.com/draftflow/draftflow/pkg/persistence"
	"github.com/draftflow/draftflow/pkg/refine"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Engine processes user turns. Every collaborator beyond the logger is
// optional and turned off when nil.
type Engine struct {
	logger    *slog.Logger
	persister *persistence.FireAndForget
	bus       eventbus.EventBus
	tracer    trace.Tracer

	chat     ai.ChatService
	analyzer ai.IntentAnalyzer
	builder  ai.WorkflowBuilder
}

// Option configures an Engine.
type Option func(*Engine)

func WithPersister(persister *persistence.FireAndForget) Option {
	return func(e *Engine) { e.persister = persister }
}

func WithEventBus(bus eventbus.EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) { e.tracer = tracer }
}

func WithChatService(chat ai.ChatService) Option {
	return func(e *Engine) { e.chat = chat }
}

func WithFallbackServices(analyzer ai.IntentAnalyzer, builder ai.WorkflowBuilder) Option {
	return func(e *Engine) {
		e.analyzer = analyzer
		e.builder = builder
	}
}

// NewEngine creates an engine.
func NewEngine(logger *slog.Logger, opts ...Option) *Engine {
	engine := &Engine{logger: logger}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// ProcessUserInput handles one user turn to completion and returns the
// messages appended during it (the user's own message included). It never
// returns an error for unrecognized input; everything degrades to a
// clarifying prompt.
func (e *Engine) ProcessUserInput(ctx context.Context, sess *Session, text string) []*models.ConversationMessage {
	// No cancellation of an in-flight call: a second turn arriving while
	// one is being processed is rejected rather than queued. The rejection
	// must not touch the session log: the in-flight turn owns it.
	if !sess.inFlight.CompareAndSwap(false, true) {
		return []*models.ConversationMessage{
			assistantText("I'm still working on your last message - one moment."),
		}
	}

	defer sess.inFlight.Store(false)

	if e.tracer != nil {
		var span trace.Span

		ctx, span = otelhelper.StartSpan(ctx, e.tracer, "conversation.turn",
			attribute.String(otelhelper.SessionIDKey, sess.ID),
			attribute.String(otelhelper.DraftIDKey, sess.Draft.ID),
			attribute.String(otelhelper.StepKey, string(sess.Step)),
		)
		defer span.End()
	}

	before := len(sess.Messages)
	sess.append(userMessage(text))

	// Direct edit commands bypass the state machine entirely.
	if command := editcmd.Parse(text); command != nil {
		e.applyEditCommand(ctx, sess, command)
	} else if e.chat != nil {
		e.processWithChat(ctx, sess, text)
	} else {
		e.step(ctx, sess, text)
	}

	e.save(ctx, sess)

	return sess.Messages[before:]
}

// AnswerMissingInfo routes an answer to a post-generation clarifying question
// through the missing-info resolver. Help answers are forwarded back into the
// main conversational channel as a fresh turn.
func (e *Engine) AnswerMissingInfo(ctx context.Context, sess *Session, field, value string) []*models.ConversationMessage {
	before := len(sess.Messages)

	result := refine.AnswerMissingInfo(sess.Store, field, value)
	sess.append(assistantText(result.Message))

	if result.Kind == refine.AnswerHelp && result.HelpRequest != "" {
		e.ProcessUserInput(ctx, sess, result.HelpRequest)
	}

	e.save(ctx, sess)

	return sess.Messages[before:]
}

// Reset destroys the session's draft and generated workflows, returning the
// step pointer to TRIGGER.
func (e *Engine) Reset(ctx context.Context, sess *Session) {
	sess.Draft = models.NewWorkflowDraft(sess.Draft.ID)
	sess.Step = models.StepTrigger
	sess.Store.Reset()

	e.publish(ctx, sess.ID, events.DraftReset{
		BaseEvent:  events.NewBaseEvent(events.DraftResetEvent, sess.ID),
		NewDraftID: sess.Draft.ID,
	})
	e.save(ctx, sess)
}

func (e *Engine) applyEditCommand(ctx context.Context, sess *Session, command *editcmd.Command) {
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String(otelhelper.CommandKey, string(command.Kind)+" "+command.Target),
	)

	result := editcmd.Apply(sess.Store, command)
	sess.append(result.Message)

	if !result.Mutated {
		return
	}

	workflow := sess.Store.ActiveWorkflow()
	if workflow == nil {
		return
	}

	switch command.Kind {
	case editcmd.CommandRemove:
		e.publish(ctx, sess.ID, events.NodeRemoved{
			BaseEvent:  events.NewBaseEvent(events.NodeRemovedEvent, sess.ID),
			WorkflowID: workflow.ID,
			NodeID:     result.NodeID,
			WasTrigger: result.WasTrigger,
		})
	case editcmd.CommandAdd:
		e.publish(ctx, sess.ID, events.NodeAdded{
			BaseEvent:   events.NewBaseEvent(events.NodeAddedEvent, sess.ID),
			WorkflowID:  workflow.ID,
			NodeID:      result.NodeID,
			Integration: command.Target,
		})
	}
}

// processWithChat runs the remote conversational path with the fallback
// chain: chat, then the template-based analyze+build pair, then an apologetic
// reset.
func (e *Engine) processWithChat(ctx context.Context, sess *Session, text string) {
	result, err := e.chat.Chat(ctx, text, ai.ChatOptions{})
	if err == nil {
		e.consumeChatResult(ctx, sess, result)

		return
	}

	e.logger.Warn("chat service failed, falling back", "error", err)

	if e.analyzer != nil && e.builder != nil {
		proposal, buildErr := e.templateBuild(ctx, sess, text)
		if buildErr == nil {
			e.applyProposal(ctx, sess, proposal)

			return
		}

		e.logger.Error("template fallback failed", "error", buildErr)
		sess.append(assistantText("Sorry - I couldn't process that just now. Let's start over: what should trigger your workflow?"))
		sess.Step = models.StepTrigger

		return
	}

	// No remote fallback configured: the local pattern path still works.
	e.step(ctx, sess, text)
}

func (e *Engine) consumeChatResult(ctx context.Context, sess *Session, result *ai.ChatResult) {
	if result.Proposal != nil {
		e.applyProposal(ctx, sess, result.Proposal)

		return
	}

	content := result.Reply.Text
	for _, question := range result.Reply.ClarifyingQuestions {
		content += "\n- " + question
	}

	sess.append(assistantText(content))
}

func (e *Engine) applyProposal(ctx context.Context, sess *Session, proposal *ai.WorkflowProposal) {
	resolution := refine.Resolve(sess.Store, proposal)
	sess.append(resolution.Message())

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String(otelhelper.WorkflowIDKey, resolution.Workflow.ID),
	)

	eventType := events.WorkflowGeneratedEvent
	if resolution.Refined {
		eventType = events.WorkflowRefinedEvent
	}

	e.publish(ctx, sess.ID, events.WorkflowGenerated{
		BaseEvent:  events.NewBaseEvent(eventType, sess.ID),
		WorkflowID: resolution.Workflow.ID,
		Refined:    resolution.Refined,
		Confidence: resolution.Workflow.Confidence,
	})
}

func (e *Engine) templateBuild(ctx context.Context, sess *Session, text string) (*ai.WorkflowProposal, error) {
	analysis, err := e.analyzer.AnalyzeIntent(ctx, text, ai.AnalyzeOptions{History: sess.Messages})
	if err != nil {
		return nil, err
	}

	built, err := e.builder.BuildWorkflow(ctx, ai.BuildRequest{
		Intent:      analysis.Understanding,
		UserMessage: text,
	})
	if err != nil {
		return nil, err
	}

	return &ai.WorkflowProposal{
		Name:        built.Name,
		Description: built.Description,
		Nodes:       built.Nodes,
		Confidence:  analysis.Confidence,
	}, nil
}

func (e *Engine) publish(ctx context.Context, key string, event events.Event) {
	if e.bus == nil {
		return
	}

	if err := e.bus.Publish(ctx, key, event); err != nil {
		e.logger.Warn("event publish failed", "event_type", event.GetType(), "error", err)
	}
}

func (e *Engine) save(ctx context.Context, sess *Session) {
	if e.persister == nil {
		return
	}

	e.persister.SaveDraft(ctx, sess.Draft)
	e.persister.SaveSession(ctx, sess.Store)
}
