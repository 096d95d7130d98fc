package models

import "time"

// MissingInfoField is one outstanding clarifying question attached to an
// AI-generated workflow.
type MissingInfoField struct {
	Field    string `json:"field"    validate:"required"`
	Question string `json:"question,omitempty"`
	Example  string `json:"example,omitempty"`
}

// GeneratedWorkflow is a workflow produced by the AI path. Trigger and action
// nodes share one list; refinements overwrite the whole entry in place while
// collected parameters accumulate across turns.
type GeneratedWorkflow struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Nodes       []*WorkflowNode    `json:"nodes"`
	Confidence  float64            `json:"confidence"`
	Assumptions []string           `json:"assumptions,omitempty"`
	MissingInfo []MissingInfoField `json:"missing_info,omitempty"`
	Params      map[string]any     `json:"params,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Clone returns a deep copy, including nodes, params, and the missing-info
// list.
func (w *GeneratedWorkflow) Clone() *GeneratedWorkflow {
	copied := *w

	copied.Nodes = make([]*WorkflowNode, len(w.Nodes))
	for i, node := range w.Nodes {
		copied.Nodes[i] = node.Clone()
	}

	copied.Assumptions = append([]string(nil), w.Assumptions...)
	copied.MissingInfo = append([]MissingInfoField(nil), w.MissingInfo...)

	if w.Params != nil {
		copied.Params = make(map[string]any, len(w.Params))
		for k, v := range w.Params {
			copied.Params[k] = v
		}
	}

	return &copied
}

// TriggerNode returns the workflow's trigger node, or nil when the workflow
// has none.
func (w *GeneratedWorkflow) TriggerNode() *WorkflowNode {
	for _, node := range w.Nodes {
		if node.IsTriggerNode() {
			return node
		}
	}

	return nil
}

// RemoveNode deletes the node with the given id. Returns false when no node
// has that id, so removing twice is a no-op rather than an error.
func (w *GeneratedWorkflow) RemoveNode(id string) bool {
	for i, node := range w.Nodes {
		if node.ID == id {
			w.Nodes = append(w.Nodes[:i], w.Nodes[i+1:]...)
			w.UpdatedAt = time.Now().UTC()

			return true
		}
	}

	return false
}

// ResolveMissingInfo drops field from the outstanding missing-info list.
// Returns false when no question for that field is outstanding.
func (w *GeneratedWorkflow) ResolveMissingInfo(field string) bool {
	for i, info := range w.MissingInfo {
		if info.Field == field {
			w.MissingInfo = append(w.MissingInfo[:i], w.MissingInfo[i+1:]...)

			return true
		}
	}

	return false
}
