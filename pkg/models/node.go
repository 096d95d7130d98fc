package models

// CategoryType represents the category of a node.
type CategoryType string

const (
	CategoryTypeAction  CategoryType = "action"
	CategoryTypeTrigger CategoryType = "trigger"
)

// TriggerNode is the single event that starts a workflow.
type TriggerNode struct {
	ID          string         `json:"id"          validate:"required"`
	Type        string         `json:"type"        validate:"required"`
	Name        string         `json:"name"        validate:"required,min=1"`
	Icon        string         `json:"icon,omitempty"`
	Integration string         `json:"integration" validate:"required"`
	Config      map[string]any `json:"config,omitempty"`
}

// ActionNode is one ordered step executed after the trigger fires.
type ActionNode struct {
	ID          string         `json:"id"          validate:"required"`
	Type        string         `json:"type"        validate:"required"`
	Name        string         `json:"name"        validate:"required,min=1"`
	Icon        string         `json:"icon,omitempty"`
	Integration string         `json:"integration" validate:"required"`
	Config      map[string]any `json:"config,omitempty"`
	Order       int            `json:"order"`
}

// Clone returns a deep copy, including the config map.
func (t *TriggerNode) Clone() *TriggerNode {
	copied := *t
	copied.Config = cloneConfig(t.Config)

	return &copied
}

// Clone returns a deep copy, including the config map.
func (a *ActionNode) Clone() *ActionNode {
	copied := *a
	copied.Config = cloneConfig(a.Config)

	return &copied
}

func cloneConfig(config map[string]any) map[string]any {
	if config == nil {
		return nil
	}

	copied := make(map[string]any, len(config))
	for k, v := range config {
		copied[k] = v
	}

	return copied
}

// Connection links two nodes in the draft by id.
type Connection struct {
	ID       string `json:"id"`
	SourceID string `json:"source_id" validate:"required"`
	TargetID string `json:"target_id" validate:"required"`
}

// WorkflowNode is a node inside an AI-generated workflow. Unlike draft nodes,
// trigger and action nodes live in one list and are told apart by category.
type WorkflowNode struct {
	ID          string         `json:"id"          validate:"required"`
	Type        string         `json:"type"        validate:"required"`
	Category    CategoryType   `json:"category"    validate:"required"`
	Name        string         `json:"name"        validate:"required,min=1"`
	Icon        string         `json:"icon,omitempty"`
	Integration string         `json:"integration"`
	Config      map[string]any `json:"config,omitempty"`
}

// Clone returns a deep copy, including the config map.
func (n *WorkflowNode) Clone() *WorkflowNode {
	copied := *n
	copied.Config = cloneConfig(n.Config)

	return &copied
}

func (n *WorkflowNode) IsActionNode() bool {
	return n.Category == CategoryTypeAction
}

func (n *WorkflowNode) IsTriggerNode() bool {
	return n.Category == CategoryTypeTrigger
}
