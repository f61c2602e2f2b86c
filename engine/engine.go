package engine

import (
	"context"

	"github.com/loomworks/bpm/workflow"
)

var _ workflow.Executor = &WorkflowEngine{}

func NewWorkflowEngine() *WorkflowEngine {
	return &WorkflowEngine{}
}

type WorkflowEngine struct {
}

func (w WorkflowEngine) Execute(ctx context.Context, wf workflow.Workflow) error {
	return wf.Execute(ctx)
}
