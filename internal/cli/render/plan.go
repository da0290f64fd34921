package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/trebuchet-org/chaindeploy/internal/usecase"
)

// PlanRenderer renders the linearized execution plan as a table.
type PlanRenderer struct {
	out io.Writer
}

// NewPlanRenderer creates a plan renderer.
func NewPlanRenderer(out io.Writer) *PlanRenderer {
	return &PlanRenderer{out: out}
}

// Render displays the execution plan.
func (r *PlanRenderer) Render(result *usecase.PlanDeploymentResult) error {
	color.New(color.Bold).Fprintf(r.out, "Execution plan for %s (%d components)\n\n",
		result.Plan.Group, len(result.Steps))

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Component", "Contract", "Kind", "Deps"})

	for i, step := range result.Steps {
		kind := "contract"
		if step.Library {
			kind = "library"
		}
		deps := strings.Join(step.Deps, ", ")
		if deps == "" {
			deps = "-"
		}
		t.AppendRow(table.Row{i + 1, step.Name, step.Contract, kind, deps})
	}

	t.Render()
	fmt.Fprintln(r.out)
	return nil
}
