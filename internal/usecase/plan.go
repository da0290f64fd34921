package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/trebuchet-org/chaindeploy/internal/config"
	"github.com/trebuchet-org/chaindeploy/internal/domain"
)

// DeployPlan declares the contracts to deploy and their dependency relation.
// Components are ordered: among steps whose dependencies are equally
// satisfied, declaration order decides execution order.
type DeployPlan struct {
	Group      string       `yaml:"group"`
	Components []*Component `yaml:"components"`
}

// Component is a single deployable contract in the plan.
type Component struct {
	Name     string   `yaml:"name"`
	Contract string   `yaml:"contract"`
	Library  bool     `yaml:"library,omitempty"`
	Deps     []string `yaml:"deps,omitempty"`
}

// Ref returns the component's contract reference.
func (c *Component) Ref() domain.ContractRef {
	return domain.ContractRef(c.Contract)
}

// DefaultPlan is the built-in channel contract set. The two registries are
// the top-level contracts; the channel libraries are deployed first and
// linked into the Registry.
func DefaultPlan() *DeployPlan {
	return &DeployPlan{
		Group: "channel contracts",
		Components: []*Component{
			{
				Name:     "NettingChannelLibrary",
				Contract: "NettingChannelLibrary.sol:NettingChannelLibrary",
				Library:  true,
			},
			{
				Name:     "ChannelManagerLibrary",
				Contract: "ChannelManagerLibrary.sol:ChannelManagerLibrary",
				Library:  true,
				Deps:     []string{"NettingChannelLibrary"},
			},
			{
				Name:     "Registry",
				Contract: "Registry.sol:Registry",
				Deps:     []string{"ChannelManagerLibrary"},
			},
			{
				Name:     "EndpointRegistry",
				Contract: "EndpointRegistry.sol:EndpointRegistry",
			},
		},
	}
}

// ResolvePlan returns the manifest-declared plan when one is configured,
// the built-in plan otherwise.
func ResolvePlan(cfg *config.RuntimeConfig) (*DeployPlan, error) {
	if cfg.PlanFile == "" {
		return DefaultPlan(), nil
	}

	data, err := os.ReadFile(cfg.PlanFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var plan DeployPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan file: %w", err)
	}

	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", cfg.PlanFile, err)
	}
	return &plan, nil
}

// Validate checks the plan for structural errors.
func (p *DeployPlan) Validate() error {
	if len(p.Components) == 0 {
		return fmt.Errorf("at least one component is required")
	}

	byName := make(map[string]*Component, len(p.Components))
	for _, c := range p.Components {
		if c.Name == "" {
			return fmt.Errorf("component without a name")
		}
		if _, dup := byName[c.Name]; dup {
			return fmt.Errorf("duplicate component %q", c.Name)
		}
		if !c.Ref().Valid() {
			return fmt.Errorf("component %q: invalid contract reference %q", c.Name, c.Contract)
		}
		byName[c.Name] = c
	}

	for _, c := range p.Components {
		for _, dep := range c.Deps {
			if dep == c.Name {
				return fmt.Errorf("component %q cannot depend on itself", c.Name)
			}
			if _, exists := byName[dep]; !exists {
				return fmt.Errorf("component %q depends on unknown component %q", c.Name, dep)
			}
		}
	}

	return nil
}

// SourceFiles returns the unique source file names of the plan, in
// declaration order.
func (p *DeployPlan) SourceFiles() []string {
	return lo.Uniq(lo.Map(p.Components, func(c *Component, _ int) string {
		return c.Ref().SourceFile()
	}))
}

// SourcePaths resolves the plan's source files against the contracts
// directory.
func (p *DeployPlan) SourcePaths(contractsDir string) []string {
	return lo.Map(p.SourceFiles(), func(file string, _ int) string {
		return filepath.Join(contractsDir, file)
	})
}

// Component looks up a component by name.
func (p *DeployPlan) Component(name string) (*Component, bool) {
	for _, c := range p.Components {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// TopologicalSort returns the components in execution order: every
// dependency before its dependents, declaration order as tie-break.
// Returns an error if the dependency relation contains a cycle.
func (p *DeployPlan) TopologicalSort() ([]*Component, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	position := make(map[string]int, len(p.Components))
	inDegree := make(map[string]int, len(p.Components))
	dependents := make(map[string][]string)

	for i, c := range p.Components {
		position[c.Name] = i
		inDegree[c.Name] = len(c.Deps)
		for _, dep := range c.Deps {
			dependents[dep] = append(dependents[dep], c.Name)
		}
	}

	byPosition := func(names []string) {
		sort.Slice(names, func(i, j int) bool {
			return position[names[i]] < position[names[j]]
		})
	}

	var queue []string
	for _, c := range p.Components {
		if inDegree[c.Name] == 0 {
			queue = append(queue, c.Name)
		}
	}

	result := make([]*Component, 0, len(p.Components))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		component, _ := p.Component(current)
		result = append(result, component)

		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
		byPosition(queue)
	}

	if len(result) != len(p.Components) {
		var cycleNodes []string
		for name, degree := range inDegree {
			if degree > 0 {
				cycleNodes = append(cycleNodes, name)
			}
		}
		sort.Strings(cycleNodes)
		return nil, fmt.Errorf("circular dependency detected involving components: %v", cycleNodes)
	}

	return result, nil
}
