package committer

import "cloud.google.com/go/spanner"

// Plan collects the mutations of one journal write. Repositories only build
// mutations; a Plan is applied as a unit by a Committer.
type Plan struct {
	mutations []*spanner.Mutation
}

func NewPlan() *Plan {
	return &Plan{}
}

// Add appends m. Nil mutations (nothing to write) are skipped.
func (p *Plan) Add(m *spanner.Mutation) {
	if m != nil {
		p.mutations = append(p.mutations, m)
	}
}

func (p *Plan) Len() int {
	return len(p.mutations)
}

func (p *Plan) IsEmpty() bool {
	return p.Len() == 0
}

func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}
