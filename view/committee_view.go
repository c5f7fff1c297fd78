package view

import "commbot/model"

// CommitteeView is the stateful wrapper the conversation layer holds for a
// list screen: it keeps the fetched source and the active filter, and
// recomputes the projection whenever either changes.
type CommitteeView struct {
	source []model.Committee
	filter CommitteeFilter
	result []model.Committee
}

func NewCommitteeView() *CommitteeView {
	return &CommitteeView{}
}

func (v *CommitteeView) recompute() {
	v.result = Committees(v.source, v.filter)
}

// SetSource replaces the fetched collection, e.g. after a reload.
func (v *CommitteeView) SetSource(src []model.Committee) {
	v.source = src
	v.recompute()
}

func (v *CommitteeView) SetSearch(term string) {
	v.filter.Search = term
	v.recompute()
}

func (v *CommitteeView) SetCategory(c *model.CommitteeCategory) {
	v.filter.Category = c
	v.recompute()
}

func (v *CommitteeView) SetVoting(voting *bool) {
	v.filter.Voting = voting
	v.recompute()
}

func (v *CommitteeView) ClearFilters() {
	v.filter = CommitteeFilter{}
	v.recompute()
}

func (v *CommitteeView) Filter() CommitteeFilter { return v.filter }

// Result is the current projection.
func (v *CommitteeView) Result() []model.Committee { return v.result }
