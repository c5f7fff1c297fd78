package view

import "commbot/model"

// MeetingView is the meeting-list counterpart of CommitteeView: fetched
// source plus the active filter, re-projected on every change.
type MeetingView struct {
	source []model.Meeting
	filter MeetingFilter
	result []model.Meeting
}

func NewMeetingView() *MeetingView {
	return &MeetingView{}
}

func (v *MeetingView) recompute() {
	v.result = Meetings(v.source, v.filter)
}

func (v *MeetingView) SetSource(src []model.Meeting) {
	v.source = src
	v.recompute()
}

func (v *MeetingView) SetSearch(term string) {
	v.filter.Search = term
	v.recompute()
}

func (v *MeetingView) SetVisibility(vis *model.MeetingVisibility) {
	v.filter.Visibility = vis
	v.recompute()
}

func (v *MeetingView) ClearFilters() {
	v.filter = MeetingFilter{}
	v.recompute()
}

func (v *MeetingView) Filter() MeetingFilter { return v.filter }

func (v *MeetingView) Result() []model.Meeting { return v.result }
