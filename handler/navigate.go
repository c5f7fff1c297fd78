package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/rs/zerolog/log"

	"commbot/repo"
	"commbot/view"
)

// TelegramNavigator renders destination views as messages. Routes follow
// "committees", "committee/<id>", "meetings", "meeting/<id>".
type TelegramNavigator struct {
	b     *bot.Bot
	store repo.Store
}

func NewTelegramNavigator(b *bot.Bot, store repo.Store) *TelegramNavigator {
	return &TelegramNavigator{b: b, store: store}
}

func (n *TelegramNavigator) send(ctx context.Context, chatID int64, text string) {
	_, err := n.b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("error sending navigation view")
	}
}

func (n *TelegramNavigator) GoTo(ctx context.Context, chatID int64, route string) {
	switch {
	case route == "committees":
		committees, err := n.store.Committees().List(ctx, "")
		if err != nil {
			log.Error().Err(err).Msg("error loading committee list")
			n.send(ctx, chatID, "Couldn't load the committee list. Try /committees again.")
			return
		}
		n.send(ctx, chatID, renderCommitteeList(committees))
	case strings.HasPrefix(route, "committee/"):
		id := strings.TrimPrefix(route, "committee/")
		c, err := n.store.Committees().Get(ctx, id)
		if err != nil {
			log.Error().Err(err).Str("committee_id", id).Msg("error loading committee")
			n.send(ctx, chatID, "Couldn't load the committee. Try /committees.")
			return
		}
		members, err := n.store.Members().List(ctx, id)
		if err != nil {
			log.Error().Err(err).Str("committee_id", id).Msg("error loading members")
		}
		n.send(ctx, chatID, renderCommitteeDetail(c, view.Members(members, view.MemberFilter{})))
	case route == "meetings":
		meetings, err := n.store.Meetings().List(ctx, "")
		if err != nil {
			log.Error().Err(err).Msg("error loading meeting list")
			n.send(ctx, chatID, "Couldn't load the meeting list. Try /meetings again.")
			return
		}
		n.send(ctx, chatID, renderMeetingList(meetings))
	case strings.HasPrefix(route, "meeting/"):
		id := strings.TrimPrefix(route, "meeting/")
		m, err := n.store.Meetings().Get(ctx, id)
		if err != nil {
			log.Error().Err(err).Str("meeting_id", id).Msg("error loading meeting")
			n.send(ctx, chatID, "Couldn't load the meeting. Try /meetings.")
			return
		}
		regs, err := n.store.Registrants().List(ctx, id)
		if err != nil {
			log.Error().Err(err).Str("meeting_id", id).Msg("error loading registrants")
		}
		n.send(ctx, chatID, renderMeetingDetail(m, view.Registrants(regs, "")))
	default:
		log.Warn().Str("route", route).Msg("unknown navigation route")
	}
}
