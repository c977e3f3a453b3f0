// Package discord adapts a Discord gateway session to the paginator
// transport contract: messages become surfaces, reactions become markers,
// and channel messages become jump replies.
package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/atomic"

	"github.com/wfaller/pageturn/internal/paginator"
)

// Transport implements paginator.Transport over one discordgo session. The
// session must be open before any wait method is called; handler
// registration is scoped to each wait and removed when it returns, so
// events delivered between cycles are never buffered.
type Transport struct {
	session *discordgo.Session
}

var _ paginator.Transport = (*Transport)(nil)

// New wraps an opened discordgo session.
func New(session *discordgo.Session) *Transport {
	return &Transport{session: session}
}

// NonBot is the default qualify predicate for unrestricted sessions: any
// identity the gateway did not flag as a bot qualifies.
func NonBot(actor paginator.Identity) bool {
	return !actor.Bot
}

// Publish sends view to the destination channel. Embed payloads render the
// page indicator as the embed footer; string payloads are sent verbatim.
func (t *Transport) Publish(ctx context.Context, destination string, view paginator.PageView) (paginator.SurfaceID, error) {
	switch body := view.Body.(type) {
	case *discordgo.MessageEmbed:
		message, err := t.session.ChannelMessageSendEmbed(destination, withIndicator(body, view.Indicator))
		if err != nil {
			return paginator.SurfaceID{}, fmt.Errorf("send embed: %w", err)
		}
		return paginator.SurfaceID{Destination: destination, ID: message.ID}, nil
	case string:
		message, err := t.session.ChannelMessageSend(destination, body)
		if err != nil {
			return paginator.SurfaceID{}, fmt.Errorf("send message: %w", err)
		}
		return paginator.SurfaceID{Destination: destination, ID: message.ID}, nil
	default:
		return paginator.SurfaceID{}, fmt.Errorf("unsupported page content %T", view.Body)
	}
}

// Edit replaces the surface's message with view.
func (t *Transport) Edit(ctx context.Context, surface paginator.SurfaceID, view paginator.PageView) error {
	switch body := view.Body.(type) {
	case *discordgo.MessageEmbed:
		if _, err := t.session.ChannelMessageEditEmbed(surface.Destination, surface.ID, withIndicator(body, view.Indicator)); err != nil {
			return fmt.Errorf("edit embed: %w", err)
		}
		return nil
	case string:
		if _, err := t.session.ChannelMessageEdit(surface.Destination, surface.ID, body); err != nil {
			return fmt.Errorf("edit message: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported page content %T", view.Body)
	}
}

// Delete removes the surface's message.
func (t *Transport) Delete(ctx context.Context, surface paginator.SurfaceID) error {
	if err := t.session.ChannelMessageDelete(surface.Destination, surface.ID); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// AddMarker reacts to the surface with symbol.
func (t *Transport) AddMarker(ctx context.Context, surface paginator.SurfaceID, symbol string) error {
	if err := t.session.MessageReactionAdd(surface.Destination, surface.ID, symbol); err != nil {
		return fmt.Errorf("add reaction %s: %w", symbol, err)
	}
	return nil
}

// RemoveMarker retracts one actor's reaction from the surface.
func (t *Transport) RemoveMarker(ctx context.Context, surface paginator.SurfaceID, symbol string, actor paginator.Identity) error {
	if err := t.session.MessageReactionRemove(surface.Destination, surface.ID, symbol, actor.ID); err != nil {
		return fmt.Errorf("remove reaction %s: %w", symbol, err)
	}
	return nil
}

// ClearMarkers removes every reaction from the surface.
func (t *Transport) ClearMarkers(ctx context.Context, surface paginator.SurfaceID) error {
	if err := t.session.MessageReactionsRemoveAll(surface.Destination, surface.ID); err != nil {
		return fmt.Errorf("remove all reactions: %w", err)
	}
	return nil
}

// AwaitEvent waits for the first qualifying reaction added to the surface.
func (t *Transport) AwaitEvent(ctx context.Context, surface paginator.SurfaceID, qualify func(paginator.Event) bool, wait time.Duration) (paginator.Event, error) {
	events := make(chan paginator.Event, 1)
	won := atomic.NewBool(false)

	remove := t.session.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
		if r.MessageID != surface.ID || r.ChannelID != surface.Destination {
			return
		}
		event := paginator.Event{
			Surface: surface,
			Actor:   reactionIdentity(s, r),
			Symbol:  r.Emoji.APIName(),
		}
		if !qualify(event) {
			return
		}
		// First qualifying reaction wins the cycle; later candidates are
		// dropped here rather than buffered.
		if !won.CompareAndSwap(false, true) {
			return
		}
		events <- event
	})
	defer remove()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case event := <-events:
		return event, nil
	case <-timer.C:
		return paginator.Event{}, paginator.ErrTimeout
	case <-ctx.Done():
		return paginator.Event{}, ctx.Err()
	}
}

// AwaitReply waits for the first qualifying message sent to the destination
// channel.
func (t *Transport) AwaitReply(ctx context.Context, destination string, qualify func(paginator.Reply) bool, wait time.Duration) (paginator.Reply, error) {
	replies := make(chan paginator.Reply, 1)
	won := atomic.NewBool(false)

	remove := t.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.ChannelID != destination || m.Author == nil {
			return
		}
		reply := paginator.Reply{
			Surface: paginator.SurfaceID{Destination: destination, ID: m.ID},
			Author:  paginator.Identity{ID: m.Author.ID, Bot: m.Author.Bot},
			Text:    m.Content,
		}
		if !qualify(reply) {
			return
		}
		if !won.CompareAndSwap(false, true) {
			return
		}
		replies <- reply
	})
	defer remove()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case reply := <-replies:
		return reply, nil
	case <-timer.C:
		return paginator.Reply{}, paginator.ErrTimeout
	case <-ctx.Done():
		return paginator.Reply{}, ctx.Err()
	}
}

// Capabilities maps the bot's channel permissions onto the paginator
// capability set.
func (t *Transport) Capabilities(ctx context.Context, destination string) ([]paginator.Capability, error) {
	if t.session.State == nil || t.session.State.User == nil {
		return nil, fmt.Errorf("gateway session has no identified user")
	}
	permissions, err := t.session.UserChannelPermissions(t.session.State.User.ID, destination)
	if err != nil {
		return nil, fmt.Errorf("query channel permissions: %w", err)
	}
	return mapPermissions(permissions), nil
}

func mapPermissions(permissions int64) []paginator.Capability {
	var held []paginator.Capability
	if permissions&discordgo.PermissionAddReactions != 0 {
		held = append(held, paginator.CapabilityAddMarker)
	}
	if permissions&discordgo.PermissionManageMessages != 0 {
		held = append(held, paginator.CapabilityManageMarkers, paginator.CapabilityManageSurfaces)
	}
	if permissions&discordgo.PermissionEmbedLinks != 0 {
		held = append(held, paginator.CapabilityRenderRichContent)
	}
	return held
}

// withIndicator returns a shallow copy of embed carrying the page indicator
// as its footer, leaving the caller's payload untouched.
func withIndicator(embed *discordgo.MessageEmbed, indicator string) *discordgo.MessageEmbed {
	if indicator == "" {
		return embed
	}
	clone := *embed
	clone.Footer = &discordgo.MessageEmbedFooter{Text: indicator}
	return &clone
}

func reactionIdentity(s *discordgo.Session, r *discordgo.MessageReactionAdd) paginator.Identity {
	identity := paginator.Identity{ID: r.UserID}
	if r.Member != nil && r.Member.User != nil {
		identity.Bot = r.Member.User.Bot
	} else if s.State != nil && s.State.User != nil {
		identity.Bot = r.UserID == s.State.User.ID
	}
	return identity
}
