// Package server hosts the Discord bot process. It owns the gateway session
// and dispatches codex commands; browsing state belongs to the paginator and
// persistent state to the entry store, so the bot remains a thin producer of
// page content.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/wfaller/pageturn/internal/content"
	"github.com/wfaller/pageturn/internal/paginator"
	"github.com/wfaller/pageturn/internal/platform/timeouts"
	"github.com/wfaller/pageturn/internal/services/bot/storage"
	"github.com/wfaller/pageturn/internal/services/bot/storage/sqlite"
	discordtransport "github.com/wfaller/pageturn/internal/transport/discord"
)

const (
	commandPrefix  = "!"
	commandLibrary = "library"
	commandTop     = "top"

	libraryEmbedColor = 0x5865F2
	topEmbedColor     = 0xEB459E

	defaultTopLimit = 10
	maxTopLimit     = 50
)

// Config defines the inputs for the bot process.
type Config struct {
	Token       string
	StoragePath string
	PageTimeout time.Duration
	PerPage     int
	Bindings    paginator.Bindings
}

// Server wires the gateway session, the codex store, and the paginator
// transport together.
type Server struct {
	session     *discordgo.Session
	transport   paginator.Transport
	store       storage.EntryStore
	storeCloser func() error
	pageTimeout time.Duration
	perPage     int
	bindings    paginator.Bindings
	pagers      sync.WaitGroup
}

// NewServer validates config and prepares the bot without opening the
// gateway connection.
func NewServer(cfg Config) (*Server, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("bot token is required")
	}

	store, err := sqlite.Open(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open codex store: %w", err)
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("create gateway session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent

	pageTimeout := cfg.PageTimeout
	if pageTimeout <= 0 {
		pageTimeout = timeouts.PageWait
	}

	return &Server{
		session:     session,
		transport:   discordtransport.New(session),
		store:       store,
		storeCloser: store.Close,
		pageTimeout: pageTimeout,
		perPage:     cfg.PerPage,
		bindings:    cfg.Bindings,
	}, nil
}

// Run builds the bot and serves until the context ends.
func Run(ctx context.Context, cfg Config) error {
	server, err := NewServer(cfg)
	if err != nil {
		return fmt.Errorf("init bot server: %w", err)
	}
	defer server.Close()

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("serve bot: %w", err)
	}
	return nil
}

// Serve opens the gateway connection and blocks until the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("bot server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	s.session.AddHandler(func(session *discordgo.Session, r *discordgo.Ready) {
		log.Printf("bot logged in as %s", r.User.Username)
	})
	removeMessages := s.session.AddHandler(func(session *discordgo.Session, m *discordgo.MessageCreate) {
		s.handleMessage(ctx, m)
	})
	defer removeMessages()

	if err := s.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}

	<-ctx.Done()
	return nil
}

// Close closes the gateway and the store after in-flight browsing sessions
// drain.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.session != nil {
		if err := s.session.Close(); err != nil {
			log.Printf("close gateway session: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		s.pagers.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeouts.GatewayClose):
		log.Printf("browsing sessions still draining at shutdown")
	}

	if s.storeCloser != nil {
		if err := s.storeCloser(); err != nil {
			log.Printf("close codex store: %v", err)
		}
	}
}

type command struct {
	name string
	args []string
}

// parseCommand splits a prefixed chat message into a command invocation.
func parseCommand(text string) (command, bool) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 || !strings.HasPrefix(fields[0], commandPrefix) {
		return command{}, false
	}
	name := strings.ToLower(strings.TrimPrefix(fields[0], commandPrefix))
	if name == "" {
		return command{}, false
	}
	return command{name: name, args: fields[1:]}, true
}

func (s *Server) handleMessage(ctx context.Context, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	cmd, ok := parseCommand(m.Content)
	if !ok {
		return
	}

	switch cmd.name {
	case commandLibrary:
		s.runLibrary(ctx, m.ChannelID, m.Author.ID)
	case commandTop:
		s.runTop(ctx, m.ChannelID, m.Author.ID, cmd.args)
	}
}

func (s *Server) runLibrary(ctx context.Context, channelID, userID string) {
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		log.Printf("list entries: %v", err)
		s.notify(channelID, "The codex is unavailable right now.")
		return
	}
	if len(entries) == 0 {
		s.notify(channelID, "The codex is empty.")
		return
	}

	pages := content.EntryPages(entries, content.PageOptions{
		Title:   "Codex library",
		PerPage: s.perPage,
		Color:   libraryEmbedColor,
	})
	s.browse(ctx, channelID, userID, pages)
}

func (s *Server) runTop(ctx context.Context, channelID, userID string, args []string) {
	limit := defaultTopLimit
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 || parsed > maxTopLimit {
			s.notify(channelID, fmt.Sprintf("Usage: %stop [1-%d]", commandPrefix, maxTopLimit))
			return
		}
		limit = parsed
	}

	entries, err := s.store.TopEntries(ctx, limit)
	if err != nil {
		log.Printf("top entries: %v", err)
		s.notify(channelID, "The codex is unavailable right now.")
		return
	}
	if len(entries) == 0 {
		s.notify(channelID, "The codex is empty.")
		return
	}

	pages := content.EntryPages(entries, content.PageOptions{
		Title:   fmt.Sprintf("Codex top %d", len(entries)),
		PerPage: s.perPage,
		Color:   topEmbedColor,
		FormatItem: func(entry storage.Entry, index int) string {
			return fmt.Sprintf("#%d) %s", index+1, entry.Title)
		},
	})
	s.browse(ctx, channelID, userID, pages)
}

// browse runs one paginator session in its own goroutine. The invoking user
// owns the session; its events are the only ones that qualify.
func (s *Server) browse(ctx context.Context, channelID, userID string, pages []paginator.Content) {
	session, err := paginator.New(s.transport, paginator.Config{
		Pages:          pages,
		Destination:    channelID,
		AuthorizedUser: userID,
		Bindings:       s.bindings,
		Timeout:        s.pageTimeout,
		Qualify:        discordtransport.NonBot,
	})
	if err != nil {
		log.Printf("build browsing session: %v", err)
		s.notify(channelID, "Could not start browsing.")
		return
	}

	s.pagers.Add(1)
	go func() {
		defer s.pagers.Done()
		if err := session.Run(ctx); err != nil {
			log.Printf("browsing session on %s: %v", channelID, err)
		}
	}()
}

// notify sends a short plain message, best-effort.
func (s *Server) notify(channelID, text string) {
	if _, err := s.session.ChannelMessageSend(channelID, text); err != nil {
		log.Printf("notify %s: %v", channelID, err)
	}
}
